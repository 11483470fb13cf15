package host

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
)

// ErrNothingToLaunch is returned for desktop entries without an Exec line.
var ErrNothingToLaunch = errors.New("nothing to launch")

// Launch starts the application and returns once it has been spawned. The
// child is reaped in the background and outlives ctx.
func (l *Local) Launch(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	argv, err := launchArgv(path)
	if err != nil {
		return fmt.Errorf("launch %s: %w", path, err)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }()

	l.logger.Info("launched", "path", path, "pid", cmd.Process.Pid)
	return nil
}

func launchArgv(path string) ([]string, error) {
	if !isDesktopFile(path) {
		return []string{path}, nil
	}
	entry, err := readDesktopEntry(path)
	if err != nil {
		return nil, err
	}
	argv, err := entry.argv()
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, ErrNothingToLaunch
	}
	return argv, nil
}

// Executable returns the binary a process started from path would run, with
// symlinks resolved, so it can be compared with procfs exe links. Desktop
// entries resolve their Exec program through PATH. When nothing resolves,
// path itself is returned.
func Executable(path string) string {
	target := path
	if isDesktopFile(path) {
		argv, err := launchArgv(path)
		if err != nil {
			return path
		}
		if target, err = exec.LookPath(argv[0]); err != nil {
			return path
		}
	}
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		return resolved
	}
	return target
}
