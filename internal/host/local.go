package host

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// Local implements Host against the local machine.
type Local struct {
	// ConfigPath is the composition file. Empty means FindConfig.
	ConfigPath string
	// PinnedDir holds .desktop files or symlinks appended as a "Pinned" category.
	PinnedDir string
	// IconDirs are searched for themed icons by name.
	IconDirs []string
	// ProcRoot is the procfs mount used to list running processes.
	ProcRoot string

	logger *log.Logger

	mu     sync.Mutex
	hidden bool
}

var _ Host = (*Local)(nil)

// NewLocal creates a Local host with platform defaults.
func NewLocal(logger *log.Logger, configPath string) *Local {
	if logger == nil {
		logger = log.Default()
	}
	return &Local{
		ConfigPath: configPath,
		PinnedDir:  defaultPinnedDir(),
		IconDirs:   defaultIconDirs(),
		ProcRoot:   "/proc",
		logger:     logger,
	}
}

// SetDockHidden records the visibility the dock asked for.
func (l *Local) SetDockHidden(ctx context.Context, hidden bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	changed := l.hidden != hidden
	l.hidden = hidden
	l.mu.Unlock()
	if changed {
		l.logger.Debug("dock visibility", "hidden", hidden)
	}
	return nil
}

// Hidden reports the last visibility set.
func (l *Local) Hidden() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hidden
}

func defaultPinnedDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "termdock", "pinned")
}

func defaultIconDirs() []string {
	var roots []string
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, ".local", "share", "icons"))
	}
	roots = append(roots, "/usr/share/icons", "/usr/local/share/icons")

	var dirs []string
	for _, root := range roots {
		for _, size := range []string{"256x256", "128x128", "96x96", "64x64", "48x48"} {
			dirs = append(dirs, filepath.Join(root, "hicolor", size, "apps"))
		}
	}
	return append(dirs, "/usr/share/pixmaps")
}
