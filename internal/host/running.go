package host

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/procfs"
)

// RunningApps lists the lower-cased executable paths of running processes
// from procfs. Without procfs it returns an empty list.
func (l *Local) RunningApps(ctx context.Context) ([]string, error) {
	if _, err := os.Stat(l.ProcRoot); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	pfs, err := procfs.NewFS(l.ProcRoot)
	if err != nil {
		return nil, fmt.Errorf("open procfs: %w", err)
	}
	procs, err := pfs.AllProcs()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	seen := make(map[string]struct{})
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		exe, err := p.Executable()
		if err != nil || exe == "" {
			// kernel threads and other users' processes
			continue
		}
		exe = strings.TrimSuffix(exe, " (deleted)")
		seen[strings.ToLower(exe)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}
