// Package host is the boundary between the dock UI and the machine it runs
// on: dock composition, icon bitmaps, launching, running-process state and
// dock visibility. Every call is fallible and may be slow; the UI invokes
// them off its event loop and applies results when they arrive.
package host

import (
	"context"
	"strings"
)

// Shortcut is one launchable dock item.
type Shortcut struct {
	Name string `json:"name" toml:"name" yaml:"name"`
	Path string `json:"path" toml:"path" yaml:"path"`
	// Exec is the resolved binary Path runs, filled in by the host. Running
	// state is matched against it.
	Exec string `json:"-" toml:"-" yaml:"-"`
}

// Category groups shortcuts.
type Category struct {
	Name      string     `json:"name" toml:"name" yaml:"name"`
	Shortcuts []Shortcut `json:"shortcuts" toml:"shortcuts" yaml:"shortcuts"`
}

// Config is the dock composition.
type Config struct {
	Categories []Category `json:"categories" toml:"categories" yaml:"categories"`
}

// Len returns the total number of shortcuts.
func (c Config) Len() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Shortcuts)
	}
	return n
}

// Host is what the dock consumes from its host process.
type Host interface {
	// Config returns the dock composition.
	Config(ctx context.Context) (Config, error)
	// IconBase64 returns the icon for path as a data URI. An empty string
	// with a nil error means the host has no icon for it.
	IconBase64(ctx context.Context, path string) (string, error)
	// Launch starts the application at path without waiting for it.
	Launch(ctx context.Context, path string) error
	// RunningApps returns the executable paths of running processes.
	RunningApps(ctx context.Context) ([]string, error)
	// SetDockHidden tells the host whether the dock is hidden.
	SetDockHidden(ctx context.Context, hidden bool) error
}

// RunningSet answers case-insensitive membership against a RunningApps result.
type RunningSet map[string]struct{}

// NewRunningSet builds a set from paths.
func NewRunningSet(paths []string) RunningSet {
	s := make(RunningSet, len(paths))
	for _, p := range paths {
		s[strings.ToLower(p)] = struct{}{}
	}
	return s
}

// Contains reports whether path is running.
func (s RunningSet) Contains(path string) bool {
	_, ok := s[strings.ToLower(path)]
	return ok
}
