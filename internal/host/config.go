package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// PinnedCategory names the category built from the pinned directory.
const PinnedCategory = "Pinned"

var configNames = []string{"config.json", "config.toml", "config.yaml", "config.yml"}

// Config loads the composition and appends discovered pinned items.
func (l *Local) Config(ctx context.Context) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}
	path := l.ConfigPath
	if path == "" {
		path = FindConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	if pinned := DiscoverPinned(l.PinnedDir); len(pinned) > 0 {
		cfg.Categories = append(cfg.Categories, Category{Name: PinnedCategory, Shortcuts: pinned})
	}
	for i := range cfg.Categories {
		for j := range cfg.Categories[i].Shortcuts {
			sc := &cfg.Categories[i].Shortcuts[j]
			sc.Exec = Executable(sc.Path)
		}
	}
	l.logger.Info("config loaded", "path", path, "categories", len(cfg.Categories), "items", cfg.Len())
	return cfg, nil
}

// LoadConfig reads a composition file. The format follows the extension:
// .toml, .yaml/.yml, anything else is JSON. A missing file is an empty
// composition, not an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfig returns the first composition file found next to the
// executable, in the working directory, in ./config or in the user config
// directory. It falls back to "config.json".
func FindConfig() string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	dirs = append(dirs, ".", "config")
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "termdock"))
	}
	if path, ok := findConfigIn(dirs); ok {
		return path
	}
	return configNames[0]
}

func findConfigIn(dirs []string) (string, bool) {
	for _, dir := range dirs {
		for _, name := range configNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}

// DiscoverPinned lists the pinned directory. .desktop files become items
// named after their Name= key; symlinks become items pointing at their
// resolved target.
func DiscoverPinned(dir string) []Shortcut {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []Shortcut
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		switch {
		case strings.EqualFold(filepath.Ext(path), desktopExt):
			entry, err := readDesktopEntry(path)
			if err != nil || entry.Hidden {
				continue
			}
			name := entry.Name
			if name == "" {
				name = stem
			}
			out = append(out, Shortcut{Name: name, Path: path})
		case e.Type()&fs.ModeSymlink != 0:
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				continue
			}
			out = append(out, Shortcut{Name: stem, Path: target})
		}
	}
	return out
}
