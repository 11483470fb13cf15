package host

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/olivier-w/termdock/internal/icon"
)

var iconExts = []string{".png", ".webp", ".bmp", ".jpg", ".jpeg", ".gif", ".tiff"}

var decodableTypes = []string{
	"image/png", "image/jpeg", "image/gif", "image/bmp", "image/webp", "image/tiff",
}

// IconBase64 finds an icon for path and returns it re-encoded as a PNG data
// URI. It returns "" when no decodable icon exists.
func (l *Local) IconBase64(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src := l.findIcon(path)
	if src == "" {
		l.logger.Debug("no icon", "path", path)
		return "", nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read icon: %w", err)
	}
	if mt := mimetype.Detect(data); !mimetype.EqualsAny(mt.String(), decodableTypes...) {
		l.logger.Debug("icon not decodable", "path", path, "icon", src, "mime", mt.String())
		return "", nil
	}
	img, err := icon.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("icon %s: %w", src, err)
	}
	return icon.EncodeDataURI(img)
}

// findIcon resolves the icon file for an item path: the path itself when it
// is an image, the Icon= key of a desktop entry, a sibling image sharing the
// stem, then a themed icon named after the stem.
func (l *Local) findIcon(path string) string {
	if hasImageExt(path) && fileExists(path) {
		return path
	}
	if isDesktopFile(path) {
		entry, err := readDesktopEntry(path)
		if err != nil || entry.Icon == "" {
			return ""
		}
		if filepath.IsAbs(entry.Icon) {
			if fileExists(entry.Icon) {
				return entry.Icon
			}
			return ""
		}
		return l.themedIcon(entry.Icon)
	}

	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range iconExts {
		if candidate := stem + ext; fileExists(candidate) {
			return candidate
		}
	}
	return l.themedIcon(filepath.Base(stem))
}

func (l *Local) themedIcon(name string) string {
	if name == "" || name == "." {
		return ""
	}
	for _, dir := range l.IconDirs {
		for _, ext := range iconExts {
			if candidate := filepath.Join(dir, name+ext); fileExists(candidate) {
				return candidate
			}
		}
	}
	return ""
}

func hasImageExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range iconExts {
		if ext == e {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
