package host

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
	"gopkg.in/ini.v1"
)

const (
	desktopExt     = ".desktop"
	desktopSection = "Desktop Entry"
)

// desktopEntry is the subset of a freedesktop.org desktop entry the dock uses.
type desktopEntry struct {
	Name   string
	Exec   string
	Icon   string
	Hidden bool
}

func isDesktopFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), desktopExt)
}

func readDesktopEntry(path string) (desktopEntry, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:      "=",
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		PreserveSurroundedQuote: true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return desktopEntry{}, fmt.Errorf("read desktop entry %s: %w", path, err)
	}
	sec, err := f.GetSection(desktopSection)
	if err != nil {
		return desktopEntry{}, fmt.Errorf("desktop entry %s: %w", path, err)
	}
	return desktopEntry{
		Name:   sec.Key("Name").String(),
		Exec:   sec.Key("Exec").String(),
		Icon:   sec.Key("Icon").String(),
		Hidden: sec.Key("Hidden").MustBool(false) || sec.Key("NoDisplay").MustBool(false),
	}, nil
}

// argv splits Exec into arguments with shell quoting rules and drops the
// %-field codes. "%%" stands for a literal percent sign.
func (d desktopEntry) argv() ([]string, error) {
	fields, err := shlex.Split(d.Exec)
	if err != nil {
		return nil, fmt.Errorf("parse Exec %q: %w", d.Exec, err)
	}
	out := fields[:0]
	for _, field := range fields {
		if len(field) == 2 && field[0] == '%' && field[1] != '%' {
			continue
		}
		out = append(out, strings.ReplaceAll(field, "%%", "%"))
	}
	return out, nil
}
