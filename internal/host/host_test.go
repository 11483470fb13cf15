package host

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/olivier-w/termdock/internal/icon"
)

func testLocal(t *testing.T) *Local {
	t.Helper()
	l := NewLocal(log.New(io.Discard), filepath.Join(t.TempDir(), "config.json"))
	l.PinnedDir = ""
	l.IconDirs = nil
	l.ProcRoot = filepath.Join(t.TempDir(), "proc")
	return l
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 0xff, A: 0xff})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

var wantConfig = Config{Categories: []Category{{
	Name: "Web",
	Shortcuts: []Shortcut{
		{Name: "Firefox", Path: "/usr/bin/firefox"},
		{Name: "Mail", Path: "/usr/bin/thunderbird"},
	},
}}}

func TestLoadConfigFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"config.json": `{"categories":[{"name":"Web","shortcuts":[{"name":"Firefox","path":"/usr/bin/firefox"},{"name":"Mail","path":"/usr/bin/thunderbird"}]}]}`,
		"config.toml": `
[[categories]]
name = "Web"

[[categories.shortcuts]]
name = "Firefox"
path = "/usr/bin/firefox"

[[categories.shortcuts]]
name = "Mail"
path = "/usr/bin/thunderbird"
`,
		"config.yaml": `
categories:
  - name: Web
    shortcuts:
      - name: Firefox
        path: /usr/bin/firefox
      - name: Mail
        path: /usr/bin/thunderbird
`,
	}
	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			writeFile(t, path, body)
			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(cfg, wantConfig) {
				t.Fatalf("unexpected config: %+v", cfg)
			}
			if cfg.Len() != 2 {
				t.Fatalf("expected 2 items, got %d", cfg.Len())
			}
		})
	}
}

func TestLoadConfigMissingFileIsEmpty(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Len() != 0 {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"categories": [`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFindConfigInOrder(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(second, "config.json"), "{}")
	writeFile(t, filepath.Join(first, "config.yaml"), "categories: []")

	got, ok := findConfigIn([]string{first, second})
	if !ok || got != filepath.Join(first, "config.yaml") {
		t.Fatalf("expected first directory to win, got %q %v", got, ok)
	}
	if _, ok := findConfigIn([]string{t.TempDir()}); ok {
		t.Fatal("expected no config in empty directory")
	}
}

func TestConfigAppendsPinned(t *testing.T) {
	l := testLocal(t)
	writeFile(t, l.ConfigPath, `{"categories":[{"name":"Dev","shortcuts":[{"name":"Term","path":"/usr/bin/xterm"}]}]}`)

	l.PinnedDir = t.TempDir()
	writeFile(t, filepath.Join(l.PinnedDir, "editor.desktop"), "[Desktop Entry]\nName=Editor\nExec=gedit %U\n")
	writeFile(t, filepath.Join(l.PinnedDir, "secret.desktop"), "[Desktop Entry]\nName=Secret\nNoDisplay=true\n")
	target := filepath.Join(t.TempDir(), "tool")
	writeFile(t, target, "#!/bin/sh\n")
	if err := os.Symlink(target, filepath.Join(l.PinnedDir, "tool")); err != nil {
		t.Fatal(err)
	}

	cfg, err := l.Config(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Categories) != 2 || cfg.Categories[1].Name != PinnedCategory {
		t.Fatalf("expected pinned category appended, got %+v", cfg.Categories)
	}
	pinned := cfg.Categories[1].Shortcuts
	if len(pinned) != 2 {
		t.Fatalf("expected 2 pinned items, got %+v", pinned)
	}
	if pinned[0].Name != "Editor" || !strings.HasSuffix(pinned[0].Path, "editor.desktop") {
		t.Fatalf("unexpected desktop item %+v", pinned[0])
	}
	resolved, _ := filepath.EvalSymlinks(target)
	if pinned[1].Name != "tool" || pinned[1].Path != resolved {
		t.Fatalf("unexpected symlink item %+v", pinned[1])
	}
}

func TestIconBase64(t *testing.T) {
	l := testLocal(t)
	dir := t.TempDir()

	direct := filepath.Join(dir, "logo.png")
	writePNG(t, direct)

	app := filepath.Join(dir, "bin", "app")
	writeFile(t, app, "binary")
	writePNG(t, filepath.Join(dir, "bin", "app.png"))

	themeDir := t.TempDir()
	l.IconDirs = []string{themeDir}
	writePNG(t, filepath.Join(themeDir, "viewer.png"))
	entry := filepath.Join(dir, "viewer.desktop")
	writeFile(t, entry, "[Desktop Entry]\nName=Viewer\nIcon=viewer\nExec=viewer\n")

	for _, path := range []string{direct, app, entry} {
		uri, err := l.IconBase64(context.Background(), path)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", path, err)
		}
		img, err := icon.DecodeDataURI(uri)
		if err != nil {
			t.Fatalf("%s: expected decodable data URI: %v", path, err)
		}
		if img.Bounds().Dx() != 2 {
			t.Fatalf("%s: unexpected icon size %v", path, img.Bounds())
		}
	}
}

func TestIconBase64WithoutIcon(t *testing.T) {
	l := testLocal(t)
	dir := t.TempDir()

	fake := filepath.Join(dir, "fake.png")
	writeFile(t, fake, "not an image")

	for _, path := range []string{filepath.Join(dir, "missing"), fake} {
		uri, err := l.IconBase64(context.Background(), path)
		if err != nil || uri != "" {
			t.Fatalf("%s: expected no icon, got %q %v", path, uri, err)
		}
	}
}

func TestLaunchArgv(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "app.desktop")
	writeFile(t, entry, "[Desktop Entry]\nName=App\nExec=\"/opt/app/run\" --new-window %U\n[Desktop Action new]\nExec=other\n")

	argv, err := launchArgv(entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"/opt/app/run", "--new-window"}; !reflect.DeepEqual(argv, want) {
		t.Fatalf("expected %v, got %v", want, argv)
	}

	if argv, _ := launchArgv("/usr/bin/xterm"); !reflect.DeepEqual(argv, []string{"/usr/bin/xterm"}) {
		t.Fatalf("expected plain path, got %v", argv)
	}

	empty := filepath.Join(dir, "empty.desktop")
	writeFile(t, empty, "[Desktop Entry]\nName=Empty\n")
	if _, err := launchArgv(empty); !errors.Is(err, ErrNothingToLaunch) {
		t.Fatalf("expected ErrNothingToLaunch, got %v", err)
	}
}

func TestDesktopExecQuoting(t *testing.T) {
	tests := []struct {
		exec string
		want []string
	}{
		{`"/opt/My App/bin/app" --flag %U`, []string{"/opt/My App/bin/app", "--flag"}},
		{`env "LANG=C" 'tool name' %f`, []string{"env", "LANG=C", "tool name"}},
		{`printf 100%% %i %c`, []string{"printf", "100%"}},
		{`progress %%`, []string{"progress", "%"}},
	}
	for _, tt := range tests {
		got, err := desktopEntry{Exec: tt.exec}.argv()
		if err != nil {
			t.Fatalf("argv(%q): %v", tt.exec, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("argv(%q) = %q, want %q", tt.exec, got, tt.want)
		}
	}
	if _, err := (desktopEntry{Exec: `"unterminated`}).argv(); err == nil {
		t.Fatal("expected error for unbalanced quote")
	}
}

func TestReadDesktopEntryKeepsQuotedExec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.desktop")
	writeFile(t, path, "# comment\n[Desktop Entry]\nName=My App\nName[de]=Meine App\nExec=\"/opt/My App/bin/app\" --flag %U\nIcon=my-app\nNoDisplay=false\n")

	entry, err := readDesktopEntry(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := desktopEntry{Name: "My App", Exec: `"/opt/My App/bin/app" --flag %U`, Icon: "my-app"}
	if entry != want {
		t.Fatalf("expected %+v, got %+v", want, entry)
	}
	argv, err := launchArgv(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if argv[0] != "/opt/My App/bin/app" {
		t.Fatalf("expected quoted program kept whole, got %q", argv)
	}
}

func TestExecutableResolvesLaunchTarget(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "real", "ed")
	writeFile(t, bin, "#!/bin/sh\n")
	if err := os.Chmod(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "ed-link")
	if err := os.Symlink(bin, link); err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(bin)

	entry := filepath.Join(dir, "ed.desktop")
	writeFile(t, entry, "[Desktop Entry]\nName=Ed\nExec="+link+" %F\n")

	if got := Executable(entry); got != want {
		t.Fatalf("desktop entry: expected %s, got %s", want, got)
	}
	if got := Executable(link); got != want {
		t.Fatalf("symlink: expected %s, got %s", want, got)
	}
	missing := filepath.Join(dir, "missing")
	if got := Executable(missing); got != missing {
		t.Fatalf("expected unresolved path unchanged, got %s", got)
	}
}

func TestPinnedDesktopItemMatchesRunningBinary(t *testing.T) {
	l := testLocal(t)
	bin := filepath.Join(t.TempDir(), "ed")
	writeFile(t, bin, "#!/bin/sh\n")
	if err := os.Chmod(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	bin, _ = filepath.EvalSymlinks(bin)

	l.PinnedDir = t.TempDir()
	writeFile(t, filepath.Join(l.PinnedDir, "ed.desktop"), "[Desktop Entry]\nName=Ed\nExec="+bin+" %F\n")
	pidDir := filepath.Join(l.ProcRoot, "42")
	if err := os.MkdirAll(pidDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(bin, filepath.Join(pidDir, "exe")); err != nil {
		t.Fatal(err)
	}

	cfg, err := l.Config(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := cfg.Categories[0].Shortcuts[0]
	running, err := l.RunningApps(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set := NewRunningSet(running)
	if set.Contains(item.Path) {
		t.Fatal("desktop file itself should not be a running binary")
	}
	if !set.Contains(item.Exec) {
		t.Fatalf("expected %s in %v", item.Exec, running)
	}
}

func TestLaunchFailureIsReported(t *testing.T) {
	l := testLocal(t)
	if err := l.Launch(context.Background(), filepath.Join(t.TempDir(), "missing-app")); err == nil {
		t.Fatal("expected launch error for missing executable")
	}
}

func TestLaunchStartsProcess(t *testing.T) {
	bin, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	if err := testLocal(t).Launch(context.Background(), bin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunningApps(t *testing.T) {
	l := testLocal(t)
	links := map[string]string{
		"1":  "/usr/bin/Firefox",
		"42": "/opt/App (deleted)",
		"43": "/usr/bin/firefox",
	}
	for pid, target := range links {
		dir := filepath.Join(l.ProcRoot, pid)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(target, filepath.Join(dir, "exe")); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(l.ProcRoot, "7"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(l.ProcRoot, "self"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := l.RunningApps(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"/opt/app", "/usr/bin/firefox"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRunningAppsWithoutProcfs(t *testing.T) {
	l := testLocal(t)
	got, err := l.RunningApps(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v %v", got, err)
	}
}

func TestRunningSetIsCaseInsensitive(t *testing.T) {
	s := NewRunningSet([]string{"c:\\program files\\app\\app.exe", "/usr/bin/firefox"})
	if !s.Contains(`C:\Program Files\App\App.exe`) || !s.Contains("/USR/BIN/FIREFOX") {
		t.Fatal("expected case-insensitive match")
	}
	if s.Contains("/usr/bin/chromium") {
		t.Fatal("unexpected match")
	}
}

func TestSetDockHidden(t *testing.T) {
	l := testLocal(t)
	if err := l.SetDockHidden(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Hidden() {
		t.Fatal("expected hidden recorded")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.SetDockHidden(ctx, false); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if !l.Hidden() {
		t.Fatal("expected cancelled call to leave state untouched")
	}
}
