package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/olivier-w/termdock/internal/host"
	"github.com/olivier-w/termdock/internal/settings"
	"github.com/olivier-w/termdock/internal/ui"
)

const appName = "termdock"

// iconProbes bounds concurrent icon lookups in the check command.
const iconProbes = 8

type options struct {
	configPath   string
	settingsPath string
	logFile      string
	verbose      bool
	noAutoHide   bool
}

func rootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          appName,
		Short:        "A magnifying application dock for the terminal",
		Long:         `termdock shows your applications as a row of icons along the bottom of the terminal. Icons grow as the pointer moves over them, the dock slides away when the pointer leaves, and clicking an icon launches it.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDock(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "composition file (JSON, TOML or YAML)")
	flags.StringVar(&opts.settingsPath, "settings", "", "TOML file with engine settings")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVar(&opts.logFile, "log-file", "", "log destination (default $XDG_STATE_HOME/termdock/termdock.log)")
	root.Flags().BoolVar(&opts.noAutoHide, "no-autohide", false, "keep the dock visible")

	root.AddCommand(checkCommand(opts))
	root.AddCommand(versionCommand())
	return root
}

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// loadSettings reads engine settings and applies flag overrides.
func loadSettings(opts *options) (settings.Settings, error) {
	s, err := settings.Load(opts.settingsPath)
	if err != nil {
		return s, err
	}
	if opts.noAutoHide {
		s.AutoHide = false
	}
	return s, nil
}

func runDock(ctx context.Context, opts *options) error {
	path := opts.logFile
	if path == "" {
		var err error
		if path, err = defaultLogPath(); err != nil {
			return err
		}
	}
	f, err := openLog(path)
	if err != nil {
		return err
	}
	defer f.Close()

	logger := newLogger(f, opts.verbose)
	s, err := loadSettings(opts)
	if err != nil {
		return err
	}
	logger.Info("starting", "version", version, "autohide", s.AutoHide, "fps", s.FPS)

	h := host.NewLocal(logger, opts.configPath)
	p := tea.NewProgram(ui.New(h, s, logger),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dock: %w", err)
	}
	logger.Info("exiting")
	return nil
}

// defaultLogPath follows the XDG state directory convention
// (~/.local/state/termdock/termdock.log).
func defaultLogPath() (string, error) {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, appName, appName+".log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate log directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", appName, appName+".log"), nil
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

func checkCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Print the dock composition and whether each icon resolves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			s, err := loadSettings(opts)
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), s)
			return runCheck(cmd.Context(), cmd.OutOrStdout(), host.NewLocal(logger, opts.configPath))
		},
	}
}

// runCheck prints every category and item of the composition. Icons are
// probed concurrently.
func runCheck(ctx context.Context, w io.Writer, h host.Host) error {
	cfg, err := h.Config(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var shortcuts []host.Shortcut
	for _, cat := range cfg.Categories {
		shortcuts = append(shortcuts, cat.Shortcuts...)
	}
	status := make([]string, len(shortcuts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(iconProbes)
	for i, sc := range shortcuts {
		g.Go(func() error {
			uri, err := h.IconBase64(gctx, sc.Path)
			switch {
			case err != nil:
				status[i] = "icon error: " + err.Error()
			case uri == "":
				status[i] = "placeholder"
			default:
				status[i] = "icon"
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(shortcuts) == 0 {
		fmt.Fprintln(w, "no apps configured")
		return nil
	}
	i := 0
	for _, cat := range cfg.Categories {
		fmt.Fprintf(w, "%s\n", cat.Name)
		for _, sc := range cat.Shortcuts {
			fmt.Fprintf(w, "  %-20s %-12s %s\n", sc.Name, status[i], sc.Path)
			i++
		}
	}
	return nil
}

// printSettings reports the settings the dock would run with.
func printSettings(w io.Writer, s settings.Settings) {
	fmt.Fprintf(w, "settings: icons %.0f-%.0fpx, max scale %.2f, radius %.0fpx, autohide %v after %s, poll %s, %d fps\n",
		s.MinBaseSize, s.MaxBaseSize, s.MaxScale, s.InfluenceRadius, s.AutoHide, s.HideDelay, s.PollInterval, s.FPS)
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)
		},
	}
}
