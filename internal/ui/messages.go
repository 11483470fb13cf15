package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/termdock/internal/host"
)

// hostTimeout bounds every host request.
const hostTimeout = 5 * time.Second

type configLoadedMsg struct {
	cfg host.Config
	err error
}

type iconLoadedMsg struct {
	index int
	path  string
	uri   string
	err   error
}

type runningAppsMsg struct {
	paths []string
	err   error
}

type pollTickMsg struct{}

type frameMsg struct {
	gen int
}

type hideTimerMsg struct {
	token uint64
}

type visibilitySetMsg struct {
	hidden bool
	err    error
}

type slideFrameMsg struct{}

type launchedMsg struct {
	path string
	err  error
}

func loadConfigCmd(h host.Host) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), hostTimeout)
		defer cancel()
		cfg, err := h.Config(ctx)
		return configLoadedMsg{cfg: cfg, err: err}
	}
}

func iconCmd(h host.Host, index int, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), hostTimeout)
		defer cancel()
		uri, err := h.IconBase64(ctx, path)
		return iconLoadedMsg{index: index, path: path, uri: uri, err: err}
	}
}

func pollRunningCmd(h host.Host) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), hostTimeout)
		defer cancel()
		paths, err := h.RunningApps(ctx)
		return runningAppsMsg{paths: paths, err: err}
	}
}

func pollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func launchCmd(h host.Host, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), hostTimeout)
		defer cancel()
		return launchedMsg{path: path, err: h.Launch(ctx, path)}
	}
}

func setHiddenCmd(h host.Host, hidden bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), hostTimeout)
		defer cancel()
		return visibilitySetMsg{hidden: hidden, err: h.SetDockHidden(ctx, hidden)}
	}
}

func frameCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

func hideTimerCmd(delay time.Duration, token uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return hideTimerMsg{token: token}
	})
}

func slideCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return slideFrameMsg{}
	})
}
