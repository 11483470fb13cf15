// Package ui is the Bubble Tea front end of the dock. It feeds mouse, key,
// resize and focus events into the dock engine, turns the engine's frame and
// timer requests into commands, and draws the dock band at the bottom of the
// terminal.
package ui

import (
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/olivier-w/termdock/internal/dock"
	"github.com/olivier-w/termdock/internal/host"
	"github.com/olivier-w/termdock/internal/icon"
	"github.com/olivier-w/termdock/internal/settings"
)

type item struct {
	name     string
	path     string
	exec     string // binary matched against running apps
	category string
	bitmap   *icon.Bitmap // nil until the icon request settles
	running  bool
}

type renderKey struct {
	bitmap *icon.Bitmap
	cols   int
	rows   int
}

// Model is the Bubbletea model for the dock.
type Model struct {
	host     host.Host
	logger   *log.Logger
	settings settings.Settings

	fx     *effects
	engine *dock.Engine
	hide   *dock.AutoHide
	gen    int

	items   []item
	loading bool
	loadErr error

	width    int
	height   int
	inWindow bool
	focus    int

	slide   slide
	sliding bool

	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	search    textinput.Model
	searching bool

	renderer *icon.Renderer
	cache    map[renderKey][]string
	quitting bool
}

// New creates a dock model. The composition is requested from h in Init.
func New(h host.Host, s settings.Settings, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	fx := &effects{}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "search apps"
	in.CharLimit = 64

	return Model{
		host:     h,
		logger:   logger,
		settings: s,
		fx:       fx,
		engine:   dock.NewEngine(0, s.Engine(), fx),
		hide:     dock.NewAutoHide(s.HideDelay, fx, fx),
		loading:  true,
		focus:    -1,
		slide:    newSlide(s.FPS),
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		search:   in,
		renderer: icon.NewRenderer(),
		cache:    make(map[renderKey][]string),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadConfigCmd(m.host), m.spinner.Tick, tea.SetWindowTitle("termdock"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.engine.Resize(m.viewport())
		cmd := m.flush()
		return m, cmd

	case tea.BlurMsg:
		m.pointerOutside()
		cmd := m.flush()
		return m, cmd

	case configLoadedMsg:
		return m.applyConfig(msg)

	case iconLoadedMsg:
		m.applyIcon(msg)
		return m, nil

	case runningAppsMsg:
		if msg.err != nil {
			m.logger.Warn("running apps poll failed", "err", msg.err)
		} else {
			set := host.NewRunningSet(msg.paths)
			for i := range m.items {
				it := &m.items[i]
				it.running = set.Contains(it.path) || (it.exec != "" && set.Contains(it.exec))
			}
		}
		return m, pollTickCmd(m.settings.PollInterval)

	case pollTickMsg:
		return m, pollRunningCmd(m.host)

	case frameMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.engine.Frame()
		cmd := m.flush()
		return m, cmd

	case hideTimerMsg:
		m.hide.Fire(msg.token)
		cmd := m.flush()
		return m, cmd

	case visibilitySetMsg:
		if msg.err != nil {
			m.logger.Error("set dock hidden failed", "hidden", msg.hidden, "err", msg.err)
		}
		return m, nil

	case slideFrameMsg:
		if m.slide.step() {
			return m, slideCmd(m.settings.FrameInterval())
		}
		m.sliding = false
		return m, nil

	case launchedMsg:
		if msg.err != nil {
			m.logger.Error("launch failed", "path", msg.path, "err", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) applyConfig(msg configLoadedMsg) (Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.loadErr = msg.err
		m.logger.Error("config fetch failed", "err", msg.err)
		return m, nil
	}

	m.items = m.items[:0]
	for _, cat := range msg.cfg.Categories {
		for _, sc := range cat.Shortcuts {
			m.items = append(m.items, item{name: sc.Name, path: sc.Path, exec: sc.Exec, category: cat.Name})
		}
	}
	m.gen++
	m.focus = -1
	m.engine = dock.NewEngine(len(m.items), m.settings.Engine(), m.fx)
	if m.width > 0 {
		m.engine.Resize(m.viewport())
	}

	cmds := make([]tea.Cmd, 0, len(m.items)+2)
	for i, it := range m.items {
		cmds = append(cmds, iconCmd(m.host, i, it.path))
	}
	cmds = append(cmds, pollRunningCmd(m.host), m.flush())
	return m, tea.Batch(cmds...)
}

// applyIcon installs an icon result whenever it arrives. Anything that is not
// a decodable data URI gets the item's placeholder.
func (m Model) applyIcon(msg iconLoadedMsg) {
	if msg.index < 0 || msg.index >= len(m.items) || m.items[msg.index].path != msg.path {
		return
	}
	it := &m.items[msg.index]
	switch {
	case msg.err != nil:
		m.logger.Warn("icon fetch failed", "path", msg.path, "err", msg.err)
	case msg.uri == "":
		m.logger.Debug("no icon, using placeholder", "path", msg.path)
	default:
		img, err := icon.DecodeDataURI(msg.uri)
		if err == nil {
			it.bitmap = icon.FromImage(img)
			return
		}
		m.logger.Warn("icon decode failed", "path", msg.path, "err", err)
	}
	it.bitmap = icon.Placeholder(it.name)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.height <= 0 {
		return m, nil
	}
	x := m.cellCenter(msg.X)
	in := m.inBand(msg.Y)
	shelf := in && m.onShelf(msg.X, msg.Y)

	if in {
		m.pointerInside()
	} else {
		m.pointerOutside()
	}
	switch {
	case shelf:
		m.focus = -1
		m.engine.PointerMove(x)
	case in && m.engine.Pointer().Hovering:
		// Off the shelf but still in the band: the last position is kept and
		// the hover ends, so items settle at the release rate.
		m.focus = -1
		m.engine.PointerGlobal(x)
		m.engine.PointerLeave()
	}

	var launch tea.Cmd
	if shelf && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if i, ok := m.engine.ItemAt(x); ok {
			launch = m.launch(i)
		}
	}
	cmd := m.flush()
	return m, tea.Batch(cmd, launch)
}

// pointerInside records the pointer entering the dock window.
func (m *Model) pointerInside() {
	if m.inWindow {
		return
	}
	m.inWindow = true
	if m.settings.AutoHide {
		m.hide.PointerEntered()
	}
}

// pointerOutside records the pointer leaving the dock window, which also
// ends any hover over the dock surface.
func (m *Model) pointerOutside() {
	if m.engine.Pointer().Hovering {
		m.engine.PointerLeave()
	}
	if !m.inWindow {
		return
	}
	m.inWindow = false
	if m.settings.AutoHide {
		m.hide.PointerLeft()
	}
}

func (m *Model) launch(i int) tea.Cmd {
	if i < 0 || i >= len(m.items) {
		return nil
	}
	m.logger.Info("launch", "name", m.items[i].name, "path", m.items[i].path)
	return launchCmd(m.host, m.items[i].path)
}

// flush turns the requests collected in fx into commands.
func (m *Model) flush() tea.Cmd {
	var cmds []tea.Cmd
	if m.fx.frame {
		cmds = append(cmds, frameCmd(m.settings.FrameInterval(), m.gen))
	}
	for _, t := range m.fx.timers {
		cmds = append(cmds, hideTimerCmd(t.delay, t.token))
	}
	for _, hidden := range m.fx.visibility {
		cmds = append(cmds, setHiddenCmd(m.host, hidden))
		m.slide.target = 0
		if hidden {
			m.slide.target = float64(m.bandRows() - 1)
		}
		if !m.sliding {
			m.sliding = true
			cmds = append(cmds, slideCmd(m.settings.FrameInterval()))
		}
	}
	m.fx.reset()
	return tea.Batch(cmds...)
}

// Geometry. The engine works in virtual pixels; a cell is CellWidth by
// CellHeight pixels.

func (m Model) viewport() float64 {
	return float64(m.width) * m.settings.CellWidth
}

func (m Model) cellCenter(col int) float64 {
	return (float64(col) + 0.5) * m.settings.CellWidth
}

// iconRows is the tallest an icon can get, in cells.
func (m Model) iconRows() int {
	return int(math.Ceil(m.settings.MaxBaseSize * m.settings.MaxScale / m.settings.CellHeight))
}

// bandRows is the full height of the dock window: label, icons, shelf and
// running indicators.
func (m Model) bandRows() int {
	return m.iconRows() + 3
}

func (m Model) visibleBandRows() int {
	v := m.bandRows() - m.slide.rows()
	if v < 1 {
		return 1
	}
	return v
}

func (m Model) bandTop() int {
	return m.height - m.visibleBandRows()
}

func (m Model) inBand(y int) bool {
	return y >= m.bandTop() && y < m.height
}

// onShelf reports whether a cell lies on the icon or shelf rows within the
// dock's horizontal span.
func (m Model) onShelf(col, row int) bool {
	k := row - m.bandTop()
	if k < 1 || k > m.iconRows()+1 {
		return false
	}
	return m.engine.Bounds().Contains(m.cellCenter(col))
}
