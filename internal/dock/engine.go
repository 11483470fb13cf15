// Package dock implements the magnification and auto-hide engine of the dock:
// Gaussian falloff, rest sizing, per-item scale animation, the frame loop
// that drives it and the debounced auto-hide state machine.
//
// Nothing here blocks or touches a clock. Frames and timers are requested
// through small interfaces and delivered back by the caller, which keeps the
// engine single-threaded and testable without real time.
package dock

// Config bundles the layout geometry and animation tuning.
type Config struct {
	Layout Layout
	Tuning Tuning
}

// Item is the presentation state of one dock item.
type Item struct {
	Index     int
	Scale     float64
	Size      float64 // live pixel edge length, rest size times scale
	Magnified bool
}

// Engine exclusively owns the pointer, scale, rest size and item state.
// Every pointer or resize operation recomputes targets before waking the
// frame loop, so the next step always sees fresh targets.
type Engine struct {
	cfg      Config
	pointer  Tracker
	scales   *Controller
	loop     *FrameLoop
	items    []Item
	rest     float64
	viewport float64
}

// NewEngine creates an engine for n items. Frames are requested from frames.
func NewEngine(n int, cfg Config, frames FrameRequester) *Engine {
	e := &Engine{
		cfg:    cfg,
		scales: NewController(n, cfg.Tuning),
		items:  make([]Item, n),
		rest:   cfg.Layout.MaxBase,
	}
	e.loop = NewFrameLoop(frames, e.step)
	e.render()
	return e
}

// Len returns the number of items.
func (e *Engine) Len() int {
	return len(e.items)
}

// RestSize returns the shared resting icon size.
func (e *Engine) RestSize() float64 {
	return e.rest
}

// Viewport returns the last viewport width passed to Resize.
func (e *Engine) Viewport() float64 {
	return e.viewport
}

// Pointer returns the tracked pointer state.
func (e *Engine) Pointer() Pointer {
	return e.pointer.State()
}

// LoopState returns the frame loop state.
func (e *Engine) LoopState() LoopState {
	return e.loop.State()
}

// Items returns a copy of the per-item presentation state.
func (e *Engine) Items() []Item {
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// Item returns the presentation state of item i.
func (e *Engine) Item(i int) Item {
	return e.items[i]
}

// Target returns the scale item i is heading to.
func (e *Engine) Target(i int) float64 {
	return e.scales.Target(i)
}

// Layout returns where each item sits at its live size, and the span the
// whole row covers.
func (e *Engine) Layout() ([]Slot, Span) {
	sizes := make([]float64, len(e.items))
	for i, it := range e.items {
		sizes[i] = it.Size
	}
	return arrange(sizes, e.cfg.Layout.Gap, e.viewport)
}

// Bounds returns the horizontal span of the dock row.
func (e *Engine) Bounds() Span {
	_, span := e.Layout()
	return span
}

// ItemAt returns the index of the item whose slot contains x.
func (e *Engine) ItemAt(x float64) (int, bool) {
	slots, _ := e.Layout()
	for i, s := range slots {
		if x >= s.Left && x <= s.Left+s.Size {
			return i, true
		}
	}
	return -1, false
}

// Center returns the horizontal center of item i at its live size.
func (e *Engine) Center(i int) float64 {
	slots, _ := e.Layout()
	return slots[i].Center()
}

// Resize recomputes the rest size for a new viewport width and immediately
// re-renders so items never hold a stale size while magnified.
func (e *Engine) Resize(viewport float64) {
	e.viewport = viewport
	e.rest = e.cfg.Layout.RestSize(viewport, len(e.items))
	e.recompute()
	e.render()
	e.loop.Start()
}

// PointerMove records movement over the dock surface.
func (e *Engine) PointerMove(x float64) {
	e.pointer.Move(x)
	e.wake()
}

// PointerGlobal records movement elsewhere in the window. It is ignored
// unless a hover is still active.
func (e *Engine) PointerGlobal(x float64) {
	if e.pointer.Global(x) {
		e.wake()
	}
}

// PointerLeave ends the hover and lets items settle back to rest.
func (e *Engine) PointerLeave() {
	e.pointer.Leave()
	e.wake()
}

// Frame must be called when a requested frame fires. It reports whether
// another frame was requested.
func (e *Engine) Frame() bool {
	return e.loop.Frame()
}

func (e *Engine) wake() {
	e.recompute()
	e.loop.Start()
}

func (e *Engine) recompute() {
	slots, span := e.Layout()
	centers := make([]float64, len(slots))
	for i, s := range slots {
		centers[i] = s.Center()
	}
	e.scales.Recompute(e.pointer.State(), span, centers)
}

func (e *Engine) step() bool {
	converging := e.scales.Step(e.pointer.State().Hovering)
	e.render()
	return converging
}

func (e *Engine) render() {
	for i := range e.items {
		scale := e.scales.Current(i)
		e.items[i] = Item{
			Index:     i,
			Scale:     scale,
			Size:      e.rest * scale,
			Magnified: e.scales.Magnified(i),
		}
	}
}
