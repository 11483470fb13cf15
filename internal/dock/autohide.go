package dock

import "time"

// DefaultHideDelay is how long the pointer must stay outside the window
// before the dock hides.
const DefaultHideDelay = time.Second

// Deferrer arranges for AutoHide.Fire(token) to be called after d. Stale
// tokens are ignored, so implementations never need to cancel anything.
type Deferrer interface {
	Defer(d time.Duration, token uint64)
}

// VisibilitySink receives confirmed visibility transitions.
type VisibilitySink interface {
	SetHidden(hidden bool)
}

// HideState is the state of the auto-hide machine.
type HideState uint8

const (
	Shown HideState = iota
	PendingHide
	Hidden
)

func (s HideState) String() string {
	switch s {
	case PendingHide:
		return "pending-hide"
	case Hidden:
		return "hidden"
	default:
		return "shown"
	}
}

// pendingHide is the handle of the one outstanding hide timer.
type pendingHide struct {
	token uint64
}

// AutoHide debounces pointer enter/leave of the window into hide and show
// transitions. State is optimistic: it reflects the last emitted intent, not
// what the host confirmed.
type AutoHide struct {
	delay   time.Duration
	timers  Deferrer
	sink    VisibilitySink
	state   HideState
	pending *pendingHide
	seq     uint64
}

// NewAutoHide creates a machine in the Shown state. A non-positive delay
// falls back to DefaultHideDelay.
func NewAutoHide(delay time.Duration, timers Deferrer, sink VisibilitySink) *AutoHide {
	if delay <= 0 {
		delay = DefaultHideDelay
	}
	return &AutoHide{delay: delay, timers: timers, sink: sink}
}

// State returns the current state.
func (a *AutoHide) State() HideState {
	return a.state
}

// Pending reports whether a hide timer is outstanding.
func (a *AutoHide) Pending() bool {
	return a.pending != nil
}

// PointerLeft starts the hide timer when the dock is shown. Leaving while a
// timer is already running or while hidden changes nothing.
func (a *AutoHide) PointerLeft() {
	if a.state != Shown {
		return
	}
	a.seq++
	a.pending = &pendingHide{token: a.seq}
	a.state = PendingHide
	a.timers.Defer(a.delay, a.seq)
}

// PointerEntered cancels any outstanding timer. A quick re-entry returns to
// Shown silently; entering while hidden emits a show.
func (a *AutoHide) PointerEntered() {
	a.Cancel()
	if a.state == Hidden {
		a.state = Shown
		a.sink.SetHidden(false)
	}
}

// Fire is called when the timer identified by token elapses. It hides the
// dock only if that timer is still the pending one, and reports whether it did.
func (a *AutoHide) Fire(token uint64) bool {
	if a.pending == nil || a.pending.token != token {
		return false
	}
	a.pending = nil
	a.state = Hidden
	a.sink.SetHidden(true)
	return true
}

// Cancel drops the pending timer, if any. It is safe to call at any time.
func (a *AutoHide) Cancel() {
	a.pending = nil
	if a.state == PendingHide {
		a.state = Shown
	}
}
