package dock

// Pointer is the last known pointer position and whether it is over the dock.
type Pointer struct {
	X        float64
	Hovering bool
}

// Tracker owns the pointer state. Only its methods mutate it.
type Tracker struct {
	state Pointer
}

// State returns the current pointer state.
func (t *Tracker) State() Pointer {
	return t.state
}

// Move records movement over the dock surface.
func (t *Tracker) Move(x float64) {
	t.state = Pointer{X: x, Hovering: true}
}

// Global records movement anywhere in the window. It only updates X while a
// hover that started on the dock surface is still active, and reports whether
// the state changed.
func (t *Tracker) Global(x float64) bool {
	if !t.state.Hovering {
		return false
	}
	t.state.X = x
	return true
}

// Leave ends the hover. It reports whether the pointer had been hovering.
func (t *Tracker) Leave() bool {
	was := t.state.Hovering
	t.state.Hovering = false
	return was
}
