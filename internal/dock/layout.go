package dock

// Layout holds the fixed geometry used to size icons at rest.
type Layout struct {
	Margin  float64 // total horizontal margin subtracted from the viewport
	Gap     float64 // space between adjacent items
	MinBase float64
	MaxBase float64
}

// RestSize computes the edge length that lets n icons plus n-1 gaps fill the
// viewport, clamped to [MinBase, MaxBase].
func (l Layout) RestSize(viewport float64, n int) float64 {
	if n < 1 {
		return l.MaxBase
	}
	available := viewport - l.Margin
	raw := (available - l.Gap*float64(n-1)) / float64(n)
	return l.clamp(raw)
}

func (l Layout) clamp(s float64) float64 {
	if s < l.MinBase {
		return l.MinBase
	}
	if s > l.MaxBase {
		return l.MaxBase
	}
	return s
}

// Span is a horizontal pixel range.
type Span struct {
	Left  float64
	Right float64
}

// Contains reports whether x lies within the span, edges included.
func (s Span) Contains(x float64) bool {
	return x >= s.Left && x <= s.Right
}

// Slot is the placement of one item in the dock row.
type Slot struct {
	Left float64
	Size float64
}

// Center returns the horizontal midpoint of the slot.
func (s Slot) Center() float64 {
	return s.Left + s.Size/2
}

// arrange lays sizes out left to right separated by gap and centers the row
// in the viewport.
func arrange(sizes []float64, gap, viewport float64) ([]Slot, Span) {
	if len(sizes) == 0 {
		mid := viewport / 2
		return nil, Span{Left: mid, Right: mid}
	}
	total := gap * float64(len(sizes)-1)
	for _, s := range sizes {
		total += s
	}
	left := (viewport - total) / 2
	slots := make([]Slot, len(sizes))
	x := left
	for i, s := range sizes {
		slots[i] = Slot{Left: x, Size: s}
		x += s + gap
	}
	return slots, Span{Left: left, Right: left + total}
}
