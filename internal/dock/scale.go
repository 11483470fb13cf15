package dock

import "math"

// Tuning controls how targets are derived and how fast scales chase them.
type Tuning struct {
	MaxScale           float64
	InfluenceRadius    float64
	PreRoll            float64 // pixels beyond the dock edges where magnification already applies
	LerpRate           float64 // smoothing rate while hovering
	SpringRate         float64 // smoothing rate while settling back to rest
	Epsilon            float64
	MagnifiedThreshold float64
}

// Controller keeps the current and target scale of every item. The two
// slices always have the same length as the item set and start at 1.
type Controller struct {
	tuning  Tuning
	current []float64
	target  []float64
}

// NewController creates a controller for n items at rest scale.
func NewController(n int, t Tuning) *Controller {
	c := &Controller{
		tuning:  t,
		current: make([]float64, n),
		target:  make([]float64, n),
	}
	for i := range n {
		c.current[i] = 1
		c.target[i] = 1
	}
	return c
}

// Len returns the number of items.
func (c *Controller) Len() int {
	return len(c.current)
}

// Current returns the animated scale of item i.
func (c *Controller) Current(i int) float64 {
	return c.current[i]
}

// Target returns the scale item i is converging toward.
func (c *Controller) Target(i int) float64 {
	return c.target[i]
}

// Magnified reports whether item i is past the emphasis threshold.
func (c *Controller) Magnified(i int) bool {
	return c.current[i] > c.tuning.MagnifiedThreshold
}

// Recompute derives every target from the pointer. Items magnify only while
// the pointer hovers within the dock span widened by the pre-roll margin;
// otherwise every target returns to rest.
func (c *Controller) Recompute(p Pointer, bounds Span, centers []float64) {
	active := p.Hovering &&
		p.X > bounds.Left-c.tuning.PreRoll &&
		p.X < bounds.Right+c.tuning.PreRoll
	for i := range c.target {
		if !active || i >= len(centers) {
			c.target[i] = 1
			continue
		}
		d := math.Abs(p.X - centers[i])
		c.target[i] = Magnification(d, c.tuning.InfluenceRadius, c.tuning.MaxScale)
	}
}

// Step advances every current scale one frame toward its target and reports
// whether any item is still converging. Hovering uses the faster lerp rate,
// release uses the slower spring rate.
func (c *Controller) Step(hovering bool) bool {
	rate := c.tuning.SpringRate
	if hovering {
		rate = c.tuning.LerpRate
	}
	converging := false
	for i := range c.current {
		diff := c.target[i] - c.current[i]
		if math.Abs(diff) > c.tuning.Epsilon {
			c.current[i] += diff * rate
			converging = true
		} else {
			c.current[i] = c.target[i]
		}
	}
	return converging
}
