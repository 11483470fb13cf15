package dock

import (
	"math"
	"testing"
)

func testTuning() Tuning {
	return Tuning{
		MaxScale:           1.65,
		InfluenceRadius:    200,
		PreRoll:            40,
		LerpRate:           0.25,
		SpringRate:         0.12,
		Epsilon:            0.001,
		MagnifiedThreshold: 1.15,
	}
}

func TestNewControllerStartsAtRest(t *testing.T) {
	c := NewController(4, testTuning())
	if c.Len() != 4 {
		t.Fatalf("expected 4 items, got %d", c.Len())
	}
	for i := range 4 {
		if c.Current(i) != 1 || c.Target(i) != 1 {
			t.Fatalf("item %d not at rest: current=%v target=%v", i, c.Current(i), c.Target(i))
		}
	}
}

func TestRecomputeUsesItemCenters(t *testing.T) {
	c := NewController(2, testTuning())
	bounds := Span{Left: 0, Right: 300}
	c.Recompute(Pointer{X: 100, Hovering: true}, bounds, []float64{100, 300})

	if got := c.Target(0); math.Abs(got-1.65) > 1e-9 {
		t.Fatalf("expected 1.65 on center, got %v", got)
	}
	if got := c.Target(1); math.Abs(got-1.0285) > 0.0001 {
		t.Fatalf("expected ~1.0285 at 200px, got %v", got)
	}
}

func TestRecomputeRespectsPreRoll(t *testing.T) {
	bounds := Span{Left: 100, Right: 200}
	centers := []float64{125, 175}

	tests := []struct {
		name   string
		p      Pointer
		active bool
	}{
		{name: "inside", p: Pointer{X: 150, Hovering: true}, active: true},
		{name: "within pre-roll right", p: Pointer{X: 230, Hovering: true}, active: true},
		{name: "within pre-roll left", p: Pointer{X: 70, Hovering: true}, active: true},
		{name: "on pre-roll edge", p: Pointer{X: 240, Hovering: true}, active: false},
		{name: "beyond pre-roll", p: Pointer{X: 300, Hovering: true}, active: false},
		{name: "not hovering", p: Pointer{X: 150}, active: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(2, testTuning())
			c.Recompute(tt.p, bounds, centers)
			magnified := c.Target(0) > 1 || c.Target(1) > 1
			if magnified != tt.active {
				t.Fatalf("expected active=%v, targets %v %v", tt.active, c.Target(0), c.Target(1))
			}
		})
	}
}

func TestStepConvergesToTarget(t *testing.T) {
	for _, hovering := range []bool{true, false} {
		c := NewController(3, testTuning())
		c.Recompute(Pointer{X: 50, Hovering: true}, Span{Left: 0, Right: 150}, []float64{25, 75, 125})

		frames := 0
		for c.Step(hovering) {
			frames++
			if frames > 1000 {
				t.Fatalf("hovering=%v: did not converge", hovering)
			}
		}
		for i := range 3 {
			if math.Abs(c.Current(i)-c.Target(i)) > testTuning().Epsilon {
				t.Fatalf("hovering=%v: item %d at %v, target %v", hovering, i, c.Current(i), c.Target(i))
			}
		}
	}
}

func TestStepHoverIsFasterThanRelease(t *testing.T) {
	count := func(hovering bool) int {
		c := NewController(1, testTuning())
		c.Recompute(Pointer{X: 0, Hovering: true}, Span{Left: -10, Right: 10}, []float64{0})
		n := 0
		for c.Step(hovering) {
			n++
		}
		return n
	}
	if fast, slow := count(true), count(false); fast >= slow {
		t.Fatalf("expected hover (%d frames) to settle faster than release (%d frames)", fast, slow)
	}
}

func TestStepSnapsWithinEpsilon(t *testing.T) {
	c := NewController(1, testTuning())
	c.target[0] = 1.0005
	if c.Step(true) {
		t.Fatal("expected no convergence work inside epsilon")
	}
	if c.Current(0) != 1.0005 {
		t.Fatalf("expected snap to target, got %v", c.Current(0))
	}
}

func TestMagnifiedThreshold(t *testing.T) {
	c := NewController(1, testTuning())
	c.current[0] = 1.15
	if c.Magnified(0) {
		t.Fatal("expected threshold to be exclusive")
	}
	c.current[0] = 1.16
	if !c.Magnified(0) {
		t.Fatal("expected item above threshold to be magnified")
	}
}
