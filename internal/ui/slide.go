package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// slide animates how many band rows are pushed below the screen edge.
type slide struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newSlide(fps int) slide {
	return slide{spring: harmonica.NewSpring(harmonica.FPS(fps), 9.0, 1.0)}
}

// step advances one frame and reports whether the slide is still moving.
func (s *slide) step() bool {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < 0.01 && math.Abs(s.vel) < 0.01 {
		s.pos, s.vel = s.target, 0
		return false
	}
	return true
}

func (s slide) rows() int {
	r := int(math.Round(s.pos))
	if r < 0 {
		return 0
	}
	return r
}
