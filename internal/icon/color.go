package icon

import (
	"fmt"
	"math"

	"github.com/muesli/termenv"
)

type rgb struct {
	R, G, B uint8
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func hsv(h, s, v float64) rgb {
	h = math.Mod(h, 1)
	if h < 0 {
		h += 1
	}
	s = clamp01(s)
	v = clamp01(v)

	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return rgb{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255)}
}

const ansiReset = termenv.CSI + termenv.ResetSeq + "m"

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// colorSeq returns the escape sequence selecting c as foreground or
// background, reduced to what profile supports. Ascii yields "".
func colorSeq(profile termenv.Profile, c rgb, bg bool) string {
	seq := profile.Color(c.hex()).Sequence(bg)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}
