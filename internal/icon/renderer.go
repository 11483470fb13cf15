package icon

import (
	"image"
	"strings"

	"github.com/muesli/termenv"
	xdraw "golang.org/x/image/draw"
)

// ASCII brightness ramp from darkest to brightest.
const asciiRamp = " .:-=+*#%@"

// opaque is the alpha at or above which a pixel is drawn.
const opaque = 0x80

// Renderer converts bitmaps into terminal rows. In color modes it packs two
// pixel rows per cell with "▀"/"▄"; without color it maps brightness to ASCII.
// Transparent pixels render as plain spaces so the background shows through.
type Renderer struct {
	profile termenv.Profile
	sb      strings.Builder
}

// NewRenderer creates a renderer for the color profile the environment
// advertises (TERM, COLORTERM, NO_COLOR).
func NewRenderer() *Renderer {
	return &Renderer{profile: termenv.EnvColorProfile()}
}

// Render draws b into cols x rows cells and returns one string per row. Each
// row is exactly cols cells wide.
func (r *Renderer) Render(b *Bitmap, cols, rows int) []string {
	if b == nil || b.img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	pixRows := rows * 2
	if r.profile == termenv.Ascii {
		pixRows = rows
	}
	px := resample(b.img, cols, pixRows)

	glyphRow, glyphCol := -1, -1
	if b.IsPlaceholder() {
		glyphRow, glyphCol = (rows-1)/2, (cols-1)/2
	}

	lines := make([]string, rows)
	for row := range rows {
		r.sb.Reset()
		if r.profile == termenv.Ascii {
			r.asciiRow(px, row, cols, glyphCol, row == glyphRow, b.glyph)
		} else {
			r.halfBlockRow(px, row, cols, glyphCol, row == glyphRow, b)
		}
		lines[row] = r.sb.String()
	}
	return lines
}

func (r *Renderer) halfBlockRow(px *image.RGBA, row, cols, glyphCol int, glyphRow bool, b *Bitmap) {
	var lastFg, lastBg string
	reset := func() {
		if lastFg != "" || lastBg != "" {
			r.sb.WriteString(ansiReset)
			lastFg, lastBg = "", ""
		}
	}
	setFg := func(c rgb) {
		if seq := colorSeq(r.profile, c, false); seq != lastFg {
			r.sb.WriteString(seq)
			lastFg = seq
		}
	}
	setBg := func(c rgb) {
		if seq := colorSeq(r.profile, c, true); seq != lastBg {
			r.sb.WriteString(seq)
			lastBg = seq
		}
	}

	for col := range cols {
		if glyphRow && col == glyphCol {
			setFg(rgb{R: 0xff, G: 0xff, B: 0xff})
			setBg(b.tint)
			r.sb.WriteRune(b.glyph)
			continue
		}
		top, topOK := pixel(px, col, row*2)
		bot, botOK := pixel(px, col, row*2+1)
		switch {
		case topOK && botOK:
			setFg(top)
			setBg(bot)
			r.sb.WriteString("▀")
		case topOK:
			if lastBg != "" {
				reset()
			}
			setFg(top)
			r.sb.WriteString("▀")
		case botOK:
			if lastBg != "" {
				reset()
			}
			setFg(bot)
			r.sb.WriteString("▄")
		default:
			reset()
			r.sb.WriteByte(' ')
		}
	}
	reset()
}

func (r *Renderer) asciiRow(px *image.RGBA, row, cols, glyphCol int, glyphRow bool, glyph rune) {
	for col := range cols {
		if glyphRow && col == glyphCol {
			r.sb.WriteRune(glyph)
			continue
		}
		c, ok := pixel(px, col, row)
		if !ok {
			r.sb.WriteByte(' ')
			continue
		}
		r.sb.WriteByte(brightnessChar(luminance(c)))
	}
}

// resample scales src to exactly w x h pixels.
func resample(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// pixel returns the straight-alpha color at (x, y) and whether it is opaque
// enough to draw.
func pixel(img *image.RGBA, x, y int) (rgb, bool) {
	if !(image.Point{X: x, Y: y}.In(img.Rect)) {
		return rgb{}, false
	}
	c := img.RGBAAt(x, y)
	if c.A < opaque {
		return rgb{}, false
	}
	if c.A == 0xff {
		return rgb{R: c.R, G: c.G, B: c.B}, true
	}
	return rgb{
		R: uint8(int(c.R) * 0xff / int(c.A)),
		G: uint8(int(c.G) * 0xff / int(c.A)),
		B: uint8(int(c.B) * 0xff / int(c.A)),
	}, true
}

// luminance computes perceived brightness (ITU-R BT.601).
func luminance(c rgb) uint8 {
	return uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
}

// brightnessChar maps a 0-255 luminance to an ASCII character. Opaque pixels
// never map to a blank.
func brightnessChar(lum uint8) byte {
	idx := 1 + int(lum)*(len(asciiRamp)-2)/255
	return asciiRamp[idx]
}
