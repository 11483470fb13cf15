package icon

import (
	"image"
	"image/color"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const (
	tileSize   = 64
	tileRadius = 14
)

// Bitmap is the picture drawn for one dock item: either a decoded icon or a
// generated placeholder tile carrying the item's initial.
type Bitmap struct {
	img   image.Image
	glyph rune
	tint  rgb
}

// FromImage wraps a decoded icon.
func FromImage(img image.Image) *Bitmap {
	return &Bitmap{img: img}
}

// Placeholder returns the tile shown for name when no icon is available. The
// same name always yields the same tile.
func Placeholder(name string) *Bitmap {
	tint := placeholderTint(name)
	return &Bitmap{
		img:   roundedTile(tileSize, tileRadius, color.RGBA{R: tint.R, G: tint.G, B: tint.B, A: 0xff}),
		glyph: Initial(name),
		tint:  tint,
	}
}

// Image returns the underlying picture.
func (b *Bitmap) Image() image.Image {
	return b.img
}

// IsPlaceholder reports whether b was generated rather than decoded.
func (b *Bitmap) IsPlaceholder() bool {
	return b.glyph != 0
}

// Glyph returns the initial drawn on a placeholder, or 0.
func (b *Bitmap) Glyph() rune {
	return b.glyph
}

// Tint returns the placeholder background color.
func (b *Bitmap) Tint() color.RGBA {
	return color.RGBA{R: b.tint.R, G: b.tint.G, B: b.tint.B, A: 0xff}
}

// Initial returns the upper-cased first letter or digit of name, or '?'.
// Wide runes fall back to '?' so the glyph fits one cell.
func Initial(name string) rune {
	for _, r := range strings.TrimSpace(name) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		r = unicode.ToUpper(r)
		if runewidth.RuneWidth(r) != 1 {
			return '?'
		}
		return r
	}
	return '?'
}

func nameHash(name string) uint32 {
	var h uint32
	for _, r := range name {
		h = h*31 + uint32(r)
	}
	return h
}

func placeholderTint(name string) rgb {
	hue := float64(nameHash(name)%360) / 360
	return hsv(hue, 0.55, 0.80)
}

// roundedTile draws an opaque square of the given color with transparent
// rounded corners.
func roundedTile(size, radius int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r2 := radius * radius
	for y := range size {
		for x := range size {
			cx, cy := x, y
			switch {
			case x < radius:
				cx = radius
			case x >= size-radius:
				cx = size - radius - 1
			}
			switch {
			case y < radius:
				cy = radius
			case y >= size-radius:
				cy = size - radius - 1
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}
