package styles

import (
	"image/color"
	"strings"
)

// CPK-like element colors keyed by upper-cased label.
var elementColors = map[string]color.RGBA{
	"C":  {R: 0x90, G: 0x90, B: 0x90, A: 0xff},
	"H":  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"O":  {R: 0xff, G: 0x0d, B: 0x0d, A: 0xff},
	"N":  {R: 0x30, G: 0x50, B: 0xf8, A: 0xff},
	"S":  {R: 0xff, G: 0xff, B: 0x30, A: 0xff},
	"P":  {R: 0xff, G: 0x80, B: 0x00, A: 0xff},
	"CL": {R: 0x1f, G: 0xf0, B: 0x1f, A: 0xff},
	"F":  {R: 0x90, G: 0xe0, B: 0x50, A: 0xff},
	"SI": {R: 0xf0, G: 0xc8, B: 0xa0, A: 0xff},
}

var fallbackColor = color.RGBA{R: 0xff, G: 0x14, B: 0x93, A: 0xff}

// BondColor is the stroke used for backbone sticks.
var BondColor = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}

// ElementColor returns the fill color for an atom label. Unknown labels get
// a bright pink so they stand out.
func ElementColor(label string) color.RGBA {
	if c, ok := elementColors[strings.ToUpper(label)]; ok {
		return c
	}
	return fallbackColor
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}

// Darken scales each channel of c by f in [0,1].
func Darken(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(float64(v) * max(0, min(1, f))) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
