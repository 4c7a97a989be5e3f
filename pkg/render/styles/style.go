// Package styles defines how atoms and bonds of a projected chain are drawn.
//
// Two styles ship with polymer: [Simple] draws flat discs and plain sticks,
// [Shaded] adds a radial highlight to every atom so the ball-and-stick model
// reads as 3D. Both fade atoms toward the background with depth.
package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/polymer/pkg/errors"
)

// Style names accepted by [Lookup].
const (
	NameSimple = "simple"
	NameShaded = "shaded"
)

// Names lists all registered style names.
var Names = []string{NameSimple, NameShaded}

// Style defines the visual appearance of a ball-and-stick picture.
type Style interface {
	// Name returns the identifier used on the command line and in config.
	Name() string
	// RenderDefs writes SVG <defs> content (gradients, filters).
	RenderDefs(buf *bytes.Buffer, labels []string)
	// RenderAtom writes the SVG for one atom.
	RenderAtom(buf *bytes.Buffer, a Atom)
	// RenderBond writes the SVG for one backbone bond.
	RenderBond(buf *bytes.Buffer, b Bond)
}

// Atom contains everything needed to draw a single atom.
type Atom struct {
	Index int
	Label string
	X, Y  float64
	R     float64
	Fade  float64 // 0 nearest, 1 farthest
}

// Bond contains the endpoints of a backbone segment.
type Bond struct {
	From, To       int
	X1, Y1, X2, Y2 float64
	Width          float64
	Fade           float64
}

// Lookup returns the style registered under name. An empty name selects
// [Simple].
func Lookup(name string) (Style, error) {
	switch name {
	case "", NameSimple:
		return Simple{}, nil
	case NameShaded:
		return Shaded{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want one of %v)", name, Names)
}

// Opacity maps a depth fade to an SVG opacity.
func Opacity(fade float64) float64 {
	return 1 - 0.45*max(0, min(1, fade))
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func gradientID(label string) string {
	return fmt.Sprintf("atom-%x", label)
}
