package chain

import "math"

// DefaultLabel is the unit marker used for every generated point.
const DefaultLabel = "C"

// Point is a single labeled position in 3D space.
type Point struct {
	Label string  `json:"label" yaml:"label"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Z     float64 `json:"z" yaml:"z"`
}

// Chain is an ordered backbone. Point i is bonded to point i+1.
type Chain []Point

// Bond joins two consecutive points of a chain by index.
type Bond struct {
	From, To int
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Point
}

// Len returns the number of points.
func (c Chain) Len() int { return len(c) }

// Bonds returns the implicit backbone bonds in chain order.
func (c Chain) Bonds() []Bond {
	if len(c) < 2 {
		return nil
	}
	bonds := make([]Bond, 0, len(c)-1)
	for i := 1; i < len(c); i++ {
		bonds = append(bonds, Bond{From: i - 1, To: i})
	}
	return bonds
}

// Bounds returns the bounding box of all points. An empty chain yields a
// zero box.
func (c Chain) Bounds() Box {
	if len(c) == 0 {
		return Box{}
	}
	b := Box{
		Min: Point{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, p := range c {
		b.Min.X, b.Max.X = min(b.Min.X, p.X), max(b.Max.X, p.X)
		b.Min.Y, b.Max.Y = min(b.Min.Y, p.Y), max(b.Max.Y, p.Y)
		b.Min.Z, b.Max.Z = min(b.Min.Z, p.Z), max(b.Max.Z, p.Z)
	}
	return b
}

// Center returns the centroid of the chain.
func (c Chain) Center() Point {
	if len(c) == 0 {
		return Point{}
	}
	var p Point
	for _, q := range c {
		p.X += q.X
		p.Y += q.Y
		p.Z += q.Z
	}
	n := float64(len(c))
	return Point{X: p.X / n, Y: p.Y / n, Z: p.Z / n}
}

// Span returns the largest extent of the bounding box along any axis.
func (b Box) Span() float64 {
	return max(b.Max.X-b.Min.X, b.Max.Y-b.Min.Y, b.Max.Z-b.Min.Z)
}

// Clone returns an independent copy.
func (c Chain) Clone() Chain {
	if c == nil {
		return nil
	}
	out := make(Chain, len(c))
	copy(out, c)
	return out
}
