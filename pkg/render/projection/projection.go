// Package projection maps chain coordinates onto a 2D viewport.
//
// The camera is orthographic and looks along +Y with Z pointing up, so the
// chain's growth axis is vertical on screen. Yaw rotates the chain about Z,
// pitch then tilts it about the screen's horizontal axis. The chain is
// centered on its centroid and scaled to fit the viewport.
//
// [Project] returns atoms and bonds in painter's order (farthest first), which
// is what both the SVG sink and the terminal viewer need.
package projection

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/polymer/pkg/chain"
)

// Defaults used when a Camera or Viewport field is zero.
const (
	DefaultYaw    = 30.0
	DefaultPitch  = 20.0
	DefaultMargin = 40.0

	// DefaultUnitScale is the pixels-per-unit used when the chain has no
	// extent (a single point).
	DefaultUnitScale = 60.0
)

// Camera orients the chain. Angles are in degrees.
type Camera struct {
	Yaw   float64 `json:"yaw" yaml:"yaw"`
	Pitch float64 `json:"pitch" yaml:"pitch"`
	Zoom  float64 `json:"zoom" yaml:"zoom"` // 0 means 1
}

// DefaultCamera returns the camera used when none is configured.
func DefaultCamera() Camera {
	return Camera{Yaw: DefaultYaw, Pitch: DefaultPitch, Zoom: 1}
}

// Viewport is the target drawing area in output units.
type Viewport struct {
	Width, Height float64
	Margin        float64
	// AspectY scales vertical distances, e.g. 0.5 for terminal cells that
	// are twice as tall as wide. Zero means 1.
	AspectY float64
}

// Atom is a projected point.
type Atom struct {
	Index int
	Label string
	X, Y  float64
	Depth float64
}

// Bond is a projected backbone segment.
type Bond struct {
	From, To       int
	X1, Y1, X2, Y2 float64
	Depth          float64
}

// Scene is a projected chain.
type Scene struct {
	Atoms []Atom // farthest first
	Bonds []Bond // farthest first
	Scale float64
}

// Rotate applies the camera rotation to a point relative to the origin and
// returns screen-right, screen-up and depth components.
func (c Camera) Rotate(x, y, z float64) (sx, sy, depth float64) {
	yaw := c.Yaw * math.Pi / 180
	pitch := c.Pitch * math.Pi / 180

	x1 := x*math.Cos(yaw) - y*math.Sin(yaw)
	y1 := x*math.Sin(yaw) + y*math.Cos(yaw)

	y2 := y1*math.Cos(pitch) - z*math.Sin(pitch)
	z2 := y1*math.Sin(pitch) + z*math.Cos(pitch)

	return x1, z2, y2
}

// Project centers, rotates and fits c into vp.
func Project(c chain.Chain, cam Camera, vp Viewport) Scene {
	if len(c) == 0 {
		return Scene{}
	}
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	aspect := vp.AspectY
	if aspect <= 0 {
		aspect = 1
	}

	center := c.Center()
	raw := make([]Atom, len(c))
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range c {
		sx, sy, d := cam.Rotate(p.X-center.X, p.Y-center.Y, p.Z-center.Z)
		raw[i] = Atom{Index: i, Label: p.Label, X: sx, Y: sy, Depth: d}
		minX, maxX = min(minX, sx), max(maxX, sx)
		minY, maxY = min(minY, sy), max(maxY, sy)
	}

	scale := fitScale(maxX-minX, (maxY-minY)*aspect, vp) * zoom
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	atoms := make([]Atom, len(raw))
	for i, a := range raw {
		a.X = vp.Width/2 + (a.X-midX)*scale
		a.Y = vp.Height/2 - (a.Y-midY)*scale*aspect
		atoms[i] = a
	}

	bonds := make([]Bond, 0, max(0, len(atoms)-1))
	for _, b := range c.Bonds() {
		from, to := atoms[b.From], atoms[b.To]
		bonds = append(bonds, Bond{
			From: b.From, To: b.To,
			X1: from.X, Y1: from.Y,
			X2: to.X, Y2: to.Y,
			Depth: (from.Depth + to.Depth) / 2,
		})
	}

	slices.SortStableFunc(atoms, func(a, b Atom) int { return cmp.Compare(b.Depth, a.Depth) })
	slices.SortStableFunc(bonds, func(a, b Bond) int { return cmp.Compare(b.Depth, a.Depth) })

	return Scene{Atoms: atoms, Bonds: bonds, Scale: scale}
}

func fitScale(spanX, spanY float64, vp Viewport) float64 {
	margin := vp.Margin
	availW := max(vp.Width-2*margin, 1)
	availH := max(vp.Height-2*margin, 1)

	const eps = 1e-9
	switch {
	case spanX < eps && spanY < eps:
		return min(DefaultUnitScale, availW, availH)
	case spanX < eps:
		return availH / spanY
	case spanY < eps:
		return availW / spanX
	}
	return min(availW/spanX, availH/spanY)
}
