package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/render/projection"
	"github.com/matzehuels/polymer/pkg/render/styles"
)

// Defaults for SVG output.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultRadius = 0.5 // chain units
	bondRatio     = 0.3 // bond width relative to atom radius
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	camera        projection.Camera
	style         styles.Style
	radius        float64
	title         string
	background    string
}

func WithSize(w, h float64) SVGOption          { return func(r *svgRenderer) { r.width, r.height = w, h } }
func WithCamera(c projection.Camera) SVGOption { return func(r *svgRenderer) { r.camera = c } }
func WithStyle(s styles.Style) SVGOption       { return func(r *svgRenderer) { r.style = s } }
func WithRadius(radius float64) SVGOption      { return func(r *svgRenderer) { r.radius = radius } }
func WithTitle(title string) SVGOption         { return func(r *svgRenderer) { r.title = title } }
func WithBackground(fill string) SVGOption     { return func(r *svgRenderer) { r.background = fill } }

// RenderSVG draws c as a ball-and-stick picture.
func RenderSVG(c chain.Chain, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	atoms, bonds := r.build(c)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", styles.EscapeXML(r.background))
	}

	labels := make([]string, len(c))
	for i, p := range c {
		labels[i] = p.Label
	}
	r.style.RenderDefs(&buf, labels)
	renderContent(&buf, r.style, atoms, bonds)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		width:  DefaultWidth,
		height: DefaultHeight,
		camera: projection.DefaultCamera(),
		style:  styles.Simple{},
		radius: DefaultRadius,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 {
		r.width = DefaultWidth
	}
	if r.height <= 0 {
		r.height = DefaultHeight
	}
	if r.radius <= 0 {
		r.radius = DefaultRadius
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	return r
}

// build projects c and converts the scene to style primitives. Both slices
// come back farthest first.
func (r svgRenderer) build(c chain.Chain) ([]styles.Atom, []styles.Bond) {
	margin := min(r.width, r.height) * 0.08
	scene := projection.Project(c, r.camera, projection.Viewport{
		Width: r.width, Height: r.height, Margin: margin,
	})
	if len(scene.Atoms) == 0 {
		return nil, nil
	}

	// Reserve room for atom radius inside the margin.
	atomR := r.radius * scene.Scale
	if atomR > margin && margin > 0 {
		shrink := margin / atomR
		scene = projection.Project(c, projection.Camera{
			Yaw: r.camera.Yaw, Pitch: r.camera.Pitch, Zoom: zoomOf(r.camera) * shrink,
		}, projection.Viewport{Width: r.width, Height: r.height, Margin: margin})
		atomR = r.radius * scene.Scale
	}

	nearest, farthest := scene.Atoms[len(scene.Atoms)-1].Depth, scene.Atoms[0].Depth
	fade := func(d float64) float64 {
		if farthest-nearest < 1e-9 {
			return 0
		}
		return (d - nearest) / (farthest - nearest)
	}

	atoms := make([]styles.Atom, len(scene.Atoms))
	for i, a := range scene.Atoms {
		atoms[i] = styles.Atom{
			Index: a.Index, Label: a.Label,
			X: a.X, Y: a.Y, R: atomR,
			Fade: fade(a.Depth),
		}
	}
	bonds := make([]styles.Bond, len(scene.Bonds))
	for i, b := range scene.Bonds {
		bonds[i] = styles.Bond{
			From: b.From, To: b.To,
			X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2,
			Width: atomR * bondRatio,
			Fade:  fade(b.Depth),
		}
	}
	return atoms, bonds
}

func zoomOf(c projection.Camera) float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// renderContent interleaves bonds and atoms by depth. A bond is drawn
// before any atom that is nearer than it.
func renderContent(buf *bytes.Buffer, s styles.Style, atoms []styles.Atom, bonds []styles.Bond) {
	bi := 0
	for _, a := range atoms {
		for bi < len(bonds) && bonds[bi].Fade >= a.Fade {
			s.RenderBond(buf, bonds[bi])
			bi++
		}
		s.RenderAtom(buf, a)
	}
	for ; bi < len(bonds); bi++ {
		s.RenderBond(buf, bonds[bi])
	}
}
