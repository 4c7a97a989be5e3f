package sink

import (
	"context"

	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	noRsvg  bool
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithBuiltinRasterizer skips rsvg-convert even when it is installed.
func WithBuiltinRasterizer() PNGOption {
	return func(r *pngRenderer) { r.noRsvg = true }
}

// RenderPNG renders c as PNG. It converts the SVG with rsvg-convert when
// available and otherwise draws the same scene with the built-in rasterizer.
func RenderPNG(ctx context.Context, c chain.Chain, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	if r.noRsvg || !render.HasConverter() {
		return rasterize(c, r.scale, r.svgOpts...)
	}
	svg := RenderSVG(c, r.svgOpts...)
	return render.ToPNGContext(ctx, svg, r.scale)
}
