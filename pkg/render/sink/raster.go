package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/errors"
	"github.com/matzehuels/polymer/pkg/render/styles"
)

// maxRasterPixels bounds the builtin rasterizer's canvas.
const maxRasterPixels = 64 << 20

// rasterize draws the same scene as RenderSVG onto an in-memory canvas.
func rasterize(c chain.Chain, scale float64, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)
	w := int(math.Ceil(r.width * scale))
	h := int(math.Ceil(r.height * scale))
	if w*h > maxRasterPixels {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "image too large: %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	if r.background != "" {
		dc.SetHexColor(r.background)
		dc.Clear()
	}
	dc.Scale(scale, scale)

	atoms, bonds := r.build(c)
	shaded := r.style.Name() == styles.NameShaded

	bi := 0
	for _, a := range atoms {
		for bi < len(bonds) && bonds[bi].Fade >= a.Fade {
			drawBond(dc, bonds[bi])
			bi++
		}
		drawAtom(dc, a, shaded)
	}
	for ; bi < len(bonds); bi++ {
		drawBond(dc, bonds[bi])
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawBond(dc *gg.Context, b styles.Bond) {
	dc.SetColor(withOpacity(styles.BondColor, styles.Opacity(b.Fade)))
	dc.SetLineWidth(b.Width)
	dc.SetLineCap(gg.LineCapRound)
	dc.DrawLine(b.X1, b.Y1, b.X2, b.Y2)
	dc.Stroke()
}

func drawAtom(dc *gg.Context, a styles.Atom, shaded bool) {
	base := styles.ElementColor(a.Label)
	op := styles.Opacity(a.Fade)
	dc.DrawCircle(a.X, a.Y, a.R)
	if shaded {
		hx, hy := a.X-0.3*a.R, a.Y-0.3*a.R
		grad := gg.NewRadialGradient(hx, hy, 0, hx, hy, a.R*1.3)
		grad.AddColorStop(0, withOpacity(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, op))
		grad.AddColorStop(0.45, withOpacity(base, op))
		grad.AddColorStop(1, withOpacity(styles.Darken(base, 0.35), op))
		dc.SetFillStyle(grad)
		dc.Fill()
		return
	}
	dc.SetColor(withOpacity(base, op))
	dc.FillPreserve()
	dc.SetColor(withOpacity(styles.Darken(base, 0.6), op))
	dc.SetLineWidth(1)
	dc.Stroke()
}

func withOpacity(c color.RGBA, op float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(255 * max(0, min(1, op))))}
}
