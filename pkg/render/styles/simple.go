package styles

import (
	"bytes"
	"fmt"
)

// Simple draws flat atoms with a thin outline.
type Simple struct{}

func (Simple) Name() string { return NameSimple }

func (Simple) RenderDefs(*bytes.Buffer, []string) {}

func (Simple) RenderAtom(buf *bytes.Buffer, a Atom) {
	fill := ElementColor(a.Label)
	fmt.Fprintf(buf, `  <circle class="atom" data-index="%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="1" opacity="%.2f"><title>%s %d</title></circle>`+"\n",
		a.Index, a.X, a.Y, a.R, Hex(fill), Hex(Darken(fill, 0.6)), Opacity(a.Fade), EscapeXML(a.Label), a.Index)
}

func (Simple) RenderBond(buf *bytes.Buffer, b Bond) {
	fmt.Fprintf(buf, `  <line class="bond" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="round" opacity="%.2f"/>`+"\n",
		b.X1, b.Y1, b.X2, b.Y2, Hex(BondColor), b.Width, Opacity(b.Fade))
}
