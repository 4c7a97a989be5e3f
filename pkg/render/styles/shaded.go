package styles

import (
	"bytes"
	"fmt"
	"slices"
)

// Shaded fills atoms with an off-center radial gradient per element and
// draws bonds with a darker rim.
type Shaded struct{}

func (Shaded) Name() string { return NameShaded }

func (Shaded) RenderDefs(buf *bytes.Buffer, labels []string) {
	if len(labels) == 0 {
		return
	}
	seen := slices.Clone(labels)
	slices.Sort(seen)
	seen = slices.Compact(seen)

	buf.WriteString("  <defs>\n")
	for _, l := range seen {
		c := ElementColor(l)
		fmt.Fprintf(buf, `    <radialGradient id="%s" cx="35%%" cy="35%%" r="65%%">`+"\n", gradientID(l))
		buf.WriteString(`      <stop offset="0%" stop-color="#ffffff"/>` + "\n")
		fmt.Fprintf(buf, `      <stop offset="45%%" stop-color="%s"/>`+"\n", Hex(c))
		fmt.Fprintf(buf, `      <stop offset="100%%" stop-color="%s"/>`+"\n", Hex(Darken(c, 0.35)))
		buf.WriteString("    </radialGradient>\n")
	}
	buf.WriteString("  </defs>\n")
}

func (Shaded) RenderAtom(buf *bytes.Buffer, a Atom) {
	fmt.Fprintf(buf, `  <circle class="atom" data-index="%d" cx="%.2f" cy="%.2f" r="%.2f" fill="url(#%s)" opacity="%.2f"><title>%s %d</title></circle>`+"\n",
		a.Index, a.X, a.Y, a.R, gradientID(a.Label), Opacity(a.Fade), EscapeXML(a.Label), a.Index)
}

func (Shaded) RenderBond(buf *bytes.Buffer, b Bond) {
	op := Opacity(b.Fade)
	fmt.Fprintf(buf, `  <line class="bond" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="round" opacity="%.2f"/>`+"\n",
		b.X1, b.Y1, b.X2, b.Y2, Hex(Darken(BondColor, 0.5)), b.Width*1.3, op)
	fmt.Fprintf(buf, `  <line class="bond-core" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#b0b0b0" stroke-width="%.2f" stroke-linecap="round" opacity="%.2f"/>`+"\n",
		b.X1, b.Y1, b.X2, b.Y2, b.Width*0.6, op)
}
