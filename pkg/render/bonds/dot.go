package bonds

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/errors"
	"github.com/matzehuels/polymer/pkg/render/projection"
	"github.com/matzehuels/polymer/pkg/render/styles"
)

const pointsPerInch = 72.0

// Options configures bond diagram generation.
type Options struct {
	// Detailed appends the point index to every node label.
	Detailed bool
	// Camera orients the chain before positions are pinned.
	Camera projection.Camera
	// Width and Height of the drawing area in points. Zero selects 576x432.
	Width, Height float64
}

// ToDOT converts a chain to Graphviz DOT with pinned node positions.
func ToDOT(c chain.Chain, opts Options) string {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 576
	}
	if h <= 0 {
		h = 432
	}
	scene := projection.Project(c, opts.Camera, projection.Viewport{Width: w, Height: h, Margin: 18})

	pos := make([][2]float64, len(c))
	for _, a := range scene.Atoms {
		// Graphviz y grows upward.
		pos[a.Index] = [2]float64{a.X / pointsPerInch, (h - a.Y) / pointsPerInch}
	}

	var buf bytes.Buffer
	buf.WriteString("graph polymer {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, width=0.35, fontsize=10, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [penwidth=2, color=\"#555555\"];\n")
	buf.WriteString("\n")

	for i, p := range c {
		attrs := fmtAttrs(i, p, pos[i], opts.Detailed)
		fmt.Fprintf(&buf, "  %d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, b := range c.Bonds() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", b.From, b.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(i int, p chain.Point, detailed bool) string {
	if !detailed {
		return p.Label
	}
	return p.Label + strconv.Itoa(i)
}

func fmtAttrs(i int, p chain.Point, pos [2]float64, detailed bool) []string {
	fill := styles.ElementColor(p.Label)
	return []string{
		fmt.Sprintf("label=%q", fmtLabel(i, p, detailed)),
		fmt.Sprintf("pos=\"%.4f,%.4f!\"", pos[0], pos[1]),
		fmt.Sprintf("fillcolor=%q", styles.Hex(fill)),
		fmt.Sprintf("color=%q", styles.Hex(styles.Darken(fill, 0.6))),
	}
}

// RenderSVG renders DOT source to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render bond diagram")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one so the diagram scales like the other SVG outputs.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
