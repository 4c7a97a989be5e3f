// Package sink provides output format renderers for polymer chains.
//
// # Overview
//
// A "sink" turns a [chain.Chain] into bytes in a final output format:
//
//   - SVG: ball-and-stick picture, one circle per atom, one line per bond
//   - PNG: raster picture (rsvg-convert, or a pure Go fallback)
//   - PDF: print-ready output (requires rsvg-convert)
//   - HTML: standalone page with an interactive 3Dmol.js viewer
//
// # SVG Output
//
//	svg := sink.RenderSVG(c,
//	    sink.WithSize(800, 600),
//	    sink.WithCamera(projection.Camera{Yaw: 30, Pitch: 20}),
//	    sink.WithStyle(styles.Shaded{}),
//	)
//
// Atoms and bonds are drawn back to front so nearer atoms cover farther
// ones. The atom radius is given in chain units and defaults to
// [DefaultRadius], matching the sphere radius of the HTML viewer.
//
// # PDF and PNG Output
//
//	pdf, err := sink.RenderPDF(ctx, c, sink.WithPDFSVGOptions(opts...))
//	png, err := sink.RenderPNG(ctx, c, sink.WithScale(2), sink.WithPNGSVGOptions(opts...))
//
// [chain.Chain]: github.com/matzehuels/polymer/pkg/chain.Chain
package sink
