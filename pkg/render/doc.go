// Package render turns polymer chains into pictures.
//
// # Overview
//
// The rendering pipeline projects a 3D [chain.Chain] onto a 2D viewport and
// writes it out in one of several formats:
//
//   - Ball-and-stick SVG, PNG and PDF (in [sink])
//   - A standalone HTML page with an interactive 3D viewer (in [sink])
//   - A Graphviz bond diagram of the backbone (in [bonds])
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They are shared by the
// ball-and-stick and bond diagram renderers.
//
//	svg := sink.RenderSVG(c, sink.WithStyle(styles.Shaded{}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// When rsvg-convert is missing the conversion functions fail with an
// UNSUPPORTED error. [sink.RenderPNG] falls back to a pure Go rasterizer
// in that case; PDF has no fallback.
//
// # Subpackages
//
//   - [projection]: camera rotation, viewport fitting, depth ordering
//   - [styles]: atom and bond appearance (simple, shaded)
//   - [sink]: output formats
//   - [bonds]: DOT export and Graphviz rendering
//
// [chain.Chain]: github.com/matzehuels/polymer/pkg/chain.Chain
// [sink]: github.com/matzehuels/polymer/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/polymer/pkg/render/sink.RenderPNG
// [bonds]: github.com/matzehuels/polymer/pkg/render/bonds
// [projection]: github.com/matzehuels/polymer/pkg/render/projection
// [styles]: github.com/matzehuels/polymer/pkg/render/styles
package render
