// Package bonds renders the chain backbone as a Graphviz bond diagram.
//
// # Overview
//
// Each point becomes a circular node colored by element, each backbone bond
// an undirected edge. Node positions are pinned to the orthographic
// projection of the chain so the diagram has the same shape as the
// ball-and-stick picture; Graphviz only draws it.
//
// # Usage
//
//	dot := bonds.ToDOT(c, bonds.Options{Camera: projection.DefaultCamera()})
//	svg, err := bonds.RenderSVG(ctx, dot)
//
// The SVG can be converted further with [render.ToPDF] or [render.ToPNG].
//
// # DOT Format
//
// The [ToDOT] output can be saved and processed with external Graphviz
// tools. Run it through neato (or use -n with other layouts) so the pinned
// positions are respected.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package bonds
