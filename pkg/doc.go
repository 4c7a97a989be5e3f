// Package pkg provides the libraries behind the polymer command.
//
// # Overview
//
// Polymer grows a toy polymer backbone: every unit sits one step from the
// previous one in the plane, turns by a fixed bond angle plus optional random
// jitter, and climbs one unit along z. The chain is written as XYZ text and
// can be rendered as ball-and-stick pictures, a Graphviz bond diagram or a
// browser 3D viewer page.
//
// # Architecture
//
// The data flow:
//
//	units, bond angle, rigidity
//	         ↓
//	    [chain] (generate points)
//	         ↓
//	    [io] (XYZ, JSON, YAML)
//	         ↓
//	    [render] (projection, styles, SVG/PNG/PDF/HTML, bond diagrams)
//
// [pipeline] ties the stages together with validation, defaults and an
// artifact [cache]. The CLI and [server] both drive the pipeline.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/polymer/pkg/chain"
//	    "github.com/matzehuels/polymer/pkg/io"
//	    "github.com/matzehuels/polymer/pkg/render/sink"
//	)
//
//	c, _ := chain.Generate(40, 109.5, 3, chain.WithSeed(7))
//	xyz, _ := io.FormatXYZ(c.Len(), c)
//	svg := sink.RenderSVG(c)
//
// # Main Packages
//
//   - [chain]: chain generation with an injectable random source
//   - [io]: XYZ writer and parser, JSON/YAML chain documents
//   - [render/projection]: camera rotation and depth ordering
//   - [render/styles]: atom and bond drawing styles
//   - [render/sink]: SVG, PNG, PDF and HTML outputs
//   - [render/bonds]: Graphviz bond diagrams
//   - [pipeline]: options, validation and the cached runner
//   - [cache]: file, Redis and null artifact caches
//   - [config]: layered configuration
//   - [server]: HTTP API and websocket
//   - [errors]: coded errors
//   - [observability]: pipeline, cache and HTTP hooks
//
// [chain]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/chain
// [io]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/render
// [render/projection]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/render/projection
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/render/styles
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/render/sink
// [render/bonds]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/render/bonds
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/polymer/pkg/observability
package pkg
