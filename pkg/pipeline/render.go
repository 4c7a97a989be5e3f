package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/errors"
	pio "github.com/matzehuels/polymer/pkg/io"
	"github.com/matzehuels/polymer/pkg/observability"
	"github.com/matzehuels/polymer/pkg/render/bonds"
	"github.com/matzehuels/polymer/pkg/render/sink"
	"github.com/matzehuels/polymer/pkg/render/styles"
)

// Render generates output artifacts in the requested formats. xyz must be
// the serialization of c. params is recorded in JSON/YAML documents and may
// be nil for imported chains.
func Render(ctx context.Context, c chain.Chain, xyz string, params *chain.Params, opts Options) (map[string][]byte, error) {
	start := time.Now()
	artifacts, err := render(ctx, c, xyz, params, opts)

	observability.Pipeline().OnRender(ctx, observability.RenderEvent{
		Formats:  opts.Formats,
		Duration: time.Since(start),
		Err:      err,
	})
	return artifacts, err
}

func render(ctx context.Context, c chain.Chain, xyz string, params *chain.Params, opts Options) (map[string][]byte, error) {
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatXYZ:
			data = []byte(xyz)
		case FormatJSON, FormatYAML, FormatMsgpack:
			data, err = renderDocument(format, pio.NewDocument(c, opts.comment(), params))
		case FormatSVG:
			data = sink.RenderSVG(c, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, c, sink.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, c, sink.WithPDFSVGOptions(svgOpts...))
		case FormatHTML:
			data, err = sink.RenderHTML(xyz,
				sink.WithHTMLTitle(opts.comment()),
				sink.WithHTMLSize(int(opts.Width), int(opts.Height)),
				sink.WithHTMLRadius(opts.Radius))
		case FormatDOT:
			data = []byte(bonds.ToDOT(c, bondOptions(opts)))
		case FormatBonds:
			data, err = bonds.RenderSVG(ctx, bonds.ToDOT(c, bondOptions(opts)))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderDocument(format string, doc pio.Document) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatYAML:
		err = pio.WriteYAML(&buf, doc)
	case FormatMsgpack:
		err = pio.WriteMsgpack(&buf, doc)
	default:
		err = pio.WriteJSON(&buf, doc)
	}
	return buf.Bytes(), err
}

// buildSVGOptions builds ball-and-stick rendering options.
func buildSVGOptions(opts Options) ([]sink.SVGOption, error) {
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}
	return []sink.SVGOption{
		sink.WithSize(opts.Width, opts.Height),
		sink.WithCamera(opts.Camera()),
		sink.WithStyle(style),
		sink.WithRadius(opts.Radius),
		sink.WithTitle(opts.comment()),
		sink.WithBackground("#ffffff"),
	}, nil
}

// bondOptions sizes bond diagrams in points from the pixel canvas.
func bondOptions(opts Options) bonds.Options {
	return bonds.Options{
		Detailed: opts.Detailed,
		Camera:   opts.Camera(),
		Width:    opts.Width * 0.75,
		Height:   opts.Height * 0.75,
	}
}
