package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/polymer/pkg/chain"
	pio "github.com/matzehuels/polymer/pkg/io"
	"github.com/matzehuels/polymer/pkg/observability"
)

// Generate builds a chain from validated options and reports it to the
// pipeline hooks.
func Generate(ctx context.Context, opts Options) (chain.Chain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	c, err := chain.GenerateParams(opts.Params(), opts.generateOptions()...)

	observability.Pipeline().OnGenerate(ctx, observability.GenerateEvent{
		Units:        opts.Units,
		Reproducible: opts.IsReproducible(),
		Duration:     time.Since(start),
		Err:          err,
	})
	return c, err
}

// formatChain serializes c as XYZ with the options' comment.
func formatChain(c chain.Chain, opts Options) (string, error) {
	return pio.FormatXYZ(len(c), c, pio.WithComment(opts.comment()))
}

func (o *Options) comment() string {
	if o.Comment == "" {
		return pio.DefaultComment
	}
	return o.Comment
}
