package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polymer/pkg/errors"
	"github.com/matzehuels/polymer/pkg/pipeline"
)

// generateFormats are the text formats the generate command writes.
var generateFormats = []string{pipeline.FormatXYZ, pipeline.FormatJSON, pipeline.FormatYAML, pipeline.FormatMsgpack}

type generateOpts struct {
	chain       chainFlags
	output      string
	format      string
	interactive bool
}

// generateCommand creates the command that writes a chain as text.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a polymer chain and write it as XYZ",
		Example: `  polymer generate -n 20 -a 109.5
  polymer generate -n 50 -r 4 --seed 7 -o chain.xyz
  polymer generate -n 10 -f json
  polymer generate -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var po pipeline.Options
			opts.chain.apply(cmd, c.Config, &po)
			return c.runGenerate(cmd.Context(), po, &opts)
		},
	}

	opts.chain.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatXYZ, "output format: xyz, json, yaml, msgpack")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for chain parameters")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, po pipeline.Options, opts *generateOpts) error {
	if !slices.Contains(generateFormats, opts.format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of %s)",
			opts.format, strings.Join(generateFormats, ", "))
	}
	if opts.interactive {
		if err := promptChain(&po); err != nil {
			return err
		}
	}
	po.Formats = []string{opts.format}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, po)
	if err != nil {
		return err
	}

	out, err := c.openOutput(opts.output)
	if err != nil {
		return err
	}
	if _, err := out.Write(res.Artifacts[opts.format]); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if opts.output == "" || opts.output == "-" {
		return nil
	}
	prog.done(fmt.Sprintf("Generated %d units", res.Stats.Units))
	c.ui.success("Wrote %s", opts.format)
	c.ui.file(opts.output)
	c.ui.chainStats(res.Stats.Units, res.Stats.Bonds, false)
	if opts.format == pipeline.FormatXYZ {
		c.ui.hint("Render it", "polymer render --input "+opts.output+" -f svg,png")
	}
	return nil
}
