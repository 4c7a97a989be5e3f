package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polymer/pkg/errors"
	pio "github.com/matzehuels/polymer/pkg/io"
	"github.com/matzehuels/polymer/pkg/pipeline"
	"github.com/matzehuels/polymer/pkg/render"
)

// defaultBase names output files when neither --output nor --input is given.
const defaultBase = "polymer"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chain   chainFlags
	render  renderFlags
	input   string // existing XYZ file to render instead of generating
	output  string // base path; the format extension is appended
	formats string // comma-separated formats
	noCache bool
}

// renderCommand creates the render command for producing pictures.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chain as SVG, PNG, PDF, HTML or a bond diagram",
		Example: `  polymer render -n 30 -a 109.5 -f svg,png
  polymer render -n 200 -r 5 --seed 1 --style shaded -o out/coil
  polymer render --input chain.xyz -f html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var po pipeline.Options
			opts.chain.apply(cmd, c.Config, &po)
			opts.render.apply(cmd, c.Config, &po)
			po.Formats = pipeline.ParseFormats(opts.formats)
			if len(po.Formats) == 0 {
				po.Formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(po.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), po, &opts)
		},
	}

	opts.chain.register(cmd)
	opts.render.register(cmd)
	cmd.Flags().StringVar(&opts.input, "input", "", "render an existing XYZ file instead of generating")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input name or \"polymer\")")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG,
		"output format(s), comma-separated: "+strings.Join(pipeline.FormatNames(), ", "))
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, po pipeline.Options, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if slices.Contains(po.Formats, pipeline.FormatPNG) && !render.HasConverter() {
		c.ui.warn("%s not found, using the built-in PNG rasterizer", render.ConverterBinary)
	}

	spinner := newSpinner(ctx, c.ui.w, "Rendering "+strings.Join(po.Formats, ", ")+"...")
	spinner.Start()
	res, err := c.renderResult(ctx, runner, po, opts.input)
	if err != nil {
		spinner.Fail("Render failed")
		return err
	}
	spinner.Stop()

	base := basePath(opts.output, opts.input)
	var written []string
	for _, format := range po.Formats {
		path := base + "." + pipeline.Extension(format)
		if err := writeFile(path, res.Artifacts[format]); err != nil {
			return err
		}
		c.Logger.Debug("wrote artifact", "path", path, "bytes", len(res.Artifacts[format]))
		written = append(written, path)
	}

	c.ui.success("Rendered %d file(s)", len(written))
	for _, p := range written {
		c.ui.file(p)
	}
	c.ui.chainStats(res.Stats.Units, res.Stats.Bonds, res.CacheInfo.RenderHit)
	return nil
}

// renderResult generates a chain from po, or loads it from input.
func (c *CLI) renderResult(ctx context.Context, runner *pipeline.Runner, po pipeline.Options, input string) (*pipeline.Result, error) {
	if input == "" {
		return runner.Execute(ctx, po)
	}
	frame, err := pio.ImportXYZ(input)
	if err != nil {
		return nil, err
	}
	c.Logger.Infof("Loaded %s: %d atoms", input, frame.Points.Len())
	if frame.Points.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "%s contains no atoms", input)
	}
	if frame.Comment != "" {
		po.Comment = frame.Comment
	}
	return runner.RenderChain(ctx, frame.Points, po)
}

// basePath derives the output path without extension. Known format
// extensions on output are stripped; an empty output falls back to the
// input name.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return defaultBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	out := strings.TrimSuffix(output, ".bonds.svg")
	if out != output {
		return out
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
