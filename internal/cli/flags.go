package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/polymer/pkg/config"
	"github.com/matzehuels/polymer/pkg/pipeline"
)

// chainFlags are the generation flags shared by generate, render and view.
// Values from the config file apply unless a flag is set explicitly.
type chainFlags struct {
	units    int
	angle    float64
	rigidity float64
	seed     uint64
	label    string
	comment  string
}

func (f *chainFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.units, "units", "n", pipeline.DefaultUnits, "number of units in the chain")
	fs.Float64VarP(&f.angle, "angle", "a", pipeline.DefaultAngle, "bond angle in degrees (0-180)")
	fs.Float64VarP(&f.rigidity, "rigidity", "r", pipeline.DefaultRigidity, "random heading jitter in degrees (0-10)")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed for reproducible chains")
	fs.StringVar(&f.label, "label", "C", "atom label written for every unit")
	fs.StringVar(&f.comment, "comment", "", "XYZ comment line")
}

// apply fills the generation fields of opts from cfg, then from any flag the
// user set.
func (f *chainFlags) apply(cmd *cobra.Command, cfg *config.Config, opts *pipeline.Options) {
	opts.Units = cfg.Chain.Units
	opts.Angle = cfg.Chain.Angle
	opts.Rigidity = cfg.Chain.Rigidity
	opts.Label = cfg.Chain.Label
	opts.Comment = cfg.Chain.Comment

	fs := cmd.Flags()
	if fs.Changed("units") {
		opts.Units = f.units
	}
	if fs.Changed("angle") {
		opts.Angle = f.angle
	}
	if fs.Changed("rigidity") {
		opts.Rigidity = f.rigidity
	}
	if fs.Changed("seed") {
		seed := f.seed
		opts.Seed = &seed
	}
	if fs.Changed("label") {
		opts.Label = f.label
	}
	if fs.Changed("comment") {
		opts.Comment = f.comment
	}
}

// renderFlags control picture output.
type renderFlags struct {
	style    string
	width    float64
	height   float64
	yaw      float64
	pitch    float64
	zoom     float64
	radius   float64
	detailed bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple, shaded")
	fs.Float64Var(&f.width, "width", pipeline.DefaultWidth, "picture width in pixels")
	fs.Float64Var(&f.height, "height", pipeline.DefaultHeight, "picture height in pixels")
	fs.Float64Var(&f.yaw, "yaw", 30, "camera rotation about the chain axis in degrees")
	fs.Float64Var(&f.pitch, "pitch", 20, "camera tilt in degrees")
	fs.Float64Var(&f.zoom, "zoom", 1, "zoom factor")
	fs.Float64Var(&f.radius, "radius", pipeline.DefaultRadius, "atom radius in chain units")
	fs.BoolVar(&f.detailed, "detailed", false, "label atoms with their index in bond diagrams")
}

func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config, opts *pipeline.Options) {
	opts.Style = cfg.Render.Style
	opts.Width = cfg.Render.Width
	opts.Height = cfg.Render.Height
	opts.Yaw = cfg.Render.Yaw
	opts.Pitch = cfg.Render.Pitch
	opts.Radius = cfg.Render.Radius
	opts.Zoom = f.zoom
	opts.Detailed = f.detailed

	fs := cmd.Flags()
	if fs.Changed("style") {
		opts.Style = f.style
	}
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("yaw") {
		opts.Yaw = f.yaw
	}
	if fs.Changed("pitch") {
		opts.Pitch = f.pitch
	}
	if fs.Changed("radius") {
		opts.Radius = f.radius
	}
}
