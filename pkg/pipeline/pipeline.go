// Package pipeline provides the generate → format → render pipeline for polymer.
//
// The CLI and the HTTP server both go through this package so that defaults,
// validation and caching behave the same at every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: build a [chain.Chain] from units, bond angle and rigidity
//  2. Format: serialize the chain as XYZ text
//  3. Render: produce the requested outputs (SVG, PNG, PDF, HTML, DOT, ...)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Units:   40,
//	    Angle:   109.5,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Chains are regenerated for every call. Only rendered pictures of
// reproducible requests (seeded, or rigidity 0) are cached.
//
// [chain.Chain]: github.com/matzehuels/polymer/pkg/chain.Chain
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polymer/pkg/cache"
	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/errors"
	"github.com/matzehuels/polymer/pkg/render/projection"
	"github.com/matzehuels/polymer/pkg/render/sink"
	"github.com/matzehuels/polymer/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultUnits is the number of units generated when none is given.
	DefaultUnits = 5

	// DefaultAngle is the default bond angle in degrees.
	DefaultAngle = 120.0

	// DefaultRigidity is the default heading jitter in degrees.
	DefaultRigidity = 0.0

	// DefaultWidth is the default picture width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultHeight is the default picture height in pixels.
	DefaultHeight = sink.DefaultHeight

	// DefaultRadius is the default atom radius in chain units.
	DefaultRadius = sink.DefaultRadius

	// DefaultStyle is the default visual style.
	DefaultStyle = styles.NameSimple

	// DefaultFilename is the suggested name for downloaded XYZ files.
	DefaultFilename = "polymer.xyz"
)

// Input bounds enforced at the UI boundary. The generator itself accepts
// any finite angle and any non-negative rigidity.
const (
	MinUnits    = 1
	MaxUnits    = 100000
	MinAngle    = 0.0
	MaxAngle    = 180.0
	MinRigidity = 0.0
	MaxRigidity = 10.0
	MaxCanvas   = 10000.0
)

// Format constants for output formats.
const (
	FormatXYZ     = "xyz"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatHTML    = "html"
	FormatDOT     = "dot"
	FormatBonds   = "bonds"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatXYZ:     true,
	FormatJSON:    true,
	FormatYAML:    true,
	FormatMsgpack: true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPDF:     true,
	FormatHTML:    true,
	FormatDOT:     true,
	FormatBonds:   true,
}

// cacheableFormats are the pictures worth caching.
var cacheableFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatBonds: true,
}

// FormatNames returns the supported formats in a stable order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// Extension returns the file extension used when writing format to disk.
func Extension(format string) string {
	switch format {
	case FormatBonds:
		return "bonds.svg"
	case FormatDOT:
		return "dot"
	}
	return format
}

// ContentType returns the MIME type served for format.
func ContentType(format string) string {
	switch format {
	case FormatXYZ, FormatDOT:
		return "text/plain; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatMsgpack:
		return "application/msgpack"
	case FormatSVG, FormatBonds:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API and websocket requests.
type Options struct {
	// Generate options
	Units    int     `json:"units"`
	Angle    float64 `json:"angle"`
	Rigidity float64 `json:"rigidity"`
	Seed     *uint64 `json:"seed,omitempty"`
	Label    string  `json:"label,omitempty"`
	Comment  string  `json:"comment,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Yaw      float64  `json:"yaw"`
	Pitch    float64  `json:"pitch"`
	Zoom     float64  `json:"zoom,omitempty"`
	Radius   float64  `json:"radius,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // index labels in bond diagrams

	// Runtime options (not serialized)
	Logger *log.Logger  `json:"-"`
	Source chain.Source `json:"-"` // overrides Seed when set
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chain is the generated backbone.
	Chain chain.Chain

	// XYZ is the serialized point cloud.
	XYZ string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Units        int
	Bonds        int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache use during rendering.
type CacheInfo struct {
	Cacheable bool // Whether the request was reproducible
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := styles.Lookup(style)
	return err
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies render defaults and validates everything.
// Generation parameters are never defaulted: zero units is an error.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetRenderDefaults()
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// ValidateForGenerate checks generation parameters against the UI bounds.
func (o *Options) ValidateForGenerate() error {
	if err := errors.ValidateUnitCount(o.Units); err != nil {
		return err
	}
	if o.Units > MaxUnits {
		return errors.New(errors.ErrCodeInvalidArgument, "unit count must be at most %d, got %d", MaxUnits, o.Units)
	}
	if err := errors.ValidateRange("angle", o.Angle, MinAngle, MaxAngle); err != nil {
		return err
	}
	if err := errors.ValidateRange("rigidity", o.Rigidity, MinRigidity, MaxRigidity); err != nil {
		return err
	}
	if o.Label != "" {
		if err := errors.ValidateLabel(o.Label); err != nil {
			return err
		}
	}
	return errors.ValidateComment(o.Comment)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatXYZ}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.Zoom == 0 {
		o.Zoom = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates render options. Call SetRenderDefaults first.
func (o *Options) ValidateForRender() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := errors.ValidateRange("width", o.Width, 1, MaxCanvas); err != nil {
		return err
	}
	if err := errors.ValidateRange("height", o.Height, 1, MaxCanvas); err != nil {
		return err
	}
	for name, v := range map[string]float64{"yaw": o.Yaw, "pitch": o.Pitch} {
		if err := errors.ValidateFinite(name, v); err != nil {
			return err
		}
	}
	if err := errors.ValidateRange("zoom", o.Zoom, 0.01, 100); err != nil {
		return err
	}
	return errors.ValidateRange("radius", o.Radius, 0.01, 10)
}

// Params returns the generation parameters.
func (o *Options) Params() chain.Params {
	return chain.Params{Units: o.Units, BondAngle: o.Angle, Rigidity: o.Rigidity}
}

// Camera returns the projection camera.
func (o *Options) Camera() projection.Camera {
	return projection.Camera{Yaw: o.Yaw, Pitch: o.Pitch, Zoom: o.Zoom}
}

// IsReproducible reports whether the options fully determine the chain.
func (o *Options) IsReproducible() bool {
	if o.Source != nil {
		return false
	}
	return o.Seed != nil || o.Rigidity == 0
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	var seed uint64
	if o.Seed != nil && o.Rigidity != 0 {
		seed = *o.Seed
	}
	return cache.ArtifactKeyOpts{
		Units:    o.Units,
		Angle:    o.Angle,
		Rigidity: o.Rigidity,
		Seed:     seed,
		Label:    o.Label,
		Comment:  o.comment(),
		Format:   format,
		Style:    o.Style,
		Width:    o.Width,
		Height:   o.Height,
		Yaw:      o.Yaw,
		Pitch:    o.Pitch,
		Zoom:     o.Zoom,
		Radius:   o.Radius,
		Detailed: o.Detailed,
	}
}

// generateOptions translates Options into chain options.
func (o *Options) generateOptions() []chain.Option {
	var opts []chain.Option
	switch {
	case o.Source != nil:
		opts = append(opts, chain.WithSource(o.Source))
	case o.Seed != nil:
		opts = append(opts, chain.WithSeed(*o.Seed))
	}
	if o.Label != "" {
		opts = append(opts, chain.WithLabel(o.Label))
	}
	return opts
}
