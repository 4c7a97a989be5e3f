package chain

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/polymer/pkg/errors"
)

// Source supplies uniform random numbers in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Params are the three generation inputs.
type Params struct {
	Units     int     `json:"units" yaml:"units"`
	BondAngle float64 `json:"bond_angle" yaml:"bond_angle"`
	Rigidity  float64 `json:"rigidity" yaml:"rigidity"`
}

// Validate checks the generator preconditions: at least one unit, finite
// angle and rigidity, and a non-negative rigidity.
func (p Params) Validate() error {
	if err := errors.ValidateUnitCount(p.Units); err != nil {
		return err
	}
	if err := errors.ValidateFinite("bond angle", p.BondAngle); err != nil {
		return err
	}
	if err := errors.ValidateFinite("rigidity", p.Rigidity); err != nil {
		return err
	}
	if p.Rigidity < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "rigidity must be non-negative, got %g", p.Rigidity)
	}
	return nil
}

// Option configures a single Generate call.
type Option func(*generator)

type generator struct {
	src   Source
	label string
}

// WithSource draws heading perturbations from src.
func WithSource(src Source) Option {
	return func(g *generator) { g.src = src }
}

// WithSeed draws heading perturbations from a PCG generator seeded with seed.
func WithSeed(seed uint64) Option {
	return func(g *generator) { g.src = NewSource(seed) }
}

// WithLabel sets the marker attached to every point.
func WithLabel(label string) Option {
	return func(g *generator) { g.label = label }
}

// NewSource returns a seeded random source.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// globalSource forwards to the top-level math/rand/v2 functions.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Generate grows a chain of units points. See the package documentation for
// the recurrence. It fails with INVALID_ARGUMENT when units < 1 or rigidity is
// negative, and with NUMERIC_DOMAIN when the angle or rigidity is not finite.
func Generate(units int, bondAngle, rigidity float64, opts ...Option) (Chain, error) {
	return GenerateParams(Params{Units: units, BondAngle: bondAngle, Rigidity: rigidity}, opts...)
}

// GenerateParams is Generate taking a Params value.
func GenerateParams(p Params, opts ...Option) (Chain, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := generator{src: globalSource{}, label: DefaultLabel}
	for _, opt := range opts {
		opt(&g)
	}
	if err := errors.ValidateLabel(g.label); err != nil {
		return nil, err
	}

	c := make(Chain, 0, p.Units)
	var x, y, z, heading float64
	for range p.Units {
		c = append(c, Point{Label: g.label, X: x, Y: y, Z: z})

		rad := heading * math.Pi / 180
		x += math.Cos(rad)
		y += math.Sin(rad)
		z += 1.0

		heading += p.BondAngle + g.jitter(p.Rigidity)
	}
	return c, nil
}

// jitter returns U(-r, r). The source is left untouched when r is zero.
func (g *generator) jitter(r float64) float64 {
	if r == 0 {
		return 0
	}
	return -r + 2*r*g.src.Float64()
}
