package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/matzehuels/polymer/pkg/pipeline"
)

type chainAnswers struct {
	Units    string `survey:"units"`
	Angle    string `survey:"angle"`
	Rigidity string `survey:"rigidity"`
}

// chainQuestions asks for the three generation parameters, prefilled
// with the current values.
func chainQuestions(opts *pipeline.Options) []*survey.Question {
	return []*survey.Question{
		{
			Name: "units",
			Prompt: &survey.Input{
				Message: "Number of units:",
				Default: strconv.Itoa(opts.Units),
			},
			Validate: intInRange(pipeline.MinUnits, pipeline.MaxUnits),
		},
		{
			Name: "angle",
			Prompt: &survey.Input{
				Message: "Bond angle (degrees):",
				Default: formatFloat(opts.Angle),
				Help:    "Turn between consecutive bonds, 0 to 180.",
			},
			Validate: floatInRange(pipeline.MinAngle, pipeline.MaxAngle),
		},
		{
			Name: "rigidity",
			Prompt: &survey.Input{
				Message: "Rigidity (degrees of jitter):",
				Default: formatFloat(opts.Rigidity),
				Help:    "0 gives a perfectly regular chain; up to 10.",
			},
			Validate: floatInRange(pipeline.MinRigidity, pipeline.MaxRigidity),
		},
	}
}

// promptChain overwrites the generation parameters of opts with answers
// read from the terminal.
func promptChain(opts *pipeline.Options) error {
	var answers chainAnswers
	if err := survey.Ask(chainQuestions(opts), &answers); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return context.Canceled
		}
		return err
	}
	return answers.apply(opts)
}

func (a chainAnswers) apply(opts *pipeline.Options) error {
	units, err := strconv.Atoi(a.Units)
	if err != nil {
		return fmt.Errorf("units: %w", err)
	}
	angle, err := strconv.ParseFloat(a.Angle, 64)
	if err != nil {
		return fmt.Errorf("angle: %w", err)
	}
	rigidity, err := strconv.ParseFloat(a.Rigidity, 64)
	if err != nil {
		return fmt.Errorf("rigidity: %w", err)
	}
	opts.Units, opts.Angle, opts.Rigidity = units, angle, rigidity
	return nil
}

func intInRange(lo, hi int) survey.Validator {
	return func(ans interface{}) error {
		s, _ := ans.(string)
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", s)
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func floatInRange(lo, hi float64) survey.Validator {
	return func(ans interface{}) error {
		s, _ := ans.(string)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		if math.IsNaN(f) || f < lo || f > hi {
			return fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return nil
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
