package server

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/polymer/pkg/errors"
	"github.com/matzehuels/polymer/pkg/pipeline"
)

// parseOptions overlays query parameters on the server defaults and
// validates the result against the UI bounds.
func (s *Server) parseOptions(q url.Values, formats ...string) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = formats
	opts.Seed = nil
	if s.defaults.Seed != nil {
		seed := *s.defaults.Seed
		opts.Seed = &seed
	}

	if err := intParam(q, "units", &opts.Units); err != nil {
		return opts, err
	}
	for name, dst := range map[string]*float64{
		"angle":    &opts.Angle,
		"rigidity": &opts.Rigidity,
		"width":    &opts.Width,
		"height":   &opts.Height,
		"yaw":      &opts.Yaw,
		"pitch":    &opts.Pitch,
		"zoom":     &opts.Zoom,
		"radius":   &opts.Radius,
	} {
		if err := floatParam(q, name, dst); err != nil {
			return opts, err
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidArgument, "seed must be a non-negative integer, got %q", v)
		}
		opts.Seed = &seed
	}
	if q.Has("label") {
		opts.Label = q.Get("label")
		if err := errors.ValidateLabel(opts.Label); err != nil {
			return opts, err
		}
	}
	if q.Has("comment") {
		opts.Comment = q.Get("comment")
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(q url.Values, name string, dst *int) error {
	v := q.Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidArgument, "%s must be an integer, got %q", name, v)
	}
	*dst = n
	return nil
}

func floatParam(q url.Values, name string, dst *float64) error {
	v := q.Get(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidArgument, "%s must be a number, got %q", name, v)
	}
	if err := errors.ValidateFinite(name, f); err != nil {
		return err
	}
	*dst = f
	return nil
}
