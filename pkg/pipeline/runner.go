package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polymer/pkg/cache"
	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options; each
// call generates its own chain with its own random source.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long rendered artifacts stay cached. Zero means
	// cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → format → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Generate
	genStart := time.Now()
	c, err := Generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Chain = c
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Units = c.Len()
	result.Stats.Bonds = len(c.Bonds())

	opts.Logger.Debug("generated chain",
		"units", c.Len(),
		"angle", opts.Angle,
		"rigidity", opts.Rigidity,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Format
	xyz, err := formatChain(c, opts)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	result.XYZ = xyz

	// Stage 3: Render
	renderStart := time.Now()
	params := opts.Params()
	artifacts, info, err := r.RenderWithCacheInfo(ctx, c, xyz, &params, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", info.RenderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderChain renders an existing chain, e.g. one read from an XYZ file.
// Nothing is cached because the chain did not come from options.
func (r *Runner) RenderChain(ctx context.Context, c chain.Chain, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetRenderDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	xyz, err := formatChain(c, opts)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}

	start := time.Now()
	artifacts, err := Render(ctx, c, xyz, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Result{
		Chain:     c,
		XYZ:       xyz,
		Artifacts: artifacts,
		Stats: Stats{
			Units:      c.Len(),
			Bonds:      len(c.Bonds()),
			RenderTime: time.Since(start),
		},
	}, nil
}

// RenderWithCacheInfo renders artifacts, serving cacheable formats of
// reproducible requests from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c chain.Chain, xyz string, params *chain.Params, opts Options) (map[string][]byte, CacheInfo, error) {
	info := CacheInfo{Cacheable: opts.IsReproducible()}
	if !info.Cacheable {
		artifacts, err := Render(ctx, c, xyz, params, opts)
		return artifacts, info, err
	}

	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, format := range opts.Formats {
		if !cacheableFormats[format] {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err == nil && hit {
			hooks.OnCache(ctx, observability.CacheEvent{Op: observability.CacheHit, Format: format})
			artifacts[format] = data
			continue
		}
		hooks.OnCache(ctx, observability.CacheEvent{Op: observability.CacheMiss, Format: format})
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		info.RenderHit = true
		return artifacts, info, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, c, xyz, params, sub)
	if err != nil {
		return nil, info, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if !cacheableFormats[format] {
			continue
		}
		key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCache(ctx, observability.CacheEvent{Op: observability.CacheStore, Format: format, Bytes: len(data)})
	}

	return artifacts, info, nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
