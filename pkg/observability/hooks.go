// Package observability lets callers watch chain generation, rendering,
// cache traffic and HTTP requests without the core packages importing a
// metrics or tracing backend.
//
// Each category has a hook interface that receives one event per finished
// operation. The defaults do nothing; main installs real hooks before any
// work starts:
//
//	observability.SetPipelineHooks(myHooks)
//
// Library code reports through the current hooks:
//
//	observability.Pipeline().OnGenerate(ctx, observability.GenerateEvent{
//	    Units: 20, Duration: time.Since(start),
//	})
package observability

import (
	"context"
	"sync"
	"time"
)

// GenerateEvent describes one chain generation.
type GenerateEvent struct {
	Units int
	// Reproducible is true when the same request yields the same chain.
	Reproducible bool
	Duration     time.Duration
	Err          error
}

// RenderEvent describes one render of a set of formats.
type RenderEvent struct {
	Formats  []string
	Duration time.Duration
	Err      error
}

// CacheOp is the kind of cache access.
type CacheOp string

const (
	CacheHit   CacheOp = "hit"
	CacheMiss  CacheOp = "miss"
	CacheStore CacheOp = "store"
)

// CacheEvent describes one artifact cache access.
type CacheEvent struct {
	Op     CacheOp
	Format string
	Bytes  int // stored size; zero for hits and misses
}

// RequestEvent describes one served HTTP request.
type RequestEvent struct {
	ID       string
	Method   string
	Path     string
	Status   int
	Bytes    int
	Duration time.Duration
}

// PipelineHooks receives generate and render events.
type PipelineHooks interface {
	OnGenerate(ctx context.Context, ev GenerateEvent)
	OnRender(ctx context.Context, ev RenderEvent)
}

// CacheHooks receives artifact cache events.
type CacheHooks interface {
	OnCache(ctx context.Context, ev CacheEvent)
}

// HTTPHooks receives one event per completed request.
type HTTPHooks interface {
	OnRequest(ctx context.Context, ev RequestEvent)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerate(context.Context, GenerateEvent) {}
func (NoopPipelineHooks) OnRender(context.Context, RenderEvent)     {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCache(context.Context, CacheEvent) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, RequestEvent) {}

// registry holds the installed hooks of one category.
type registry[T any] struct {
	mu    sync.RWMutex
	hooks T
	noop  T
}

func newRegistry[T any](noop T) *registry[T] {
	return &registry[T]{hooks: noop, noop: noop}
}

func (r *registry[T]) get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hooks
}

func (r *registry[T]) set(h T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = h
}

func (r *registry[T]) reset() { r.set(r.noop) }

var (
	pipelineHooks = newRegistry[PipelineHooks](NoopPipelineHooks{})
	cacheHooks    = newRegistry[CacheHooks](NoopCacheHooks{})
	httpHooks     = newRegistry[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.set(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.set(h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.set(h)
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipelineHooks.get() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheHooks.get() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpHooks.get() }

// Reset restores the no-op hooks.
func Reset() {
	pipelineHooks.reset()
	cacheHooks.reset()
	httpHooks.reset()
}
