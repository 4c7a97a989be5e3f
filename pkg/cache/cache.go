// Package cache stores rendered pictures of reproducible chain requests.
//
// Only artifacts (SVG, PNG, PDF, bond diagram bytes) are cached, and only
// when the request fully determines the chain: a seed was given or the
// rigidity is zero. Chains and their XYZ text are regenerated for every
// request.
//
// Backends:
//
//   - [FileCache]: one MessagePack file per entry under the user cache directory
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// Keys come from a [Keyer] so servers can namespace them with
// [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
