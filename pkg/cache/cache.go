// Package cache provides a pluggable byte cache for rendered graph
// artifacts (SVG/PNG output of the render package).
//
// Backends:
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: Redis-backed, for server deployments
//   - [NullCache]: no-op, for tests or when caching is disabled
//
// Keys for render artifacts are derived with [ArtifactKey] from the DOT
// text and the output format, so any graph change invalidates naturally.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by helpers that treat a miss as an error.
// The Cache interface itself reports misses via its boolean return.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores opaque byte values under string keys with optional TTL.
// Implementations must treat a zero TTL as "no expiration".
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was found
	// and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL (zero = no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey derives the cache key for a rendered artifact from the DOT
// text it was produced from and the output format.
func ArtifactKey(dot, format string) string {
	return fmt.Sprintf("artifact:%s:%s", format, Hash([]byte(dot)))
}
