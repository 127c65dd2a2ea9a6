// Package cache stores computed scenes and rendered artifacts.
//
// All backends implement [Cache]: a byte-oriented key/value store with
// per-entry TTL. Keys are produced by a [Keyer] so the CLI, the HTTP server
// and tests agree on the layout of the key space.
//
// Backends:
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON envelope per key under a directory (CLI default)
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: document store for server deployments without Redis
//
// Use [Open] to construct a backend from configuration.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached values.
const (
	// SceneTTL is how long a computed scene stays cached.
	SceneTTL = 7 * 24 * time.Hour

	// ArtifactTTL is how long a rendered artifact stays cached.
	ArtifactTTL = 24 * time.Hour
)

// Cache is a key/value store for serialized pipeline results.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
