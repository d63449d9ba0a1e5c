// Package cache stores rendered artifacts between runs.
//
// Rendering DOT to SVG with Graphviz dominates the runtime of a graph
// run, and the DOT text fully determines the SVG. Artifacts are therefore
// cached under a key derived from a hash of their input, see [Key].
//
// Two implementations are provided: [FileCache] for the CLI (one file per
// entry under the user cache directory) and [NullCache] when caching is
// disabled.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	// Expired or unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Key builds a cache key of the form kind:sha256(input).
func Key(kind string, input []byte) string {
	return kind + ":" + Hash(input)
}
