// Package cache stores rendered artifacts so unchanged documents are not
// rendered twice.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry below a directory, for the CLI
//   - [RedisCache]: shared cache for several preview servers
//   - [NullCache]: stores nothing, used with --no-cache
//
// # Keys
//
// Keys are built by a [Keyer] from a hash of the document bytes and the
// options that change the output (format, theme, scale). [ScopedKeyer]
// prefixes keys, which the preview server uses to keep sessions apart:
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "session:"+id+":")
//	key := k.ArtifactKey(cache.Hash(doc), cache.ArtifactKeyOpts{Format: "svg"})
//
// Wrap a backend with [Instrument] to report hits, misses and writes to the
// observability cache hooks.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long artifacts stay cached when no TTL is given.
const DefaultTTL = 24 * time.Hour

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
