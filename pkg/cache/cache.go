// Package cache provides a small byte-oriented cache used to persist the
// system font scan between runs.
//
// Enumerating the host's font families means parsing every installed font
// file, which can take seconds on a machine with a large font library. The
// CLI stores the scan result in a file cache under the user's cache
// directory, keyed by a digest of the font file paths and sizes so the entry
// invalidates itself whenever fonts are installed or removed.
//
// Two implementations exist: [FileCache] for normal use and [NullCache] for
// tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
