// Package cache provides pluggable caching for pipeline results.
//
// Three implementations cover the deployment modes:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Keys are produced by a Keyer so that the hashing scheme stays in one
// place and server deployments can namespace keys per tenant with
// ScopedKeyer.
package cache

import (
	"context"
	"time"
)

// TTLs per cached artifact kind.
const (
	// TTLGraph is the lifetime of cached dependency graphs.
	TTLGraph = 24 * time.Hour

	// TTLDiagram is the lifetime of cached laid-out diagrams.
	TTLDiagram = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
