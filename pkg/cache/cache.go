// Package cache stores rendered artifacts so repeated renders of the same
// layout skip Graphviz.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under the user cache directory (CLI default)
//   - [RedisCache]: a shared Redis instance, selected with PATHGRAPH_REDIS_URL
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the inputs that affect the
// output; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs for cached entries.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 30 * 24 * time.Hour
)

// LayoutKeyOpts are the layout inputs besides the hierarchy itself.
type LayoutKeyOpts struct {
	Expanded []string `json:"expanded"`
	Mode     string   `json:"mode"`
	GraphID  string   `json:"graph_id"`
}

// ArtifactKeyOpts are the render inputs besides the layout itself.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed"`
	Scale    float64 `json:"scale,omitempty"`
}

// NullCache never stores anything. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns the cache used when caching is disabled.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }
