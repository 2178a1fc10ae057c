// Package cache stores rendered artifacts so that re-rendering a strip with
// the same seed and page options is free.
//
// Rendering is deterministic: a seed plus the generation and page options
// fully determine the output bytes. [Keyer] hashes exactly those inputs.
//
// Backends:
//   - [FileCache]: one JSON file per entry under the user cache directory (CLI)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/bingocards/pkg/layout"
)

// DefaultTTL is how long artifacts stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the cached value and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data; ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts holds every input that changes rendered bytes.
type ArtifactKeyOpts struct {
	Seed     uint64          `json:"seed"`
	Tickets  int             `json:"tickets"`
	Alphabet string          `json:"alphabet"`
	Geometry layout.Geometry `json:"geometry"`
	Format   string          `json:"format"`
	DPI      float64         `json:"dpi,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	ArtifactKey(opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>" over opts.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}
