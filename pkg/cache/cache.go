// Package cache stores rendered plots so identical requests are served
// without recomputation.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the HTTP service and [NullCache] when caching is disabled. Keys are
// built by a [Keyer] from the hash of the input file and the render options.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// InputKey identifies an input document by content.
	InputKey(data []byte) string
	// RenderKey identifies one rendering of an input.
	RenderKey(inputKey string, opts RenderKeyOpts) string
}

// RenderKeyOpts are the options that change a rendered artifact.
type RenderKeyOpts struct {
	Option     string  `json:"option,omitempty"`
	DrawOption string  `json:"draw_option,omitempty"`
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Style      string  `json:"style,omitempty"` // hash of the style config
}

// DefaultKeyer hashes inputs and options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// InputKey implements Keyer.
func (DefaultKeyer) InputKey(data []byte) string { return "input:" + Hash(data) }

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(inputKey string, opts RenderKeyOpts) string {
	return renderKey(inputKey, opts)
}

// NullCache stores nothing. The CLI uses it for --no-cache and when no
// cache directory can be resolved.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
