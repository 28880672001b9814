// Package cache provides byte-oriented caching for rendered documentation.
//
// Rendering a large documentation set is cheap compared to Graphviz layout,
// but the server and the CLI both re-render the same input over and over.
// The cache stores finished outputs keyed by a hash of the input and the
// options that shaped it, so a change to either is a miss.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: disables caching
//
// # Keys
//
// A [Keyer] builds keys. Use [NewScopedKeyer] to namespace keys when a Redis
// database is shared with other applications.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	// TTLOutput applies to rendered documentation (ansi, text, html, json).
	TTLOutput = 7 * 24 * time.Hour

	// TTLGraph applies to rendered reference graphs (dot, svg).
	TTLGraph = 30 * 24 * time.Hour
)

// Cache stores opaque byte slices under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// OutputKeyOpts are the render options that change the output bytes.
type OutputKeyOpts struct {
	Format    string   `json:"format"`
	Modules   []string `json:"modules,omitempty"`
	Threshold int      `json:"threshold"`
	Links     bool     `json:"links"`
	Theme     string   `json:"theme,omitempty"`
	Title     string   `json:"title,omitempty"`
}

// GraphKeyOpts are the options that change a rendered reference graph.
type GraphKeyOpts struct {
	Format  string   `json:"format"`
	Modules []string `json:"modules,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// OutputKey is the key for rendered documentation of the input with
	// the given hash.
	OutputKey(docsHash string, opts OutputKeyOpts) string

	// GraphKey is the key for a rendered reference graph.
	GraphKey(docsHash string, opts GraphKeyOpts) string
}

// DefaultKeyer builds keys of the form "type:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OutputKey implements Keyer.
func (DefaultKeyer) OutputKey(docsHash string, opts OutputKeyOpts) string {
	return hashKey("output", docsHash, opts)
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(docsHash string, opts GraphKeyOpts) string {
	return hashKey("graph", docsHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "sigdoc:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix to every key.
// A nil inner keyer means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// OutputKey implements Keyer.
func (k *ScopedKeyer) OutputKey(docsHash string, opts OutputKeyOpts) string {
	return k.prefix + k.inner.OutputKey(docsHash, opts)
}

// GraphKey implements Keyer.
func (k *ScopedKeyer) GraphKey(docsHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(docsHash, opts)
}
