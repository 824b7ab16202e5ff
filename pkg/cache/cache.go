// Package cache provides byte caches for derived artifacts and an identity
// cache for decoded objects.
//
// # Byte caches
//
// [Cache] stores opaque byte slices under string keys with an optional
// TTL. [FileCache] persists entries under a directory; [NullCache]
// disables caching. Keys are built by a [Keyer] from the content hash of
// the input document and the options that influence the result, so an
// entry is reused only for identical inputs:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ValidationKey(cache.Hash(doc), cache.ValidationKeyOpts{Strict: true})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // reuse the cached report
//	}
//
// # Identity cache
//
// [Identity] keeps at most one live object per [model.Identifier].
// Putting a freshly decoded revision of a cached object reconciles it into
// the cached instance with [model.UpdateFrom], so every holder of that
// instance observes the update.
package cache

import (
	"context"
	"time"
)

// Cache stores byte slices by key.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ValidationKey is the key of a validation report for a document.
	ValidationKey(docHash string, opts ValidationKeyOpts) string

	// ConversionKey is the key of a document converted to another format.
	ConversionKey(docHash string, opts ConversionKeyOpts) string

	// RenderKey is the key of a rendered graph of a document.
	RenderKey(docHash string, opts RenderKeyOpts) string
}

// ValidationKeyOpts are the options that change a validation report.
type ValidationKeyOpts struct {
	Strict bool `json:"strict"`
}

// ConversionKeyOpts are the options that change a converted document.
type ConversionKeyOpts struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Stripped bool   `json:"stripped"`
}

// RenderKeyOpts are the options that change a rendered graph.
type RenderKeyOpts struct {
	Format     string `json:"format"`
	References bool   `json:"references"`
	Detailed   bool   `json:"detailed"`
}

// DefaultKeyer builds keys as "<kind>:<sha256 of hash and options>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) ValidationKey(docHash string, opts ValidationKeyOpts) string {
	return hashKey("validate", docHash, opts)
}

func (DefaultKeyer) ConversionKey(docHash string, opts ConversionKeyOpts) string {
	return hashKey("convert", docHash, opts)
}

func (DefaultKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return hashKey("render", docHash, opts)
}

// NullCache never stores anything. It is used when caching is disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error)          { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
