package model

import (
	"context"
	"net/url"
	"slices"
	"sync"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// Backend synchronizes objects with an external store addressed by the
// source URI of an ancestor.
//
// Both methods receive the object to synchronize, the nearest object
// (target itself or an ancestor) carrying a source URI, and the id_short
// path from that object down to target. Backends are expected to use
// optimistic concurrency: CommitObject fails with CONFLICT when the
// remote revision changed since the last update.
type Backend interface {
	UpdateObject(ctx context.Context, target, storeObject Referable, relativePath []string) error
	CommitObject(ctx context.Context, target, storeObject Referable, relativePath []string) error
}

var (
	backendsMu sync.RWMutex
	backends   = map[string]Backend{}
)

// RegisterBackend makes b responsible for source URIs with the given
// scheme. Registering nil removes the scheme.
func RegisterBackend(scheme string, b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if b == nil {
		delete(backends, scheme)
		return
	}
	backends[scheme] = b
}

// BackendFor returns the backend registered for the scheme of uri. It
// fails with NO_BACKEND if none is registered.
func BackendFor(uri string) (Backend, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNoBackend, err, "invalid source %q", uri)
	}
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[u.Scheme]
	if !ok {
		return nil, errors.New(errors.ErrCodeNoBackend, "no backend for scheme %q", u.Scheme)
	}
	return b, nil
}

// Update refreshes r from the backend of its nearest ancestor (or r
// itself) that has a source. Without any source it does nothing.
func Update(ctx context.Context, r Referable) error {
	src, path := findSource(r)
	if src == nil {
		return nil
	}
	b, err := BackendFor(src.Source())
	if err != nil {
		return err
	}
	return b.UpdateObject(ctx, r, src, path)
}

// Commit writes r through the backend of its nearest ancestor (or r
// itself) that has a source. Without any source it does nothing.
func Commit(ctx context.Context, r Referable) error {
	src, path := findSource(r)
	if src == nil {
		return nil
	}
	b, err := BackendFor(src.Source())
	if err != nil {
		return err
	}
	return b.CommitObject(ctx, r, src, path)
}

func findSource(r Referable) (Referable, []string) {
	var path []string
	for cur := r; cur != nil; cur = cur.Parent() {
		if cur.Source() != "" {
			slices.Reverse(path)
			return cur, path
		}
		path = append(path, cur.IDShort())
	}
	return nil, nil
}
