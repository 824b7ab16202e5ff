// Package filestore provides a directory-backed object store.
//
// Each identifiable is kept in its own JSON file, named by the SHA-256 of
// its identifier. Loaded objects are deduplicated through an identity
// cache, so resolving the same identifier twice yields the same instance.
//
// Every object read or written by the store gets a file:// source URI.
// The package registers a [Backend] for that scheme, which makes
// [model.Update] and [model.Commit] work on any object below a stored
// identifiable:
//
//	s, _ := filestore.Open("objects", filestore.Options{})
//	sm, _ := s.GetIdentifiable(id)
//	// ... modify sm or one of its elements ...
//	err := model.Commit(ctx, elem) // CONFLICT if the file changed meanwhile
package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aasgraph/pkg/cache"
	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
)

// Options configures a Store.
type Options struct {
	// IdentityCacheSize bounds the number of live objects kept for
	// deduplication. Zero or less means unbounded.
	IdentityCacheSize int
	// Logger receives warnings about unreadable files. Nil uses
	// log.Default().
	Logger *log.Logger
}

// Store is an ObjectStore keeping one JSON file per identifiable in a
// directory. It is safe for concurrent use; the objects it returns are
// not.
type Store struct {
	dir      string
	mu       sync.Mutex
	identity *cache.Identity
	logger   *log.Logger
}

// Open returns a store over dir, creating the directory if needed.
func Open(dir string, opts Options) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Store{
		dir:      abs,
		identity: cache.NewIdentity(opts.IdentityCacheSize),
		logger:   opts.Logger,
	}, nil
}

// Dir returns the absolute store directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(id model.Identifier) string {
	return filepath.Join(s.dir, cache.Hash([]byte(id.String()))+".json")
}

// GetIdentifiable returns the object stored under id, loading it on first
// use.
func (s *Store) GetIdentifiable(id model.Identifier) (model.Identifiable, error) {
	if obj, ok := s.identity.Get(id); ok {
		return obj, nil
	}
	path := s.path(id)
	obj, token, err := readObject(context.Background(), path)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.New(errors.ErrCodeNotFound, "no identifiable %s", id)
		}
		return nil, err
	}
	if got := obj.Identification(); got != id {
		return nil, errors.New(errors.ErrCodeInternal, "%s holds %s, expected %s", path, got, id)
	}
	obj.SetSource(SourceURI(path, token))
	return s.identity.Put(obj)
}

// Add writes obj to a new file. It fails with DUPLICATE if the identifier
// is already stored. On success obj's source points at the file.
func (s *Store) Add(obj model.Identifiable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := obj.Identification()
	path := s.path(id)
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrCodeDuplicate, "%s %s is already stored", obj.Kind(), id)
	}
	token, err := writeObject(path, obj)
	if err != nil {
		return err
	}
	obj.SetSource(SourceURI(path, token))
	s.identity.Remove(id)
	_, err = s.identity.Put(obj)
	return err
}

// Discard deletes the file of obj. It fails with NOT_FOUND if nothing is
// stored under its identifier.
func (s *Store) Discard(obj model.Identifiable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := obj.Identification()
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeNotFound, "%s %s is not stored", obj.Kind(), id)
	}
	if err != nil {
		return err
	}
	s.identity.Remove(id)
	obj.SetSource("")
	return nil
}

// Items loads every stored object. Unreadable files are logged and
// skipped.
func (s *Store) Items() []model.Identifiable {
	var out []model.Identifiable
	for _, path := range s.files() {
		obj, token, err := readObject(context.Background(), path)
		if err != nil {
			s.logger.Warn("skipping unreadable object file", "path", path, "err", err)
			continue
		}
		if cached, ok := s.identity.Get(obj.Identification()); ok {
			out = append(out, cached)
			continue
		}
		obj.SetSource(SourceURI(path, token))
		canonical, err := s.identity.Put(obj)
		if err != nil {
			s.logger.Warn("skipping object", "path", path, "err", err)
			continue
		}
		out = append(out, canonical)
	}
	return out
}

// Len returns the number of stored objects.
func (s *Store) Len() int { return len(s.files()) }

func (s *Store) files() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("cannot list store", "dir", s.dir, "err", err)
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".json") && !strings.HasPrefix(e.Name(), ".") {
			out = append(out, filepath.Join(s.dir, e.Name()))
		}
	}
	return out
}
