// Package store provides object stores holding Identifiable roots.
//
// An [ObjectStore] is the provider consumed by reference resolution: it
// looks up identifiables by identifier and supports add, discard and
// iteration. [DictStore] keeps objects in memory; [Multiplexer] chains
// several providers. The directory-backed store lives in
// [github.com/matzehuels/aasgraph/pkg/store/filestore].
package store

import (
	"slices"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
)

// ObjectStore holds Identifiables keyed by identifier.
type ObjectStore interface {
	model.ObjectProvider

	// Add stores obj. It fails with DUPLICATE if an object with the same
	// identifier is already stored.
	Add(obj model.Identifiable) error

	// Discard removes obj. It fails with NOT_FOUND if obj is not stored.
	Discard(obj model.Identifiable) error

	// Items returns all stored objects.
	Items() []model.Identifiable

	// Len returns the number of stored objects.
	Len() int
}

// DictStore is an in-memory ObjectStore. Items iterate in insertion
// order. It is not safe for concurrent use.
type DictStore struct {
	objects map[model.Identifier]model.Identifiable
	order   []model.Identifier
}

// NewDictStore returns a store holding objs.
func NewDictStore(objs ...model.Identifiable) (*DictStore, error) {
	s := &DictStore{objects: make(map[model.Identifier]model.Identifiable)}
	for _, obj := range objs {
		if err := s.Add(obj); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *DictStore) Add(obj model.Identifiable) error {
	id := obj.Identification()
	if _, ok := s.objects[id]; ok {
		return errors.New(errors.ErrCodeDuplicate, "%s %s is already stored", obj.Kind(), id)
	}
	s.objects[id] = obj
	s.order = append(s.order, id)
	return nil
}

func (s *DictStore) Discard(obj model.Identifiable) error {
	id := obj.Identification()
	held, ok := s.objects[id]
	if !ok || held != obj {
		return errors.New(errors.ErrCodeNotFound, "%s %s is not stored", obj.Kind(), id)
	}
	delete(s.objects, id)
	s.order = slices.DeleteFunc(s.order, func(x model.Identifier) bool { return x == id })
	return nil
}

func (s *DictStore) GetIdentifiable(id model.Identifier) (model.Identifiable, error) {
	if obj, ok := s.objects[id]; ok {
		return obj, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no identifiable %s", id)
}

func (s *DictStore) Items() []model.Identifiable {
	out := make([]model.Identifiable, len(s.order))
	for i, id := range s.order {
		out[i] = s.objects[id]
	}
	return out
}

func (s *DictStore) Len() int { return len(s.order) }

// Contains reports whether an object with the given identifier is stored.
func (s *DictStore) Contains(id model.Identifier) bool {
	_, ok := s.objects[id]
	return ok
}

// Filter returns the objects of s that have Go type T, in store order.
func Filter[T model.Identifiable](s ObjectStore) []T {
	var out []T
	for _, obj := range s.Items() {
		if t, ok := obj.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Multiplexer queries several providers in order and returns the first
// hit. It fails with NOT_FOUND only if every provider reports NOT_FOUND;
// any other error is returned immediately.
type Multiplexer struct {
	providers []model.ObjectProvider
}

// NewMultiplexer returns a provider chaining providers.
func NewMultiplexer(providers ...model.ObjectProvider) *Multiplexer {
	return &Multiplexer{providers: slices.Clone(providers)}
}

func (m *Multiplexer) GetIdentifiable(id model.Identifier) (model.Identifiable, error) {
	for _, p := range m.providers {
		obj, err := p.GetIdentifiable(id)
		if err == nil {
			return obj, nil
		}
		if !errors.Is(err, errors.ErrCodeNotFound) {
			return nil, err
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no provider holds %s", id)
}
