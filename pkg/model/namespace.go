package model

import (
	"slices"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// Namespace is a Referable that owns one or more namespace sets. An
// id_short is unique across all sets of one namespace.
type Namespace interface {
	Referable

	// GetReferable looks up a direct child by id_short in any of the
	// namespace's sets. It fails with NOT_FOUND if none matches.
	GetReferable(idShort string) (Referable, error)

	// Children returns the direct children of all sets, set by set in
	// iteration order.
	Children() []Referable

	names() *namespace
}

type nameIndex interface {
	lookup(idShort string) (Referable, bool)
	members() []Referable
}

type namespace struct {
	sets []nameIndex
}

func (n *namespace) names() *namespace { return n }

func (n *namespace) find(idShort string) (Referable, bool) {
	for _, s := range n.sets {
		if r, ok := s.lookup(idShort); ok {
			return r, true
		}
	}
	return nil, false
}

func (n *namespace) GetReferable(idShort string) (Referable, error) {
	if r, ok := n.find(idShort); ok {
		return r, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no child with id_short %q", idShort)
}

func (n *namespace) Children() []Referable {
	var out []Referable
	for _, s := range n.sets {
		out = append(out, s.members()...)
	}
	return out
}

// NamespaceSet is a collection of referables owned by one Namespace and
// keyed by id_short. Adding sets the child's parent; removing clears it.
// Items iterate in insertion order.
//
// A NamespaceSet is created by the constructor of its owner. It is not
// safe for concurrent use.
type NamespaceSet[T Referable] struct {
	owner Namespace
	items map[string]T
	order []T
}

func newNamespaceSet[T Referable](owner Namespace) *NamespaceSet[T] {
	s := &NamespaceSet[T]{owner: owner, items: make(map[string]T)}
	ns := owner.names()
	ns.sets = append(ns.sets, s)
	return s
}

// Owner returns the namespace the set belongs to.
func (s *NamespaceSet[T]) Owner() Namespace { return s.owner }

// Add appends x. It fails with NAMING_CONFLICT if x already has a parent
// or if any set of the owner already holds its id_short, and with
// MALFORMED_VALUE if x has no valid id_short. The set is unchanged on
// failure.
func (s *NamespaceSet[T]) Add(x T) error {
	if err := s.attach(x); err != nil {
		return err
	}
	s.order = append(s.order, x)
	return nil
}

// Get returns the member with the given id_short.
func (s *NamespaceSet[T]) Get(idShort string) (T, bool) {
	x, ok := s.items[idShort]
	return x, ok
}

// Contains reports whether a member has the given id_short.
func (s *NamespaceSet[T]) Contains(idShort string) bool {
	_, ok := s.items[idShort]
	return ok
}

// Remove detaches and returns the member with the given id_short.
func (s *NamespaceSet[T]) Remove(idShort string) (T, error) {
	x, ok := s.items[idShort]
	if !ok {
		var zero T
		return zero, errors.New(errors.ErrCodeNotFound, "no member with id_short %q", idShort)
	}
	s.detach(x)
	s.order = slices.DeleteFunc(s.order, func(y T) bool { return y.base() == x.base() })
	return x, nil
}

// Discard detaches x. It fails with NOT_FOUND if x is not a member, even
// when another member has the same id_short.
func (s *NamespaceSet[T]) Discard(x T) error {
	held, ok := s.items[x.IDShort()]
	if !ok || held.base() != x.base() {
		return errors.New(errors.ErrCodeNotFound, "%s %q is not a member", x.Kind(), x.IDShort())
	}
	_, err := s.Remove(x.IDShort())
	return err
}

// Clear detaches all members.
func (s *NamespaceSet[T]) Clear() {
	for _, x := range s.order {
		s.detach(x)
	}
	s.order = nil
}

// Items returns the members in iteration order.
func (s *NamespaceSet[T]) Items() []T { return slices.Clone(s.order) }

// Len returns the number of members.
func (s *NamespaceSet[T]) Len() int { return len(s.order) }

func (s *NamespaceSet[T]) lookup(idShort string) (Referable, bool) {
	x, ok := s.items[idShort]
	if !ok {
		return nil, false
	}
	return x, true
}

func (s *NamespaceSet[T]) members() []Referable {
	out := make([]Referable, len(s.order))
	for i, x := range s.order {
		out[i] = x
	}
	return out
}

func (s *NamespaceSet[T]) attach(x T) error {
	b := x.base()
	if b.parent != nil || b.set != nil {
		return errors.New(errors.ErrCodeNamingConflict, "%s %q already belongs to a namespace", x.Kind(), b.idShort)
	}
	if err := errors.ValidateIDShort(b.idShort); err != nil {
		return err
	}
	if other, ok := s.owner.names().find(b.idShort); ok {
		return errors.New(errors.ErrCodeNamingConflict, "id_short %q is already used by a %s in %s",
			b.idShort, other.Kind(), describe(s.owner))
	}
	s.items[b.idShort] = x
	b.parent = s.owner
	b.set = s
	return nil
}

func (s *NamespaceSet[T]) detach(x T) {
	b := x.base()
	delete(s.items, b.idShort)
	b.parent = nil
	b.set = nil
}

func (s *NamespaceSet[T]) rename(from, to string) error {
	if other, ok := s.owner.names().find(to); ok {
		return errors.New(errors.ErrCodeNamingConflict, "id_short %q is already used by a %s in %s",
			to, other.Kind(), describe(s.owner))
	}
	x := s.items[from]
	delete(s.items, from)
	s.items[to] = x
	return nil
}

// reorder rearranges members to follow names. Members not named keep
// their relative order at the end.
func (s *NamespaceSet[T]) reorder(names []string) {
	pos := make(map[string]int, len(names))
	for i, n := range names {
		pos[n] = i
	}
	slices.SortStableFunc(s.order, func(a, b T) int {
		pa, oka := pos[a.IDShort()]
		pb, okb := pos[b.IDShort()]
		switch {
		case oka && okb:
			return pa - pb
		case oka:
			return -1
		case okb:
			return 1
		}
		return 0
	})
}

func describe(r Referable) string {
	if id, ok := r.(Identifiable); ok {
		return r.Kind().String() + " " + id.Identification().String()
	}
	return r.Kind().String() + " " + r.IDShort()
}
