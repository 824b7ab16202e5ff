package model

import (
	"slices"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// OrderedNamespaceSet is a NamespaceSet whose iteration order is an
// explicit sequence, independent of name lookup. Positional mutations
// check uniqueness before committing and restore the previous state on
// failure.
type OrderedNamespaceSet[T Referable] struct {
	*NamespaceSet[T]
}

func newOrderedNamespaceSet[T Referable](owner Namespace) *OrderedNamespaceSet[T] {
	return &OrderedNamespaceSet[T]{NamespaceSet: newNamespaceSet[T](owner)}
}

// At returns the member at index i.
func (s *OrderedNamespaceSet[T]) At(i int) T { return s.order[i] }

// Index returns the position of the member with the given id_short, or
// -1.
func (s *OrderedNamespaceSet[T]) Index(idShort string) int {
	return slices.IndexFunc(s.order, func(x T) bool { return x.IDShort() == idShort })
}

// Insert places x at index i, shifting later members.
func (s *OrderedNamespaceSet[T]) Insert(i int, x T) error {
	return s.Splice(i, i, x)
}

// Set replaces the member at index i with x.
func (s *OrderedNamespaceSet[T]) Set(i int, x T) error {
	if err := s.checkIndex(i, len(s.order)-1); err != nil {
		return err
	}
	return s.Splice(i, i+1, x)
}

// Delete removes and returns the member at index i.
func (s *OrderedNamespaceSet[T]) Delete(i int) (T, error) {
	if err := s.checkIndex(i, len(s.order)-1); err != nil {
		var zero T
		return zero, err
	}
	x := s.order[i]
	return x, s.Splice(i, i+1)
}

// DeleteRange removes the members in [i, j).
func (s *OrderedNamespaceSet[T]) DeleteRange(i, j int) error {
	return s.Splice(i, j)
}

// Splice replaces the members in [i, j) with xs. If any of xs cannot be
// attached the set is restored to its previous state.
func (s *OrderedNamespaceSet[T]) Splice(i, j int, xs ...T) error {
	if i < 0 || j < i || j > len(s.order) {
		return errors.New(errors.ErrCodeInvalidInput, "slice [%d:%d] out of range for %d members", i, j, len(s.order))
	}
	removed := slices.Clone(s.order[i:j])
	for _, r := range removed {
		s.detach(r)
	}
	attached := make([]T, 0, len(xs))
	for _, x := range xs {
		if err := s.attach(x); err != nil {
			for _, a := range attached {
				s.detach(a)
			}
			for _, r := range removed {
				s.restore(r)
			}
			return err
		}
		attached = append(attached, x)
	}
	s.order = slices.Concat(s.order[:i], xs, s.order[j:])
	return nil
}

// Move repositions the member at index from so that it ends up at index
// to.
func (s *OrderedNamespaceSet[T]) Move(from, to int) error {
	last := len(s.order) - 1
	if err := s.checkIndex(from, last); err != nil {
		return err
	}
	if err := s.checkIndex(to, last); err != nil {
		return err
	}
	x := s.order[from]
	s.order = slices.Delete(s.order, from, from+1)
	s.order = slices.Insert(s.order, to, x)
	return nil
}

func (s *OrderedNamespaceSet[T]) checkIndex(i, last int) error {
	if i < 0 || i > last {
		return errors.New(errors.ErrCodeInvalidInput, "index %d out of range for %d members", i, len(s.order))
	}
	return nil
}

// restore re-attaches a member that was detached during a failed splice.
// Its name was free before the splice started, so no check is needed.
func (s *OrderedNamespaceSet[T]) restore(x T) {
	b := x.base()
	s.items[b.idShort] = x
	b.parent = s.owner
	b.set = s.NamespaceSet
}
