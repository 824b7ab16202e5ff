package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// Key is one addressing step of a Reference.
type Key struct {
	Type   KeyElement
	Local  bool
	Value  string
	IDType KeyIDType
}

// String renders the key as "(Type)[IDType]value".
func (k Key) String() string {
	return fmt.Sprintf("(%s)[%s]%s", k.Type, k.IDType, k.Value)
}

// Reference is a non-empty, immutable sequence of keys. The zero value is
// the empty reference, which only arises from unconstructed values and
// never resolves.
type Reference struct {
	keys []Key
}

// NewReference returns a reference over a copy of keys. At least one key
// is required and every key needs a value.
func NewReference(keys ...Key) (Reference, error) {
	if len(keys) == 0 {
		return Reference{}, errors.New(errors.ErrCodeEmptyReference, "a reference needs at least one key")
	}
	for i, k := range keys {
		if k.Value == "" {
			return Reference{}, errors.New(errors.ErrCodeMalformedValue, "key %d has an empty value", i)
		}
	}
	return Reference{keys: slices.Clone(keys)}, nil
}

// Keys returns a copy of the key sequence.
func (r Reference) Keys() []Key { return slices.Clone(r.keys) }

// Len returns the number of keys.
func (r Reference) Len() int { return len(r.keys) }

// Key returns the i-th key.
func (r Reference) Key(i int) Key { return r.keys[i] }

// IsEmpty reports whether r is the zero value.
func (r Reference) IsEmpty() bool { return len(r.keys) == 0 }

// Equal reports whether both references hold the same keys in order.
func (r Reference) Equal(o Reference) bool { return slices.Equal(r.keys, o.keys) }

func (r Reference) String() string {
	parts := make([]string, len(r.keys))
	for i, k := range r.keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}

// AASReference is a Reference into the AAS graph with a declared target
// kind. Resolving it yields an object whose kind is, or derives from, the
// target.
type AASReference struct {
	Reference
	target Kind
}

// NewAASReference builds a reference expected to resolve to an object of
// kind target. Keys whose element kinds disagree with their position or
// with target are accepted with a logged warning; [AASReference.Resolve]
// performs the authoritative check.
func NewAASReference(target Kind, keys ...Key) (AASReference, error) {
	ref, err := NewReference(keys...)
	if err != nil {
		return AASReference{}, err
	}
	r := AASReference{Reference: ref, target: target}
	r.checkKeys()
	return r, nil
}

// AsAASReference attaches a target kind to an existing reference.
func AsAASReference(ref Reference, target Kind) (AASReference, error) {
	return NewAASReference(target, ref.keys...)
}

// Target returns the declared target kind.
func (r AASReference) Target() Kind { return r.target }

// Equal reports whether both references have the same keys and target.
func (r AASReference) Equal(o AASReference) bool {
	return r.target == o.target && r.Reference.Equal(o.Reference)
}

func (r AASReference) checkKeys() {
	for i, k := range r.keys {
		switch {
		case i == 0 && k.Type.Band() == BandReferable:
			warnf("first key names a referable, not an identifiable", "key", k)
		case i > 0 && k.Type.Band() == BandIdentifiable:
			warnf("non-leading key names an identifiable", "key", k, "index", i)
		}
		if _, global := k.IDType.IdentifierType(); k.Type.Band() == BandIdentifiable && !global {
			warnf("identifiable key uses a local id type", "key", k)
		}
	}
	last := r.keys[len(r.keys)-1].Type.Kind()
	if last != KindInvalid && r.target != KindInvalid && !last.Is(r.target) && !r.target.Is(last) {
		warnf("last key does not match reference target", "key", r.keys[len(r.keys)-1], "target", r.target)
	}
}
