package model

import (
	"slices"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// ObjectProvider looks up identifiables by identifier. GetIdentifiable
// fails with NOT_FOUND if the identifier is unknown.
type ObjectProvider interface {
	GetIdentifiable(id Identifier) (Identifiable, error)
}

// Resolve follows the key chain of r through provider and returns the
// object it names.
//
// The first key must name an identifiable; every following key descends
// into the current object by id_short, which requires the current object
// to be a Namespace. The final object must be of the reference's target
// kind. Resolve fails with:
//   - EMPTY_REFERENCE if r has no keys
//   - UNSUPPORTED_REFERENCE_KIND if the first key is a GlobalReference or
//     FragmentReference
//   - NOT_FOUND if the identifiable or a descendant does not exist
//   - NOT_A_NAMESPACE if a key descends into a non-namespace
//   - UNEXPECTED_TYPE ([*errors.UnexpectedTypeError], carrying the found
//     object) if the final object has the wrong kind
func (r AASReference) Resolve(provider ObjectProvider) (Referable, error) {
	if len(r.keys) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyReference, "reference has no keys")
	}
	first := r.keys[0]
	if first.Type.Band() == BandReference {
		return nil, errors.New(errors.ErrCodeUnsupportedReferenceKind,
			"%s keys are not resolved within the AAS graph", first.Type)
	}
	idType, ok := first.IDType.IdentifierType()
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound,
			"first key %s has local id type %s and names no identifiable", first, first.IDType)
	}
	root, err := provider.GetIdentifiable(Identifier{ID: first.Value, IDType: idType})
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "resolving %s", first)
		}
		return nil, err
	}

	var cur Referable = root
	for i, k := range r.keys[1:] {
		ns, ok := cur.(Namespace)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotANamespace,
				"key %d: %s is not a namespace and has no child %q", i+1, describe(cur), k.Value)
		}
		next, err := ns.GetReferable(k.Value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "key %d: %s in %s", i+1, k, describe(cur))
		}
		cur = next
	}

	if r.target != KindInvalid && !cur.Kind().Is(r.target) {
		return nil, &errors.UnexpectedTypeError{
			Found:    cur,
			Expected: r.target.String(),
			Actual:   cur.Kind().String(),
		}
	}
	return cur, nil
}

// ResolveAs resolves r and asserts the result to T. A result of another
// Go type fails with UNEXPECTED_TYPE.
func ResolveAs[T Referable](r AASReference, provider ObjectProvider) (T, error) {
	var zero T
	obj, err := r.Resolve(provider)
	if err != nil {
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		return zero, &errors.UnexpectedTypeError{
			Found:    obj,
			Expected: r.target.String(),
			Actual:   obj.Kind().String(),
		}
	}
	return t, nil
}

// ReferenceTo builds the AASReference naming r: one key for the
// Identifiable root followed by one IdShort key per level. The target is
// the kind of r. It fails with INVALID_INPUT if r is not attached to an
// Identifiable.
func ReferenceTo(r Referable) (AASReference, error) {
	var keys []Key
	cur := r
	for {
		elem, ok := cur.Kind().KeyElement()
		if !ok {
			return AASReference{}, errors.New(errors.ErrCodeInvalidInput, "%s cannot be named by a key", cur.Kind())
		}
		if id, ok := cur.(Identifiable); ok {
			ident := id.Identification()
			keys = append(keys, Key{Type: elem, Local: true, Value: ident.ID, IDType: KeyIDTypeOf(ident.IDType)})
			break
		}
		keys = append(keys, Key{Type: elem, Local: true, Value: cur.IDShort(), IDType: KeyIDShort})
		if cur.Parent() == nil {
			return AASReference{}, errors.New(errors.ErrCodeInvalidInput,
				"%s is not attached to an identifiable", describe(r))
		}
		cur = cur.Parent()
	}
	slices.Reverse(keys)
	return AASReference{Reference: Reference{keys: keys}, target: r.Kind()}, nil
}
