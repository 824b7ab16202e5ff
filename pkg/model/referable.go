package model

import (
	"slices"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// Referable is an object addressable by its id_short within the
// Namespace that owns it. The interface is sealed: only the concrete
// kinds of this package implement it.
type Referable interface {
	// Kind returns the most specific meta-model class of the object.
	Kind() Kind

	IDShort() string
	// SetIDShort renames the object. If it is owned by a namespace set,
	// the new name is checked against every set of the owner.
	SetIDShort(idShort string) error

	Category() string
	SetCategory(category string)

	Description() LangStringSet
	SetDescription(d LangStringSet) error

	// Parent returns the owning namespace, or nil for roots and detached
	// objects.
	Parent() Namespace

	// Source is the backend URI this object is synchronized with.
	Source() string
	SetSource(uri string)

	base() *referable
}

// Identifiable is a Referable with a global Identifier. Identifiables are
// always graph roots.
type Identifiable interface {
	Referable
	Identification() Identifier
	Administration() *AdministrativeInformation
	SetAdministration(a *AdministrativeInformation)
	identity() *identifiable
}

// memberSet is the namespace set a referable currently belongs to.
type memberSet interface {
	rename(from, to string) error
}

type referable struct {
	idShort     string
	category    string
	description LangStringSet
	parent      Namespace
	set         memberSet
	source      string

	// identifiables may leave id_short empty
	optionalIDShort bool
}

func (r *referable) base() *referable { return r }

func (r *referable) IDShort() string { return r.idShort }

func (r *referable) SetIDShort(idShort string) error {
	if idShort == "" && r.optionalIDShort {
		r.idShort = ""
		return nil
	}
	if err := errors.ValidateIDShort(idShort); err != nil {
		return err
	}
	if r.set != nil && idShort != r.idShort {
		if err := r.set.rename(r.idShort, idShort); err != nil {
			return err
		}
	}
	r.idShort = idShort
	return nil
}

func (r *referable) Category() string            { return r.category }
func (r *referable) SetCategory(category string) { r.category = category }

// Description returns the description. The returned map must not be
// modified; use SetDescription.
func (r *referable) Description() LangStringSet { return r.description }

func (r *referable) SetDescription(d LangStringSet) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.description = d.Clone()
	return nil
}

func (r *referable) Parent() Namespace { return r.parent }

func (r *referable) Source() string       { return r.source }
func (r *referable) SetSource(uri string) { r.source = uri }

func newReferable(idShort string) (referable, error) {
	if err := errors.ValidateIDShort(idShort); err != nil {
		return referable{}, err
	}
	return referable{idShort: idShort}, nil
}

type identifiable struct {
	referable
	identification Identifier
	administration *AdministrativeInformation
}

func newIdentifiable(id Identifier) identifiable {
	return identifiable{
		referable:      referable{optionalIDShort: true},
		identification: id,
	}
}

func (i *identifiable) identity() *identifiable { return i }

func (i *identifiable) Identification() Identifier { return i.identification }

func (i *identifiable) Administration() *AdministrativeInformation { return i.administration }

func (i *identifiable) SetAdministration(a *AdministrativeInformation) {
	i.administration = a.clone()
}

// Root walks parents up to the outermost object.
func Root(r Referable) Referable {
	for r.Parent() != nil {
		r = r.Parent()
	}
	return r
}

// Path returns the id_shorts from the nearest Identifiable ancestor (not
// included) down to r. The second result is that ancestor, or nil if r
// has none.
func Path(r Referable) ([]string, Identifiable) {
	var path []string
	for cur := r; cur != nil; cur = cur.Parent() {
		if id, ok := cur.(Identifiable); ok {
			slices.Reverse(path)
			return path, id
		}
		path = append(path, cur.IDShort())
	}
	slices.Reverse(path)
	return path, nil
}
