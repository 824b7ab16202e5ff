package model

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// Identifier is the globally unique id of an Identifiable. It is a
// comparable value and may be used as a map key.
type Identifier struct {
	ID     string
	IDType IdentifierType
}

// NewIdentifier returns a fresh random IRI of the form "urn:uuid:<uuid>".
func NewIdentifier() Identifier {
	return Identifier{ID: "urn:uuid:" + uuid.NewString(), IDType: IRI}
}

// String renders the identifier as "IRI:urn:x" style text.
func (id Identifier) String() string {
	return id.IDType.String() + ":" + id.ID
}

// Validate checks that the id is non-empty and printable.
func (id Identifier) Validate() error {
	return errors.ValidateIdentifier(id.ID)
}

// AdministrativeInformation holds the version and revision of an
// Identifiable. A revision can only be set while a version is set.
type AdministrativeInformation struct {
	version  string
	revision string
}

// NewAdministrativeInformation validates and returns administration data.
func NewAdministrativeInformation(version, revision string) (*AdministrativeInformation, error) {
	a := &AdministrativeInformation{}
	if err := a.SetVersion(version); err != nil {
		return nil, err
	}
	if err := a.SetRevision(revision); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *AdministrativeInformation) Version() string  { return a.version }
func (a *AdministrativeInformation) Revision() string { return a.revision }

// SetVersion sets the version. Clearing the version while a revision is
// set fails with MALFORMED_VALUE.
func (a *AdministrativeInformation) SetVersion(v string) error {
	if v == "" && a.revision != "" {
		return errors.New(errors.ErrCodeMalformedValue, "cannot clear version while revision %q is set", a.revision)
	}
	a.version = v
	return nil
}

// SetRevision sets the revision. A non-empty revision requires a version.
func (a *AdministrativeInformation) SetRevision(r string) error {
	if r != "" && a.version == "" {
		return errors.New(errors.ErrCodeMalformedValue, "revision %q requires a version", r)
	}
	a.revision = r
	return nil
}

// Equal reports whether both hold the same version and revision. Two nil
// values are equal.
func (a *AdministrativeInformation) Equal(b *AdministrativeInformation) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (a *AdministrativeInformation) clone() *AdministrativeInformation {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// LangStringSet maps language tags to text.
type LangStringSet map[string]string

// NewLangStringSet validates every language tag in m.
func NewLangStringSet(m map[string]string) (LangStringSet, error) {
	s := LangStringSet(maps.Clone(m))
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks all language tags.
func (s LangStringSet) Validate() error {
	for lang := range s {
		if err := errors.ValidateLanguage(lang); err != nil {
			return err
		}
	}
	return nil
}

// Languages returns the language tags in sorted order.
func (s LangStringSet) Languages() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns a copy. A nil set stays nil.
func (s LangStringSet) Clone() LangStringSet {
	return maps.Clone(s)
}
