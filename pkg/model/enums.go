package model

import (
	"github.com/matzehuels/aasgraph/pkg/errors"
)

// IdentifierType tells how an Identifier's id is to be interpreted.
type IdentifierType int

const (
	IRDI IdentifierType = iota
	IRI
	Custom
)

var identifierTypeNames = []string{"IRDI", "IRI", "Custom"}

func (t IdentifierType) String() string {
	if t >= 0 && int(t) < len(identifierTypeNames) {
		return identifierTypeNames[t]
	}
	return "Invalid"
}

// ParseIdentifierType parses "IRDI", "IRI" or "Custom".
func ParseIdentifierType(s string) (IdentifierType, error) {
	for i, name := range identifierTypeNames {
		if name == s {
			return IdentifierType(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeMalformedValue, "unknown identifier type %q", s)
}

// KeyIDType is the id type of a Key. It extends IdentifierType with the
// local forms IdShort and FragmentId.
type KeyIDType int

const (
	KeyIRDI KeyIDType = iota
	KeyIRI
	KeyCustom
	KeyIDShort
	KeyFragmentID
)

var keyIDTypeNames = []string{"IRDI", "IRI", "Custom", "IdShort", "FragmentId"}

func (t KeyIDType) String() string {
	if t >= 0 && int(t) < len(keyIDTypeNames) {
		return keyIDTypeNames[t]
	}
	return "Invalid"
}

// IdentifierType converts a global key id type to the matching
// IdentifierType. Local types (IdShort, FragmentId) return false.
func (t KeyIDType) IdentifierType() (IdentifierType, bool) {
	switch t {
	case KeyIRDI:
		return IRDI, true
	case KeyIRI:
		return IRI, true
	case KeyCustom:
		return Custom, true
	}
	return 0, false
}

// KeyIDTypeOf returns the key id type matching t.
func KeyIDTypeOf(t IdentifierType) KeyIDType {
	return KeyIDType(t)
}

// ParseKeyIDType parses one of the key id type names.
func ParseKeyIDType(s string) (KeyIDType, error) {
	for i, name := range keyIDTypeNames {
		if name == s {
			return KeyIDType(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeMalformedValue, "unknown key id type %q", s)
}

// ModelingKind distinguishes templates from instances.
type ModelingKind int

const (
	Instance ModelingKind = iota
	Template
)

func (k ModelingKind) String() string {
	if k == Template {
		return "Template"
	}
	return "Instance"
}

// ParseModelingKind parses "Template" or "Instance".
func ParseModelingKind(s string) (ModelingKind, error) {
	switch s {
	case "Template":
		return Template, nil
	case "Instance":
		return Instance, nil
	}
	return 0, errors.New(errors.ErrCodeMalformedValue, "unknown modeling kind %q", s)
}

// AssetKind distinguishes asset types from asset instances.
type AssetKind int

const (
	AssetInstance AssetKind = iota
	AssetType
)

func (k AssetKind) String() string {
	if k == AssetType {
		return "Type"
	}
	return "Instance"
}

// ParseAssetKind parses "Type" or "Instance".
func ParseAssetKind(s string) (AssetKind, error) {
	switch s {
	case "Type":
		return AssetType, nil
	case "Instance":
		return AssetInstance, nil
	}
	return 0, errors.New(errors.ErrCodeMalformedValue, "unknown asset kind %q", s)
}

// EntityType tells whether an Entity is managed by its own shell.
type EntityType int

const (
	CoManagedEntity EntityType = iota
	SelfManagedEntity
)

func (t EntityType) String() string {
	if t == SelfManagedEntity {
		return "SelfManagedEntity"
	}
	return "CoManagedEntity"
}

// ParseEntityType parses "CoManagedEntity" or "SelfManagedEntity".
func ParseEntityType(s string) (EntityType, error) {
	switch s {
	case "CoManagedEntity":
		return CoManagedEntity, nil
	case "SelfManagedEntity":
		return SelfManagedEntity, nil
	}
	return 0, errors.New(errors.ErrCodeMalformedValue, "unknown entity type %q", s)
}
