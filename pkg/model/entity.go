package model

import (
	"github.com/matzehuels/aasgraph/pkg/errors"
)

// Entity is a submodel element describing a sub-asset, with statements
// about it. A self-managed entity references its asset; a co-managed one
// must not.
type Entity struct {
	element
	namespace

	entityType EntityType
	asset      *AASReference
	statements *NamespaceSet[SubmodelElement]
}

// NewEntity returns an entity without statements.
func NewEntity(idShort string, entityType EntityType, asset *AASReference) (*Entity, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	ent := &Entity{element: e}
	if err := ent.SetEntityType(entityType, asset); err != nil {
		return nil, err
	}
	ent.statements = newNamespaceSet[SubmodelElement](ent)
	return ent, nil
}

func (*Entity) Kind() Kind { return KindEntity }

func (e *Entity) EntityType() EntityType { return e.entityType }
func (e *Entity) Asset() *AASReference   { return cloneAASRef(e.asset) }

// SetEntityType changes the entity type together with its asset
// reference, which must be set exactly for self-managed entities.
func (e *Entity) SetEntityType(t EntityType, asset *AASReference) error {
	switch {
	case t == SelfManagedEntity && asset == nil:
		return errors.New(errors.ErrCodeMalformedValue, "a self-managed entity needs an asset reference")
	case t == CoManagedEntity && asset != nil:
		return errors.New(errors.ErrCodeMalformedValue, "a co-managed entity must not reference an asset")
	}
	e.entityType = t
	e.asset = cloneAASRef(asset)
	return nil
}

// Statements returns the statement set.
func (e *Entity) Statements() *NamespaceSet[SubmodelElement] { return e.statements }
