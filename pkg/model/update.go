package model

import (
	"slices"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// UpdateFrom reconciles dst with src field by field, so that every holder
// of dst observes the new state. Namespace children are matched by
// id_short within each set: common children are updated recursively,
// children only in src are moved into dst, and children only in dst are
// removed. Children are reconciled before any field of dst changes, and
// removals across all sets happen before additions, so a child may move
// from one set to another. The parent and source of dst are kept, as is
// the identifier of an Identifiable.
//
// Both objects must be of the same kind. src must not be used afterwards,
// since some of its children may now belong to dst.
func UpdateFrom(dst, src Referable) error {
	if dst.Kind() != src.Kind() {
		return errors.New(errors.ErrCodeInvalidInput, "cannot update a %s from a %s", dst.Kind(), src.Kind())
	}
	if dst.IDShort() != src.IDShort() {
		if err := dst.SetIDShort(src.IDShort()); err != nil {
			return err
		}
	}

	sets := childSets(dst, src)
	for _, cs := range sets {
		if err := cs.prune(); err != nil {
			return err
		}
	}
	for _, cs := range sets {
		if err := cs.merge(); err != nil {
			return err
		}
	}

	db, sb := dst.base(), src.base()
	db.category = sb.category
	db.description = sb.description.Clone()

	if d, ok := dst.(Identifiable); ok {
		d.SetAdministration(src.(Identifiable).Administration())
	}
	if d, ok := dst.(HasSemantics); ok {
		d.SetSemanticID(src.(HasSemantics).SemanticID())
	}
	if d, ok := dst.(Qualifiable); ok {
		d.SetQualifiers(src.(Qualifiable).Qualifiers())
	}
	if d, ok := dst.(HasKind); ok {
		d.SetModelingKind(src.(HasKind).ModelingKind())
	}

	switch d := dst.(type) {
	case *Asset:
		s := src.(*Asset)
		d.AssetKind = s.AssetKind
		d.AssetIdentificationModel = cloneAASRef(s.AssetIdentificationModel)
		d.BillOfMaterial = cloneAASRef(s.BillOfMaterial)
	case *AssetAdministrationShell:
		s := src.(*AssetAdministrationShell)
		d.Asset = s.Asset
		d.DerivedFrom = cloneAASRef(s.DerivedFrom)
		d.Submodels = slices.Clone(s.Submodels)
	case *ConceptDescription:
		d.IsCaseOf = slices.Clone(src.(*ConceptDescription).IsCaseOf)
	case *Submodel:
	case *View:
		d.ContainedElements = slices.Clone(src.(*View).ContainedElements)
	case *ConceptDictionary:
		d.ConceptDescriptions = slices.Clone(src.(*ConceptDictionary).ConceptDescriptions)
	case *Property:
		s := src.(*Property)
		d.typedValue = s.typedValue
		d.ValueID = cloneRef(s.ValueID)
	case *MultiLanguageProperty:
		s := src.(*MultiLanguageProperty)
		d.value = s.value.Clone()
		d.ValueID = cloneRef(s.ValueID)
	case *Range:
		s := src.(*Range)
		d.valueType, d.min, d.max = s.valueType, s.min, s.max
	case *Blob:
		s := src.(*Blob)
		d.mimeType = s.mimeType
		d.Value = slices.Clone(s.Value)
	case *File:
		s := src.(*File)
		d.mimeType = s.mimeType
		d.Value = s.Value
	case *ReferenceElement:
		d.Value = cloneRef(src.(*ReferenceElement).Value)
	case *Capability:
	case *BasicEvent:
		d.Observed = src.(*BasicEvent).Observed
	case *Operation:
		s := src.(*Operation)
		d.InputVariables = slices.Clone(s.InputVariables)
		d.OutputVariables = slices.Clone(s.OutputVariables)
		d.InOutputVariables = slices.Clone(s.InOutputVariables)
	case *RelationshipElement:
		s := src.(*RelationshipElement)
		d.First, d.Second = s.First, s.Second
	case *AnnotatedRelationshipElement:
		s := src.(*AnnotatedRelationshipElement)
		d.First, d.Second = s.First, s.Second
	case *Entity:
		s := src.(*Entity)
		d.entityType = s.entityType
		d.asset = cloneAASRef(s.asset)
	case *SubmodelElementCollectionOrdered:
		s := src.(*SubmodelElementCollectionOrdered)
		d.allowDuplicates = s.allowDuplicates
	case *SubmodelElementCollectionUnordered:
		s := src.(*SubmodelElementCollectionUnordered)
		d.allowDuplicates = s.allowDuplicates
	default:
		return errors.New(errors.ErrCodeInternal, "no update rule for %s", dst.Kind())
	}
	return nil
}

// setReconciler reconciles one child set of a namespace in two steps.
type setReconciler interface {
	// prune removes the children that will not be updated in place.
	prune() error
	// merge updates common children and moves new ones over from src.
	merge() error
}

type setPair[T Referable] struct {
	dst, src *NamespaceSet[T]
}

func pairSets[T Referable](dst, src *NamespaceSet[T]) setReconciler {
	return setPair[T]{dst: dst, src: src}
}

// childSets lists the child sets of dst paired with those of src.
func childSets(dst, src Referable) []setReconciler {
	switch d := dst.(type) {
	case *AssetAdministrationShell:
		s := src.(*AssetAdministrationShell)
		return []setReconciler{pairSets(d.views, s.views), pairSets(d.conceptDictionaries, s.conceptDictionaries)}
	case *Submodel:
		return []setReconciler{pairSets(d.elements, src.(*Submodel).elements)}
	case *AnnotatedRelationshipElement:
		return []setReconciler{pairSets(d.annotation, src.(*AnnotatedRelationshipElement).annotation)}
	case *Entity:
		return []setReconciler{pairSets(d.statements, src.(*Entity).statements)}
	case *SubmodelElementCollectionOrdered:
		return []setReconciler{pairSets(d.value.NamespaceSet, src.(*SubmodelElementCollectionOrdered).value.NamespaceSet)}
	case *SubmodelElementCollectionUnordered:
		return []setReconciler{pairSets(d.value, src.(*SubmodelElementCollectionUnordered).value)}
	}
	return nil
}

func (p setPair[T]) prune() error {
	for _, x := range p.dst.Items() {
		if s, ok := p.src.Get(x.IDShort()); ok && s.Kind() == x.Kind() {
			continue
		}
		if _, err := p.dst.Remove(x.IDShort()); err != nil {
			return err
		}
	}
	return nil
}

func (p setPair[T]) merge() error {
	incoming := p.src.Items()
	names := make([]string, len(incoming))
	for i, s := range incoming {
		names[i] = s.IDShort()
		if d, ok := p.dst.Get(s.IDShort()); ok {
			if err := UpdateFrom(d, s); err != nil {
				return err
			}
			continue
		}
		if err := p.src.Discard(s); err != nil {
			return err
		}
		if err := p.dst.Add(s); err != nil {
			return err
		}
	}
	p.dst.reorder(names)
	return nil
}
