package model

// RelationshipElement relates two referables.
type RelationshipElement struct {
	element
	First  AASReference
	Second AASReference
}

// NewRelationshipElement returns a relationship from first to second.
func NewRelationshipElement(idShort string, first, second AASReference) (*RelationshipElement, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	return &RelationshipElement{element: e, First: first, Second: second}, nil
}

func (*RelationshipElement) Kind() Kind { return KindRelationshipElement }

// AnnotatedRelationshipElement is a relationship carrying data elements
// as annotations. It is a namespace over its annotations.
type AnnotatedRelationshipElement struct {
	RelationshipElement
	namespace

	annotation *NamespaceSet[DataElement]
}

// NewAnnotatedRelationshipElement returns a relationship without
// annotations.
func NewAnnotatedRelationshipElement(idShort string, first, second AASReference) (*AnnotatedRelationshipElement, error) {
	rel, err := NewRelationshipElement(idShort, first, second)
	if err != nil {
		return nil, err
	}
	are := &AnnotatedRelationshipElement{RelationshipElement: *rel}
	are.annotation = newNamespaceSet[DataElement](are)
	return are, nil
}

func (*AnnotatedRelationshipElement) Kind() Kind { return KindAnnotatedRelationshipElement }

// Annotation returns the annotation set.
func (a *AnnotatedRelationshipElement) Annotation() *NamespaceSet[DataElement] { return a.annotation }
