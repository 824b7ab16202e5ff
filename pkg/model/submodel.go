package model

// Submodel describes one aspect of an asset as a tree of submodel
// elements.
type Submodel struct {
	identifiable
	namespace
	semantic
	qualifiable
	hasKind

	elements *NamespaceSet[SubmodelElement]
}

// NewSubmodel returns an empty submodel.
func NewSubmodel(id Identifier) *Submodel {
	sm := &Submodel{identifiable: newIdentifiable(id)}
	sm.elements = newNamespaceSet[SubmodelElement](sm)
	return sm
}

func (*Submodel) Kind() Kind { return KindSubmodel }

// SubmodelElements returns the set of top-level elements.
func (s *Submodel) SubmodelElements() *NamespaceSet[SubmodelElement] { return s.elements }

// SubmodelElement is any element that can live in a submodel, collection,
// entity or operation variable.
type SubmodelElement interface {
	Referable
	HasSemantics
	Qualifiable
	HasKind
	submodelElement() *element
}

// DataElement is a submodel element holding data rather than structure.
type DataElement interface {
	SubmodelElement
	dataElement()
}

type element struct {
	referable
	semantic
	qualifiable
	hasKind
}

func (e *element) submodelElement() *element { return e }

func newElement(idShort string) (element, error) {
	r, err := newReferable(idShort)
	if err != nil {
		return element{}, err
	}
	return element{referable: r}, nil
}
