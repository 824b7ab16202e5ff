package model

// SubmodelElementCollection is a namespace of submodel elements. The
// ordered variant keeps an explicit sequence.
type SubmodelElementCollection interface {
	SubmodelElement
	Namespace
	Ordered() bool
	AllowDuplicates() bool
	SetAllowDuplicates(allow bool)
	// Value returns the elements in iteration order.
	Value() []SubmodelElement
	// AddElement appends e.
	AddElement(e SubmodelElement) error
}

type collection struct {
	element
	namespace
	allowDuplicates bool
}

func (c *collection) AllowDuplicates() bool         { return c.allowDuplicates }
func (c *collection) SetAllowDuplicates(allow bool) { c.allowDuplicates = allow }

// SubmodelElementCollectionOrdered is a collection with explicit order.
type SubmodelElementCollectionOrdered struct {
	collection
	value *OrderedNamespaceSet[SubmodelElement]
}

// NewSubmodelElementCollectionOrdered returns an empty ordered collection.
func NewSubmodelElementCollectionOrdered(idShort string) (*SubmodelElementCollectionOrdered, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	c := &SubmodelElementCollectionOrdered{collection: collection{element: e}}
	c.value = newOrderedNamespaceSet[SubmodelElement](c)
	return c, nil
}

func (*SubmodelElementCollectionOrdered) Kind() Kind {
	return KindSubmodelElementCollectionOrdered
}

func (*SubmodelElementCollectionOrdered) Ordered() bool { return true }

// Elements returns the ordered element set.
func (c *SubmodelElementCollectionOrdered) Elements() *OrderedNamespaceSet[SubmodelElement] {
	return c.value
}

func (c *SubmodelElementCollectionOrdered) Value() []SubmodelElement { return c.value.Items() }

func (c *SubmodelElementCollectionOrdered) AddElement(e SubmodelElement) error {
	return c.value.Add(e)
}

// SubmodelElementCollectionUnordered is a collection iterated in
// insertion order with no positional operations.
type SubmodelElementCollectionUnordered struct {
	collection
	value *NamespaceSet[SubmodelElement]
}

// NewSubmodelElementCollectionUnordered returns an empty unordered
// collection.
func NewSubmodelElementCollectionUnordered(idShort string) (*SubmodelElementCollectionUnordered, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	c := &SubmodelElementCollectionUnordered{collection: collection{element: e}}
	c.value = newNamespaceSet[SubmodelElement](c)
	return c, nil
}

func (*SubmodelElementCollectionUnordered) Kind() Kind {
	return KindSubmodelElementCollectionUnordered
}

func (*SubmodelElementCollectionUnordered) Ordered() bool { return false }

// Elements returns the element set.
func (c *SubmodelElementCollectionUnordered) Elements() *NamespaceSet[SubmodelElement] {
	return c.value
}

func (c *SubmodelElementCollectionUnordered) Value() []SubmodelElement { return c.value.Items() }

func (c *SubmodelElementCollectionUnordered) AddElement(e SubmodelElement) error {
	return c.value.Add(e)
}

// NewSubmodelElementCollection returns an ordered or unordered collection.
func NewSubmodelElementCollection(idShort string, ordered bool) (SubmodelElementCollection, error) {
	if ordered {
		c, err := NewSubmodelElementCollectionOrdered(idShort)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	c, err := NewSubmodelElementCollectionUnordered(idShort)
	if err != nil {
		return nil, err
	}
	return c, nil
}
