package model

import (
	"slices"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/xsd"
)

// Property is a single typed value.
type Property struct {
	element
	typedValue
	ValueID *Reference
}

// NewProperty returns a property with no value.
func NewProperty(idShort string, valueType xsd.DataType) (*Property, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	tv, err := newTypedValue(valueType)
	if err != nil {
		return nil, err
	}
	return &Property{element: e, typedValue: tv}, nil
}

func (*Property) Kind() Kind   { return KindProperty }
func (*Property) dataElement() {}

// MultiLanguageProperty holds text in several languages.
type MultiLanguageProperty struct {
	element
	value   LangStringSet
	ValueID *Reference
}

// NewMultiLanguageProperty returns a property with no text.
func NewMultiLanguageProperty(idShort string) (*MultiLanguageProperty, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	return &MultiLanguageProperty{element: e}, nil
}

func (*MultiLanguageProperty) Kind() Kind   { return KindMultiLanguageProperty }
func (*MultiLanguageProperty) dataElement() {}

// Value returns the text per language. The map must not be modified.
func (p *MultiLanguageProperty) Value() LangStringSet { return p.value }

// SetValue replaces the text after validating every language tag.
func (p *MultiLanguageProperty) SetValue(v LangStringSet) error {
	if err := v.Validate(); err != nil {
		return err
	}
	p.value = v.Clone()
	return nil
}

// Range is an interval of typed values. Either bound may be open.
type Range struct {
	element
	valueType xsd.DataType
	min       xsd.Value
	max       xsd.Value
}

// NewRange returns an unbounded range.
func NewRange(idShort string, valueType xsd.DataType) (*Range, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	if !valueType.Valid() {
		return nil, errors.New(errors.ErrCodeMalformedValue, "invalid value type %d", int(valueType))
	}
	return &Range{element: e, valueType: valueType}, nil
}

func (*Range) Kind() Kind   { return KindRange }
func (*Range) dataElement() {}

func (r *Range) ValueType() xsd.DataType { return r.valueType }
func (r *Range) Min() xsd.Value          { return r.min }
func (r *Range) Max() xsd.Value          { return r.max }

// SetMin sets the lower bound; its type must match ValueType.
func (r *Range) SetMin(v xsd.Value) error {
	if err := checkValue(r.valueType, v); err != nil {
		return err
	}
	r.min = v
	return nil
}

// SetMax sets the upper bound; its type must match ValueType.
func (r *Range) SetMax(v xsd.Value) error {
	if err := checkValue(r.valueType, v); err != nil {
		return err
	}
	r.max = v
	return nil
}

// Blob holds binary content of a given MIME type.
type Blob struct {
	element
	mimeType string
	Value    []byte
}

// NewBlob returns an empty blob.
func NewBlob(idShort, mimeType string) (*Blob, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	b := &Blob{element: e}
	if err := b.SetMIMEType(mimeType); err != nil {
		return nil, err
	}
	return b, nil
}

func (*Blob) Kind() Kind   { return KindBlob }
func (*Blob) dataElement() {}

func (b *Blob) MIMEType() string { return b.mimeType }

func (b *Blob) SetMIMEType(mimeType string) error {
	if err := errors.ValidateMIMEType(mimeType); err != nil {
		return err
	}
	b.mimeType = mimeType
	return nil
}

// File references external content by path or URI.
type File struct {
	element
	mimeType string
	Value    string
}

// NewFile returns a file element with no path.
func NewFile(idShort, mimeType string) (*File, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	f := &File{element: e}
	if err := f.SetMIMEType(mimeType); err != nil {
		return nil, err
	}
	return f, nil
}

func (*File) Kind() Kind   { return KindFile }
func (*File) dataElement() {}

func (f *File) MIMEType() string { return f.mimeType }

func (f *File) SetMIMEType(mimeType string) error {
	if err := errors.ValidateMIMEType(mimeType); err != nil {
		return err
	}
	f.mimeType = mimeType
	return nil
}

// ReferenceElement holds a reference to another element or an external
// entity.
type ReferenceElement struct {
	element
	Value *Reference
}

// NewReferenceElement returns a reference element with no value.
func NewReferenceElement(idShort string) (*ReferenceElement, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	return &ReferenceElement{element: e}, nil
}

func (*ReferenceElement) Kind() Kind   { return KindReferenceElement }
func (*ReferenceElement) dataElement() {}

// Capability marks an implementation-independent ability of an asset.
type Capability struct {
	element
}

// NewCapability returns a capability.
func NewCapability(idShort string) (*Capability, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	return &Capability{element: e}, nil
}

func (*Capability) Kind() Kind { return KindCapability }

// BasicEvent is an event observing a referable.
type BasicEvent struct {
	element
	Observed AASReference
}

// NewBasicEvent returns an event observing the given referable.
func NewBasicEvent(idShort string, observed AASReference) (*BasicEvent, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	return &BasicEvent{element: e, Observed: observed}, nil
}

func (*BasicEvent) Kind() Kind { return KindBasicEvent }

// Operation is a callable with typed input, output and in-out variables.
type Operation struct {
	element
	InputVariables    []*OperationVariable
	OutputVariables   []*OperationVariable
	InOutputVariables []*OperationVariable
}

// NewOperation returns an operation without variables.
func NewOperation(idShort string) (*Operation, error) {
	e, err := newElement(idShort)
	if err != nil {
		return nil, err
	}
	return &Operation{element: e}, nil
}

func (*Operation) Kind() Kind { return KindOperation }

// OperationVariable wraps the submodel element describing one argument.
// The element is not owned by any namespace.
type OperationVariable struct {
	Value SubmodelElement
}

func (*OperationVariable) Kind() Kind { return KindOperationVariable }

// Variables returns all variables: inputs, outputs, then in-outs.
func (o *Operation) Variables() []*OperationVariable {
	return slices.Concat(o.InputVariables, o.OutputVariables, o.InOutputVariables)
}
