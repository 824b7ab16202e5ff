package model

import (
	"slices"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/xsd"
)

// Constraint is a Qualifier or a Formula attached to a qualifiable object.
type Constraint interface {
	Kind() Kind
	constraint()
}

// Qualifier is a typed, optionally valued constraint.
type Qualifier struct {
	typedValue
	Type       string
	ValueID    *Reference
	SemanticID *Reference
}

// NewQualifier returns a qualifier of the given type with no value.
func NewQualifier(typ string, valueType xsd.DataType) (*Qualifier, error) {
	if typ == "" {
		return nil, errors.New(errors.ErrCodeMalformedValue, "qualifier type must not be empty")
	}
	tv, err := newTypedValue(valueType)
	if err != nil {
		return nil, err
	}
	return &Qualifier{typedValue: tv, Type: typ}, nil
}

func (*Qualifier) Kind() Kind  { return KindQualifier }
func (*Qualifier) constraint() {}

// Formula is a constraint whose truth depends on the referenced objects.
type Formula struct {
	DependsOn []Reference
}

func (*Formula) Kind() Kind  { return KindFormula }
func (*Formula) constraint() {}

// typedValue is an optional scalar of a fixed XSD type.
type typedValue struct {
	valueType xsd.DataType
	value     xsd.Value
}

func newTypedValue(t xsd.DataType) (typedValue, error) {
	if !t.Valid() {
		return typedValue{}, errors.New(errors.ErrCodeMalformedValue, "invalid value type %d", int(t))
	}
	return typedValue{valueType: t}, nil
}

// ValueType returns the XSD type of the value.
func (v *typedValue) ValueType() xsd.DataType { return v.valueType }

// Value returns the value, or nil if unset.
func (v *typedValue) Value() xsd.Value { return v.value }

// SetValue sets the value. Its type must match ValueType; nil clears it.
func (v *typedValue) SetValue(x xsd.Value) error {
	if err := checkValue(v.valueType, x); err != nil {
		return err
	}
	v.value = x
	return nil
}

// Assign sets the value from a plain Go literal of a compatible category
// (see [xsd.TrivialCast]).
func (v *typedValue) Assign(x any) error {
	val, err := xsd.TrivialCast(x, v.valueType)
	if err != nil {
		return err
	}
	v.value = val
	return nil
}

// ParseValue sets the value from its lexical form.
func (v *typedValue) ParseValue(lexical string) error {
	val, err := xsd.Parse(v.valueType, lexical)
	if err != nil {
		return err
	}
	v.value = val
	return nil
}

// SetValueType changes the value type. A present value is re-parsed under
// the new type; if that fails nothing changes.
func (v *typedValue) SetValueType(t xsd.DataType) error {
	if !t.Valid() {
		return errors.New(errors.ErrCodeMalformedValue, "invalid value type %d", int(t))
	}
	if v.value != nil && v.value.Type() != t {
		val, err := xsd.Parse(t, v.value.String())
		if err != nil {
			return err
		}
		v.value = val
	}
	v.valueType = t
	return nil
}

func checkValue(t xsd.DataType, x xsd.Value) error {
	if x != nil && x.Type() != t {
		return errors.New(errors.ErrCodeMalformedValue, "value of type %s does not match value type %s", x.Type(), t)
	}
	return nil
}

// semantic holds the optional semantic id of a HasSemantics object.
type semantic struct {
	semanticID *Reference
}

// SemanticID returns the semantic id, or nil.
func (s *semantic) SemanticID() *Reference { return cloneRef(s.semanticID) }

// SetSemanticID sets or, with nil, clears the semantic id.
func (s *semantic) SetSemanticID(r *Reference) { s.semanticID = cloneRef(r) }

// qualifiable holds the constraints of a Qualifiable object.
type qualifiable struct {
	qualifiers []Constraint
}

// Qualifiers returns the constraints in insertion order.
func (q *qualifiable) Qualifiers() []Constraint { return slices.Clone(q.qualifiers) }

// AddQualifier appends a constraint.
func (q *qualifiable) AddQualifier(c Constraint) { q.qualifiers = append(q.qualifiers, c) }

// SetQualifiers replaces all constraints.
func (q *qualifiable) SetQualifiers(cs []Constraint) { q.qualifiers = slices.Clone(cs) }

// hasKind holds the modeling kind of a HasKind object.
type hasKind struct {
	modelingKind ModelingKind
}

func (h *hasKind) ModelingKind() ModelingKind     { return h.modelingKind }
func (h *hasKind) SetModelingKind(k ModelingKind) { h.modelingKind = k }

// HasSemantics is implemented by objects carrying a semantic id.
type HasSemantics interface {
	SemanticID() *Reference
	SetSemanticID(r *Reference)
}

// Qualifiable is implemented by objects carrying constraints.
type Qualifiable interface {
	Qualifiers() []Constraint
	AddQualifier(c Constraint)
	SetQualifiers(cs []Constraint)
}

// HasKind is implemented by objects that are templates or instances.
type HasKind interface {
	ModelingKind() ModelingKind
	SetModelingKind(k ModelingKind)
}

func cloneRef(r *Reference) *Reference {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func cloneAASRef(r *AASReference) *AASReference {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
