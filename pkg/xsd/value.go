package xsd

import (
	"strings"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// Value is a typed scalar. String returns the canonical lexical form that
// [Parse] accepts for the same type.
type Value interface {
	Type() DataType
	String() string
	Equal(other Value) bool
}

// Parse converts a lexical representation into a typed value, enforcing the
// lexical and value space of t. Leading and trailing XML whitespace is
// collapsed for every type except String.
func Parse(t DataType, lexical string) (Value, error) {
	if t != String {
		lexical = strings.Trim(lexical, " \t\r\n")
	}
	switch {
	case t == String:
		return StringValue(lexical), nil
	case t == NormalizedString:
		return parseNormalizedString(lexical)
	case t == AnyURI:
		return AnyURIValue(lexical), nil
	case t == Boolean:
		return parseBoolean(lexical)
	case t == Decimal:
		return ParseDecimal(lexical)
	case t.IsInteger():
		return parseInteger(t, lexical)
	case t == Float:
		return parseFloat(lexical)
	case t == Double:
		return parseDouble(lexical)
	case t == Duration:
		return ParseDuration(lexical)
	case t.IsTemporal():
		return parseTemporal(t, lexical)
	case t == Base64Binary:
		return parseBase64(lexical)
	case t == HexBinary:
		return parseHex(lexical)
	}
	return nil, errors.New(errors.ErrCodeMalformedValue, "unsupported value type %s", t)
}

// Equal reports whether two possibly nil values are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func malformed(t DataType, lexical string) error {
	return errors.New(errors.ErrCodeMalformedValue, "invalid %s: %q", t, lexical)
}

// StringValue is an xs:string.
type StringValue string

func (StringValue) Type() DataType    { return String }
func (v StringValue) String() string  { return string(v) }
func (v StringValue) Equal(o Value) bool {
	w, ok := o.(StringValue)
	return ok && v == w
}

// NormalizedStringValue is an xs:normalizedString: no CR, LF or tab.
type NormalizedStringValue string

func (NormalizedStringValue) Type() DataType   { return NormalizedString }
func (v NormalizedStringValue) String() string { return string(v) }
func (v NormalizedStringValue) Equal(o Value) bool {
	w, ok := o.(NormalizedStringValue)
	return ok && v == w
}

func parseNormalizedString(lexical string) (Value, error) {
	if strings.ContainsAny(lexical, "\r\n\t") {
		return nil, malformed(NormalizedString, lexical)
	}
	return NormalizedStringValue(lexical), nil
}

// AnyURIValue is an xs:anyURI.
type AnyURIValue string

func (AnyURIValue) Type() DataType   { return AnyURI }
func (v AnyURIValue) String() string { return string(v) }
func (v AnyURIValue) Equal(o Value) bool {
	w, ok := o.(AnyURIValue)
	return ok && v == w
}

// BooleanValue is an xs:boolean.
type BooleanValue bool

func (BooleanValue) Type() DataType { return Boolean }

func (v BooleanValue) String() string {
	if v {
		return "true"
	}
	return "false"
}

func (v BooleanValue) Equal(o Value) bool {
	w, ok := o.(BooleanValue)
	return ok && v == w
}

func parseBoolean(lexical string) (Value, error) {
	switch lexical {
	case "true", "1":
		return BooleanValue(true), nil
	case "false", "0":
		return BooleanValue(false), nil
	}
	return nil, malformed(Boolean, lexical)
}
