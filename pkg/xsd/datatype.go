package xsd

import (
	"github.com/matzehuels/aasgraph/pkg/errors"
)

// DataType identifies an XSD simple type.
type DataType int

// Supported data types. The zero value is invalid.
const (
	TypeInvalid DataType = iota

	String
	NormalizedString
	AnyURI
	Boolean

	Decimal
	Integer
	NonPositiveInteger
	NegativeInteger
	NonNegativeInteger
	PositiveInteger
	Long
	Int
	Short
	Byte
	UnsignedLong
	UnsignedInt
	UnsignedShort
	UnsignedByte

	Float
	Double

	Duration
	DateTime
	Date
	Time
	GYearMonth
	GYear
	GMonthDay
	GDay
	GMonth

	Base64Binary
	HexBinary
)

var dataTypeNames = map[DataType]string{
	String:             "string",
	NormalizedString:   "normalizedString",
	AnyURI:             "anyURI",
	Boolean:            "boolean",
	Decimal:            "decimal",
	Integer:            "integer",
	NonPositiveInteger: "nonPositiveInteger",
	NegativeInteger:    "negativeInteger",
	NonNegativeInteger: "nonNegativeInteger",
	PositiveInteger:    "positiveInteger",
	Long:               "long",
	Int:                "int",
	Short:              "short",
	Byte:               "byte",
	UnsignedLong:       "unsignedLong",
	UnsignedInt:        "unsignedInt",
	UnsignedShort:      "unsignedShort",
	UnsignedByte:       "unsignedByte",
	Float:              "float",
	Double:             "double",
	Duration:           "duration",
	DateTime:           "dateTime",
	Date:               "date",
	Time:               "time",
	GYearMonth:         "gYearMonth",
	GYear:              "gYear",
	GMonthDay:          "gMonthDay",
	GDay:               "gDay",
	GMonth:             "gMonth",
	Base64Binary:       "base64Binary",
	HexBinary:          "hexBinary",
}

var dataTypesByName = func() map[string]DataType {
	m := make(map[string]DataType, len(dataTypeNames))
	for t, name := range dataTypeNames {
		m[name] = t
	}
	return m
}()

// String returns the XSD local name of the type (e.g. "unsignedByte").
func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return "invalid"
}

// Valid reports whether t is a supported data type.
func (t DataType) Valid() bool {
	_, ok := dataTypeNames[t]
	return ok
}

// ParseDataType looks up a data type by its XSD local name. An optional
// "xs:" or "xsd:" prefix is accepted.
func ParseDataType(name string) (DataType, error) {
	for _, prefix := range []string{"xs:", "xsd:"} {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			name = name[len(prefix):]
			break
		}
	}
	if t, ok := dataTypesByName[name]; ok {
		return t, nil
	}
	return TypeInvalid, errors.New(errors.ErrCodeMalformedValue, "unknown value type %q", name)
}

// IsInteger reports whether t is xs:integer or derived from it.
func (t DataType) IsInteger() bool {
	return t >= Integer && t <= UnsignedByte
}

// IsNumeric reports whether t belongs to the decimal or floating point families.
func (t DataType) IsNumeric() bool {
	return t == Decimal || t.IsInteger() || t == Float || t == Double
}

// IsTemporal reports whether t is a date, time or gregorian type. Durations
// are not temporal in this sense.
func (t DataType) IsTemporal() bool {
	return t >= DateTime && t <= GMonth
}

// IsBinary reports whether t holds raw octets.
func (t DataType) IsBinary() bool {
	return t == Base64Binary || t == HexBinary
}

// IsString reports whether t is a string-like type.
func (t DataType) IsString() bool {
	return t == String || t == NormalizedString || t == AnyURI
}
