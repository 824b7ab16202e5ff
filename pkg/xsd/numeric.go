package xsd

import (
	"math"
	"math/big"
	"regexp"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

var (
	integerLexical = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalLexical = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
	floatLexical   = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// DecimalValue is an arbitrary precision xs:decimal.
type DecimalValue struct {
	d *apd.Decimal
}

// NewDecimal wraps an apd decimal. The argument is copied.
func NewDecimal(d *apd.Decimal) DecimalValue {
	var c apd.Decimal
	c.Set(d)
	return DecimalValue{d: &c}
}

// ParseDecimal parses an xs:decimal lexical value. Exponent notation is
// not part of the xs:decimal lexical space and is rejected.
func ParseDecimal(lexical string) (DecimalValue, error) {
	if !decimalLexical.MatchString(lexical) {
		return DecimalValue{}, malformed(Decimal, lexical)
	}
	d, _, err := apd.NewFromString(lexical)
	if err != nil {
		return DecimalValue{}, malformed(Decimal, lexical)
	}
	return DecimalValue{d: d}, nil
}

// Decimal returns a copy of the underlying apd decimal.
func (v DecimalValue) Decimal() *apd.Decimal {
	var c apd.Decimal
	if v.d != nil {
		c.Set(v.d)
	}
	return &c
}

func (DecimalValue) Type() DataType { return Decimal }

func (v DecimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.Text('f')
}

func (v DecimalValue) Equal(o Value) bool {
	w, ok := o.(DecimalValue)
	if !ok {
		return false
	}
	return v.Decimal().Cmp(w.Decimal()) == 0
}

// integral is implemented by every value of the xs:integer family.
type integral interface {
	Value
	bigInt() *big.Int
}

var integerBounds = map[DataType][2]*big.Int{
	Integer:            {nil, nil},
	NonPositiveInteger: {nil, big.NewInt(0)},
	NegativeInteger:    {nil, big.NewInt(-1)},
	NonNegativeInteger: {big.NewInt(0), nil},
	PositiveInteger:    {big.NewInt(1), nil},
	Long:               {big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)},
	Int:                {big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)},
	Short:              {big.NewInt(math.MinInt16), big.NewInt(math.MaxInt16)},
	Byte:               {big.NewInt(math.MinInt8), big.NewInt(math.MaxInt8)},
	UnsignedLong:       {big.NewInt(0), new(big.Int).SetUint64(math.MaxUint64)},
	UnsignedInt:        {big.NewInt(0), big.NewInt(math.MaxUint32)},
	UnsignedShort:      {big.NewInt(0), big.NewInt(math.MaxUint16)},
	UnsignedByte:       {big.NewInt(0), big.NewInt(math.MaxUint8)},
}

func parseInteger(t DataType, lexical string) (Value, error) {
	if !integerLexical.MatchString(lexical) {
		return nil, malformed(t, lexical)
	}
	x, ok := new(big.Int).SetString(lexical, 10)
	if !ok {
		return nil, malformed(t, lexical)
	}
	return NewInteger(t, x)
}

// NewInteger builds a value of the integer-derived type t, failing with
// MALFORMED_VALUE if x lies outside the value space of t.
func NewInteger(t DataType, x *big.Int) (Value, error) {
	bounds, ok := integerBounds[t]
	if !ok {
		return nil, malformed(t, x.String())
	}
	if (bounds[0] != nil && x.Cmp(bounds[0]) < 0) || (bounds[1] != nil && x.Cmp(bounds[1]) > 0) {
		return nil, malformed(t, x.String())
	}
	switch t {
	case Long:
		return LongValue(x.Int64()), nil
	case Int:
		return IntValue(x.Int64()), nil
	case Short:
		return ShortValue(x.Int64()), nil
	case Byte:
		return ByteValue(x.Int64()), nil
	case UnsignedLong:
		return UnsignedLongValue(x.Uint64()), nil
	case UnsignedInt:
		return UnsignedIntValue(x.Uint64()), nil
	case UnsignedShort:
		return UnsignedShortValue(x.Uint64()), nil
	case UnsignedByte:
		return UnsignedByteValue(x.Uint64()), nil
	}
	return IntegerValue{typ: t, v: new(big.Int).Set(x)}, nil
}

// IntegerValue holds the unbounded members of the integer family
// (integer, nonNegativeInteger, positiveInteger, nonPositiveInteger,
// negativeInteger).
type IntegerValue struct {
	typ DataType
	v   *big.Int
}

// Int returns a copy of the value.
func (v IntegerValue) Int() *big.Int { return v.bigInt() }

func (v IntegerValue) bigInt() *big.Int {
	if v.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.v)
}

func (v IntegerValue) Type() DataType {
	if v.typ == TypeInvalid {
		return Integer
	}
	return v.typ
}

func (v IntegerValue) String() string { return v.bigInt().String() }

func (v IntegerValue) Equal(o Value) bool {
	return equalIntegral(v, o)
}

func equalIntegral(v integral, o Value) bool {
	w, ok := o.(integral)
	return ok && v.Type() == w.Type() && v.bigInt().Cmp(w.bigInt()) == 0
}

// LongValue is an xs:long.
type LongValue int64

func (LongValue) Type() DataType       { return Long }
func (v LongValue) String() string     { return strconv.FormatInt(int64(v), 10) }
func (v LongValue) Equal(o Value) bool { return equalIntegral(v, o) }
func (v LongValue) bigInt() *big.Int   { return big.NewInt(int64(v)) }

// IntValue is an xs:int.
type IntValue int32

func (IntValue) Type() DataType       { return Int }
func (v IntValue) String() string     { return strconv.FormatInt(int64(v), 10) }
func (v IntValue) Equal(o Value) bool { return equalIntegral(v, o) }
func (v IntValue) bigInt() *big.Int   { return big.NewInt(int64(v)) }

// ShortValue is an xs:short.
type ShortValue int16

func (ShortValue) Type() DataType       { return Short }
func (v ShortValue) String() string     { return strconv.FormatInt(int64(v), 10) }
func (v ShortValue) Equal(o Value) bool { return equalIntegral(v, o) }
func (v ShortValue) bigInt() *big.Int   { return big.NewInt(int64(v)) }

// ByteValue is an xs:byte.
type ByteValue int8

func (ByteValue) Type() DataType       { return Byte }
func (v ByteValue) String() string     { return strconv.FormatInt(int64(v), 10) }
func (v ByteValue) Equal(o Value) bool { return equalIntegral(v, o) }
func (v ByteValue) bigInt() *big.Int   { return big.NewInt(int64(v)) }

// UnsignedLongValue is an xs:unsignedLong.
type UnsignedLongValue uint64

func (UnsignedLongValue) Type() DataType       { return UnsignedLong }
func (v UnsignedLongValue) String() string     { return strconv.FormatUint(uint64(v), 10) }
func (v UnsignedLongValue) Equal(o Value) bool { return equalIntegral(v, o) }
func (v UnsignedLongValue) bigInt() *big.Int   { return new(big.Int).SetUint64(uint64(v)) }

// UnsignedIntValue is an xs:unsignedInt.
type UnsignedIntValue uint32

func (UnsignedIntValue) Type() DataType       { return UnsignedInt }
func (v UnsignedIntValue) String() string     { return strconv.FormatUint(uint64(v), 10) }
func (v UnsignedIntValue) Equal(o Value) bool { return equalIntegral(v, o) }
func (v UnsignedIntValue) bigInt() *big.Int   { return new(big.Int).SetUint64(uint64(v)) }

// UnsignedShortValue is an xs:unsignedShort.
type UnsignedShortValue uint16

func (UnsignedShortValue) Type() DataType       { return UnsignedShort }
func (v UnsignedShortValue) String() string     { return strconv.FormatUint(uint64(v), 10) }
func (v UnsignedShortValue) Equal(o Value) bool { return equalIntegral(v, o) }
func (v UnsignedShortValue) bigInt() *big.Int   { return new(big.Int).SetUint64(uint64(v)) }

// UnsignedByteValue is an xs:unsignedByte.
type UnsignedByteValue uint8

func (UnsignedByteValue) Type() DataType       { return UnsignedByte }
func (v UnsignedByteValue) String() string     { return strconv.FormatUint(uint64(v), 10) }
func (v UnsignedByteValue) Equal(o Value) bool { return equalIntegral(v, o) }
func (v UnsignedByteValue) bigInt() *big.Int   { return new(big.Int).SetUint64(uint64(v)) }

// FloatValue is an xs:float.
type FloatValue float32

func (FloatValue) Type() DataType   { return Float }
func (v FloatValue) String() string { return formatFloat(float64(v), 32) }
func (v FloatValue) Equal(o Value) bool {
	w, ok := o.(FloatValue)
	return ok && equalFloat(float64(v), float64(w))
}

// DoubleValue is an xs:double.
type DoubleValue float64

func (DoubleValue) Type() DataType   { return Double }
func (v DoubleValue) String() string { return formatFloat(float64(v), 64) }
func (v DoubleValue) Equal(o Value) bool {
	w, ok := o.(DoubleValue)
	return ok && equalFloat(float64(v), float64(w))
}

func equalFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'G', -1, bits)
}

func parseFloatBits(t DataType, lexical string, bits int) (float64, error) {
	switch lexical {
	case "INF", "+INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	if !floatLexical.MatchString(lexical) {
		return 0, malformed(t, lexical)
	}
	f, err := strconv.ParseFloat(lexical, bits)
	if err != nil {
		return 0, malformed(t, lexical)
	}
	return f, nil
}

func parseFloat(lexical string) (Value, error) {
	f, err := parseFloatBits(Float, lexical, 32)
	if err != nil {
		return nil, err
	}
	return FloatValue(f), nil
}

func parseDouble(lexical string) (Value, error) {
	f, err := parseFloatBits(Double, lexical, 64)
	if err != nil {
		return nil, err
	}
	return DoubleValue(f), nil
}
