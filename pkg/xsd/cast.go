package xsd

import (
	"math"
	"math/big"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// TrivialCast converts a plain Go literal into a value of type t, only when
// the literal's category matches the type:
//
//   - bool into boolean
//   - any Go integer into integer-derived types (bounds checked), decimal,
//     float and double
//   - float32/float64 into float (range checked), double and decimal, never
//     into integers
//   - string into string, normalizedString and anyURI
//   - []byte into base64Binary and hexBinary
//   - time.Time into dateTime, date and time
//
// A [Value] of exactly type t is returned unchanged; a value of another
// integer type is re-checked against the bounds of t. Any other combination
// fails with MALFORMED_VALUE.
func TrivialCast(x any, t DataType) (Value, error) {
	if v, ok := x.(Value); ok {
		if v.Type() == t {
			return v, nil
		}
		if i, ok := v.(integral); ok && t.IsInteger() {
			return NewInteger(t, i.bigInt())
		}
		return nil, castError(x, t)
	}

	switch lit := x.(type) {
	case bool:
		if t == Boolean {
			return BooleanValue(lit), nil
		}
	case string:
		switch t {
		case String:
			return StringValue(lit), nil
		case NormalizedString:
			return parseNormalizedString(lit)
		case AnyURI:
			return AnyURIValue(lit), nil
		}
	case []byte:
		switch t {
		case Base64Binary:
			return Base64BinaryValue(append([]byte(nil), lit...)), nil
		case HexBinary:
			return HexBinaryValue(append([]byte(nil), lit...)), nil
		}
	case float32:
		return castFloat(float64(lit), t, x)
	case float64:
		return castFloat(lit, t, x)
	case time.Time:
		switch t {
		case DateTime, Date, Time:
			return NewTemporal(t, lit, false)
		}
	default:
		if n, ok := goInteger(x); ok {
			return castInteger(n, t, x)
		}
	}
	return nil, castError(x, t)
}

func castError(x any, t DataType) error {
	return errors.New(errors.ErrCodeMalformedValue, "cannot assign %T value %v to %s", x, x, t)
}

func castFloat(f float64, t DataType, x any) (Value, error) {
	switch t {
	case Float:
		if math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
			return nil, errors.New(errors.ErrCodeMalformedValue, "%v is out of range for %s", x, t)
		}
		return FloatValue(f), nil
	case Double:
		return DoubleValue(f), nil
	case Decimal:
		d, err := new(apd.Decimal).SetFloat64(f)
		if err != nil {
			return nil, castError(x, t)
		}
		return DecimalValue{d: d}, nil
	}
	return nil, castError(x, t)
}

func castInteger(n *big.Int, t DataType, x any) (Value, error) {
	switch {
	case t.IsInteger():
		return NewInteger(t, n)
	case t == Decimal:
		d, _, err := apd.NewFromString(n.String())
		if err != nil {
			return nil, castError(x, t)
		}
		return DecimalValue{d: d}, nil
	case t == Float:
		f, _ := new(big.Float).SetInt(n).Float32()
		return FloatValue(f), nil
	case t == Double:
		f, _ := new(big.Float).SetInt(n).Float64()
		return DoubleValue(f), nil
	}
	return nil, castError(x, t)
}

func goInteger(x any) (*big.Int, bool) {
	switch n := x.(type) {
	case int:
		return big.NewInt(int64(n)), true
	case int8:
		return big.NewInt(int64(n)), true
	case int16:
		return big.NewInt(int64(n)), true
	case int32:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	case uint:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	case *big.Int:
		return new(big.Int).Set(n), true
	}
	return nil, false
}
