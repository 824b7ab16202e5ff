package xsd

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

func TestTrivialCast(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		typ     DataType
		want    string
		wantErr bool
	}{
		{"int into unsignedByte", 255, UnsignedByte, "255", false},
		{"int into unsignedByte overflow", 256, UnsignedByte, "", true},
		{"int into integer", int64(-7), Integer, "-7", false},
		{"uint64 into unsignedLong", uint64(18446744073709551615), UnsignedLong, "18446744073709551615", false},
		{"big int into positiveInteger", big.NewInt(42), PositiveInteger, "42", false},
		{"int into decimal", -12, Decimal, "-12", false},
		{"int into double", 3, Double, "3", false},
		{"float into double", 1.25, Double, "1.25", false},
		{"float into decimal", 0.5, Decimal, "0.5", false},
		{"float into float", 1.5, Float, "1.5", false},
		{"float beyond float range rejected", 1e300, Float, "", true},
		{"negative float beyond float range rejected", -1e300, Float, "", true},
		{"infinity into float", math.Inf(1), Float, "INF", false},
		{"float into int rejected", 1.0, Int, "", true},
		{"string into string", "hello", String, "hello", false},
		{"string into anyURI", "urn:x", AnyURI, "urn:x", false},
		{"string into int rejected", "5", Int, "", true},
		{"bool into boolean", true, Boolean, "true", false},
		{"bool into int rejected", true, Int, "", true},
		{"bytes into base64", []byte{0, 1, 2}, Base64Binary, "AAEC", false},
		{"bytes into hex", []byte{0xab}, HexBinary, "AB", false},
		{"int into string rejected", 1, String, "", true},
		{"long value into short", LongValue(30000), Short, "30000", false},
		{"long value into byte overflow", LongValue(300), Byte, "", true},
		{"decimal value into int rejected", mustDecimal(t, "1"), Int, "", true},
		{"same type passes through", UnsignedByteValue(7), UnsignedByte, "7", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := TrivialCast(tt.in, tt.typ)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TrivialCast(%v, %s) error = %v, wantErr %v", tt.in, tt.typ, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeMalformedValue) {
					t.Errorf("error code = %v, want MALFORMED_VALUE", errors.GetCode(err))
				}
				return
			}
			if v.Type() != tt.typ {
				t.Errorf("Type() = %s, want %s", v.Type(), tt.typ)
			}
			if v.String() != tt.want {
				t.Errorf("String() = %q, want %q", v.String(), tt.want)
			}
		})
	}
}

func TestTrivialCastTime(t *testing.T) {
	tm := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	v, err := TrivialCast(tm, DateTime)
	if err != nil {
		t.Fatalf("TrivialCast error: %v", err)
	}
	if v.String() != "2021-03-04T05:06:07Z" {
		t.Errorf("String() = %q", v.String())
	}
	if _, err := TrivialCast(tm, Duration); err == nil {
		t.Error("time.Time into duration should be rejected")
	}
}

func mustDecimal(t *testing.T, s string) DecimalValue {
	t.Helper()
	d, err := ParseDecimal(s)
	if err != nil {
		t.Fatalf("ParseDecimal(%q): %v", s, err)
	}
	return d
}
