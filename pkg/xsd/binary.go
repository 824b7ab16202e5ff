package xsd

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Base64BinaryValue is an xs:base64Binary. Blob contents use this type.
type Base64BinaryValue []byte

func (Base64BinaryValue) Type() DataType   { return Base64Binary }
func (v Base64BinaryValue) String() string { return base64.StdEncoding.EncodeToString(v) }
func (v Base64BinaryValue) Equal(o Value) bool {
	w, ok := o.(Base64BinaryValue)
	return ok && bytes.Equal(v, w)
}

func parseBase64(lexical string) (Value, error) {
	// whitespace inside the lexical form is allowed
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, lexical)
	b, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, malformed(Base64Binary, lexical)
	}
	return Base64BinaryValue(b), nil
}

// HexBinaryValue is an xs:hexBinary; the canonical form is upper case.
type HexBinaryValue []byte

func (HexBinaryValue) Type() DataType   { return HexBinary }
func (v HexBinaryValue) String() string { return strings.ToUpper(hex.EncodeToString(v)) }
func (v HexBinaryValue) Equal(o Value) bool {
	w, ok := o.(HexBinaryValue)
	return ok && bytes.Equal(v, w)
}

func parseHex(lexical string) (Value, error) {
	b, err := hex.DecodeString(lexical)
	if err != nil {
		return nil, malformed(HexBinary, lexical)
	}
	return HexBinaryValue(b), nil
}
