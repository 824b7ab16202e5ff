// Package xsd implements the XML Schema scalar value layer used by the
// meta-model for typed element values.
//
// # Overview
//
// Properties, ranges and qualifiers carry a declared value type (for example
// "int" or "dateTime") and a value of that type. This package provides:
//
//   - [DataType]: the closed set of supported XSD types, with their
//     lexical names as used in the "valueType" field of canonical JSON
//   - [Value]: a typed scalar that formats itself in canonical lexical form
//   - [Parse]: the inverse of [Value.String], validating lexical form and
//     value space (bounds, calendar validity)
//   - [TrivialCast]: assignment of plain Go literals to a typed slot, only
//     within compatible value categories
//
// # Lexical Policy
//
// Booleans are written as "true"/"false". Binary values use base64 or upper
// case hex. Temporal values use ISO-8601 with an optional "Z" or "+hh:mm"
// suffix; values without a suffix are kept timezone-naive. Decimals and the
// seconds component of durations use arbitrary precision
// (github.com/cockroachdb/apd/v3) so that every legal value satisfies
//
//	v2, _ := xsd.Parse(v.Type(), v.String())
//	v2.Equal(v) == true
//
// # Errors
//
// All parse and cast failures are *errors.Error values with code
// MALFORMED_VALUE.
//
// This package has no knowledge of the object graph.
package xsd
