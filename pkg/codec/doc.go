// Package codec reads and writes AAS documents.
//
// # Document Format
//
// A document is a JSON object with four root collections:
//
//	{
//	  "assetAdministrationShells": [...],
//	  "submodels": [...],
//	  "assets": [...],
//	  "conceptDescriptions": [...]
//	}
//
// Every meta-model object is a JSON object tagged with its class:
//
//	{"modelType": {"name": "Property"}, "idShort": "Temperature",
//	 "valueType": "double", "value": "21.5"}
//
// References are {"keys": [{"type", "local", "value", "idType"}]}. Scalar
// values are written in their XSD lexical form; on input, JSON numbers and
// booleans are also accepted when their category matches the value type.
//
// # Decoding
//
// The [Decoder] parses the document into a generic tree and rebuilds the
// object graph bottom-up: every tagged node is constructed after its
// children, so a submodel sees decoded elements rather than raw objects.
//
// In failsafe mode (the default) a node that cannot be decoded is left as
// a raw placeholder, and the parent's type-expectation guard drops it. One
// malformed property therefore costs only that property; its siblings and
// its submodel survive. Each recovered problem is logged and returned as an
// [Issue] with a JSON-path-like location:
//
//	res, err := codec.NewDecoder(codec.DecodeOptions{}).Decode(ctx, r, codec.FormatJSON)
//	for _, issue := range res.Issues {
//	    fmt.Println(issue.Path, issue.Err)
//	}
//
// In strict mode the first problem aborts decoding with DECODE_FAILURE
// naming the location.
//
// # Encoding
//
// The [Encoder] writes objects top-down, starting each node with the
// attributes shared through the abstract classes. Stripped mode omits
// child containers and qualifiers, yielding a shallow rendition of each
// object.
//
// # Other Renditions
//
// The same tree can be written as CBOR ([WriteCBOR]) or YAML ([WriteYAML])
// and read back with [ReadCBOR] and [ReadYAML].
package codec
