// Package pkg provides the libraries behind aasgraph, a toolkit for the
// Asset Administration Shell (AAS) meta-model.
//
// # Overview
//
// An AAS document describes assets, the shells that administer them, the
// submodels holding their data and the concept descriptions giving that
// data meaning. The pkg directory is organized into these areas:
//
//  1. [model] - The object graph: identifiables, namespaces, elements,
//     references and their resolution, backend synchronization
//  2. [xsd] - Typed scalar values for properties, ranges and qualifiers
//  3. [codec] - The canonical JSON document format (plus CBOR and YAML)
//     with failsafe and strict decoding
//  4. [store] - Object stores: in-memory, multiplexed and [store/filestore]
//  5. [render] - Graphviz drawings of containment and references
//
// # Architecture
//
// The typical data flow:
//
//	JSON / CBOR / YAML document
//	         ↓
//	    [codec] package (decode, collect issues)
//	         ↓
//	    [store] package (identifiables by identifier)
//	         ↓
//	    [model] package (navigate, resolve references, update/commit)
//	         ↓
//	    [codec] or [render] (write documents or draw the graph)
//
// # Quick Start
//
// Decode a document and follow a reference:
//
//	import (
//	    "github.com/matzehuels/aasgraph/pkg/codec"
//	    "github.com/matzehuels/aasgraph/pkg/model"
//	)
//
//	s, err := codec.ImportJSON("plant.json")
//	if err != nil {
//	    return err
//	}
//	ref, _ := model.NewAASReference(model.KindProperty,
//	    model.Key{Type: model.KeySubmodel, Value: "urn:example:sm:1", IDType: model.KeyIRI},
//	    model.Key{Type: model.KeyProperty, Local: true, Value: "Temperature", IDType: model.KeyIDShort},
//	)
//	temp, err := model.ResolveAs[*model.Property](ref, s)
//
// # Supporting Packages
//
//   - [errors]: coded errors shared by every package
//   - [cache]: result caching and the identity cache used by stores
//   - [observability]: hooks for decode, store and cache events
//   - [buildinfo]: version information set at build time
//
// [model]: https://pkg.go.dev/github.com/matzehuels/aasgraph/pkg/model
// [xsd]: https://pkg.go.dev/github.com/matzehuels/aasgraph/pkg/xsd
// [codec]: https://pkg.go.dev/github.com/matzehuels/aasgraph/pkg/codec
// [store]: https://pkg.go.dev/github.com/matzehuels/aasgraph/pkg/store
// [store/filestore]: https://pkg.go.dev/github.com/matzehuels/aasgraph/pkg/store/filestore
// [render]: https://pkg.go.dev/github.com/matzehuels/aasgraph/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/aasgraph/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/aasgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/aasgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/aasgraph/pkg/buildinfo
package pkg
