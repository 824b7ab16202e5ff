// Package model implements the Asset Administration Shell meta-model as
// an in-memory object graph.
//
// # Graph
//
// Every object is a [Referable]. [Identifiable] objects (assets, shells,
// submodels, concept descriptions) are graph roots with a global
// [Identifier]. A [Namespace] owns one or more [NamespaceSet]s and
// guarantees that id_shorts are unique across all of them:
//
//	sm := model.NewSubmodel(model.Identifier{ID: "urn:x:sm1", IDType: model.IRI})
//	p, _ := model.NewProperty("p1", xsd.String)
//	_ = sm.SubmodelElements().Add(p) // sets p.Parent() to sm
//
// Adding an object that already has a parent, or whose id_short is taken
// in any set of the namespace, fails with NAMING_CONFLICT and leaves the
// set unchanged. [OrderedNamespaceSet] adds positional operations that
// roll back on failure.
//
// Parents are plain back-pointers that do not own their target; the set
// holding a child owns it.
//
// # Kinds
//
// Each object reports its class through Kind. [Kind.Is] tests class
// membership, so a reference expected to resolve to any submodel element
// can use [KindSubmodelElement] as its target.
//
// # References
//
// A [Reference] is an immutable, non-empty list of [Key]s. An
// [AASReference] adds a target kind and can be resolved against an
// [ObjectProvider] with [AASReference.Resolve]. [ReferenceTo] builds the
// reference for a live object.
//
// # Backends
//
// Objects can carry a source URI. [Update] and [Commit] hand an object to
// the [Backend] registered for the scheme of its nearest source.
//
// The graph is not safe for concurrent mutation; callers serialize access.
package model
