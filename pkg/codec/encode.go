package codec

import (
	"context"
	"io"
	"time"

	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/observability"
	"github.com/matzehuels/aasgraph/pkg/store"
	"github.com/matzehuels/aasgraph/pkg/xsd"
)

// EncodeOptions configures an Encoder.
type EncodeOptions struct {
	// Stripped omits child containers (submodel elements, collection values,
	// annotations, statements, shell submodel references) and qualifiers.
	Stripped bool
}

// Encoder turns object graphs into documents.
type Encoder struct {
	opts EncodeOptions
}

// NewEncoder returns an encoder with the given options.
func NewEncoder(opts EncodeOptions) *Encoder {
	return &Encoder{opts: opts}
}

// Encode writes every object of s as a document in format f to w.
func (e *Encoder) Encode(ctx context.Context, w io.Writer, s store.ObjectStore, f Format) error {
	start := time.Now()
	err := writeTree(w, e.EncodeTree(s), f)
	observability.Codec().OnEncodeComplete(ctx, string(f), s.Len(), time.Since(start), err)
	return err
}

// EncodeTree returns the document tree for s. Objects appear in the root
// collection of their kind, in store iteration order.
func (e *Encoder) EncodeTree(s store.ObjectStore) map[string]any {
	doc := make(map[string]any, len(rootCollections))
	index := make(map[model.Kind]string, len(rootCollections))
	for _, c := range rootCollections {
		doc[c.key] = []any{}
		index[c.kind] = c.key
	}
	for _, obj := range s.Items() {
		key, ok := index[obj.Kind()]
		if !ok {
			continue
		}
		doc[key] = append(doc[key].([]any), e.EncodeIdentifiable(obj))
	}
	return doc
}

// EncodeIdentifiable returns the tagged node for a single identifiable.
func (e *Encoder) EncodeIdentifiable(obj model.Identifiable) map[string]any {
	return e.encode(obj)
}

// EncodeReferable returns the tagged node for any object, including the
// subtree below it.
func (e *Encoder) EncodeReferable(r model.Referable) map[string]any {
	return e.encode(r)
}

func (e *Encoder) encode(r model.Referable) map[string]any {
	m := e.abstract(r)
	switch x := r.(type) {
	case *model.Asset:
		m["kind"] = x.AssetKind.String()
		putAASRef(m, "assetIdentificationModel", x.AssetIdentificationModel)
		putAASRef(m, "billOfMaterial", x.BillOfMaterial)
	case *model.AssetAdministrationShell:
		m["asset"] = encodeReference(x.Asset.Reference)
		putAASRef(m, "derivedFrom", x.DerivedFrom)
		if !e.opts.Stripped {
			m["submodels"] = encodeAASRefs(x.Submodels)
		}
		m["views"] = encodeSet(e, x.Views().Items())
		m["conceptDictionaries"] = encodeSet(e, x.ConceptDictionaries().Items())
	case *model.ConceptDescription:
		if len(x.IsCaseOf) > 0 {
			m["isCaseOf"] = encodeRefs(x.IsCaseOf)
		}
	case *model.Submodel:
		if !e.opts.Stripped {
			m["submodelElements"] = encodeSet(e, x.SubmodelElements().Items())
		}
	case *model.View:
		m["containedElements"] = encodeAASRefs(x.ContainedElements)
	case *model.ConceptDictionary:
		m["conceptDescriptions"] = encodeAASRefs(x.ConceptDescriptions)
	case *model.Property:
		m["valueType"] = x.ValueType().String()
		putValue(m, "value", x.Value())
		putRef(m, "valueId", x.ValueID)
	case *model.MultiLanguageProperty:
		if x.Value() != nil {
			m["value"] = encodeLangStrings(x.Value())
		}
		putRef(m, "valueId", x.ValueID)
	case *model.Range:
		m["valueType"] = x.ValueType().String()
		putValue(m, "min", x.Min())
		putValue(m, "max", x.Max())
	case *model.Blob:
		m["mimeType"] = x.MIMEType()
		if x.Value != nil {
			m["value"] = xsd.Base64BinaryValue(x.Value).String()
		}
	case *model.File:
		m["mimeType"] = x.MIMEType()
		if x.Value != "" {
			m["value"] = x.Value
		}
	case *model.ReferenceElement:
		putRef(m, "value", x.Value)
	case *model.AnnotatedRelationshipElement:
		m["first"] = encodeReference(x.First.Reference)
		m["second"] = encodeReference(x.Second.Reference)
		if !e.opts.Stripped {
			m["annotation"] = encodeSet(e, x.Annotation().Items())
		}
	case *model.RelationshipElement:
		m["first"] = encodeReference(x.First.Reference)
		m["second"] = encodeReference(x.Second.Reference)
	case *model.Operation:
		m["inputVariable"] = e.encodeVariables(x.InputVariables)
		m["outputVariable"] = e.encodeVariables(x.OutputVariables)
		m["inoutputVariable"] = e.encodeVariables(x.InOutputVariables)
	case *model.Capability:
	case *model.Entity:
		m["entityType"] = x.EntityType().String()
		putAASRef(m, "asset", x.Asset())
		if !e.opts.Stripped {
			m["statements"] = encodeSet(e, x.Statements().Items())
		}
	case *model.BasicEvent:
		m["observed"] = encodeReference(x.Observed.Reference)
	case model.SubmodelElementCollection:
		m["ordered"] = x.Ordered()
		m["allowDuplicates"] = x.AllowDuplicates()
		if !e.opts.Stripped {
			m["value"] = encodeSet(e, x.Value())
		}
	}
	return m
}

// abstract encodes the attributes shared through the abstract classes.
func (e *Encoder) abstract(r model.Referable) map[string]any {
	m := map[string]any{
		"modelType": map[string]any{"name": r.Kind().ModelType()},
	}
	if r.IDShort() != "" {
		m["idShort"] = r.IDShort()
	}
	if r.Category() != "" {
		m["category"] = r.Category()
	}
	if d := r.Description(); len(d) > 0 {
		m["description"] = encodeLangStrings(d)
	}
	if id, ok := r.(model.Identifiable); ok {
		ident := id.Identification()
		m["identification"] = map[string]any{"id": ident.ID, "idType": ident.IDType.String()}
		if a := id.Administration(); a != nil {
			admin := map[string]any{}
			if a.Version() != "" {
				admin["version"] = a.Version()
			}
			if a.Revision() != "" {
				admin["revision"] = a.Revision()
			}
			m["administration"] = admin
		}
	}
	if hs, ok := r.(model.HasSemantics); ok {
		putRef(m, "semanticId", hs.SemanticID())
	}
	if q, ok := r.(model.Qualifiable); ok && !e.opts.Stripped {
		if cs := q.Qualifiers(); len(cs) > 0 {
			l := make([]any, 0, len(cs))
			for _, c := range cs {
				l = append(l, encodeConstraint(c))
			}
			m["qualifiers"] = l
		}
	}
	if hk, ok := r.(model.HasKind); ok {
		m["kind"] = hk.ModelingKind().String()
	}
	return m
}

func encodeSet[T model.Referable](e *Encoder, items []T) []any {
	l := make([]any, 0, len(items))
	for _, x := range items {
		l = append(l, e.encode(x))
	}
	return l
}

func (e *Encoder) encodeVariables(vars []*model.OperationVariable) []any {
	l := make([]any, 0, len(vars))
	for _, v := range vars {
		node := map[string]any{"modelType": map[string]any{"name": v.Kind().ModelType()}}
		if v.Value != nil {
			node["value"] = e.encode(v.Value)
		}
		l = append(l, node)
	}
	return l
}

func encodeConstraint(c model.Constraint) map[string]any {
	m := map[string]any{"modelType": map[string]any{"name": c.Kind().ModelType()}}
	switch x := c.(type) {
	case *model.Qualifier:
		m["type"] = x.Type
		m["valueType"] = x.ValueType().String()
		putValue(m, "value", x.Value())
		putRef(m, "valueId", x.ValueID)
		putRef(m, "semanticId", x.SemanticID)
	case *model.Formula:
		m["dependsOn"] = encodeRefs(x.DependsOn)
	}
	return m
}

func encodeReference(r model.Reference) map[string]any {
	keys := make([]any, 0, r.Len())
	for _, k := range r.Keys() {
		keys = append(keys, map[string]any{
			"type":   k.Type.String(),
			"local":  k.Local,
			"value":  k.Value,
			"idType": k.IDType.String(),
		})
	}
	return map[string]any{"keys": keys}
}

func encodeRefs(refs []model.Reference) []any {
	l := make([]any, 0, len(refs))
	for _, r := range refs {
		l = append(l, encodeReference(r))
	}
	return l
}

func encodeAASRefs(refs []model.AASReference) []any {
	l := make([]any, 0, len(refs))
	for _, r := range refs {
		l = append(l, encodeReference(r.Reference))
	}
	return l
}

func encodeLangStrings(s model.LangStringSet) []any {
	l := make([]any, 0, len(s))
	for _, lang := range s.Languages() {
		l = append(l, map[string]any{"language": lang, "text": s[lang]})
	}
	return l
}

func putRef(m map[string]any, key string, r *model.Reference) {
	if r != nil {
		m[key] = encodeReference(*r)
	}
}

func putAASRef(m map[string]any, key string, r *model.AASReference) {
	if r != nil {
		m[key] = encodeReference(r.Reference)
	}
}

func putValue(m map[string]any, key string, v xsd.Value) {
	if v != nil {
		m[key] = v.String()
	}
}
