package codec

import (
	"fmt"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/xsd"
)

// construct builds the object for one tagged node whose children have
// already been decoded.
func (st *state) construct(name string, o object) (any, error) {
	kind, ok := model.KindByName(name)
	if !ok || kind.ModelType() != name || (kind.Abstract() && kind != model.KindSubmodelElementCollection) {
		return nil, errors.New(errors.ErrCodeUnknownDiscriminator, "unknown model type %q", name)
	}

	var (
		obj any
		err error
	)
	switch kind {
	case model.KindAsset:
		obj, err = st.asset(o)
	case model.KindAssetAdministrationShell:
		obj, err = st.shell(o)
	case model.KindConceptDescription:
		obj, err = st.conceptDescription(o)
	case model.KindSubmodel:
		obj, err = st.submodel(o)
	case model.KindView:
		obj, err = st.view(o)
	case model.KindConceptDictionary:
		obj, err = st.conceptDictionary(o)
	case model.KindProperty:
		obj, err = st.property(o)
	case model.KindMultiLanguageProperty:
		obj, err = st.multiLanguageProperty(o)
	case model.KindRange:
		obj, err = st.rangeElement(o)
	case model.KindBlob:
		obj, err = st.blob(o)
	case model.KindFile:
		obj, err = st.file(o)
	case model.KindReferenceElement:
		obj, err = st.referenceElement(o)
	case model.KindRelationshipElement:
		obj, err = st.relationship(o)
	case model.KindAnnotatedRelationshipElement:
		obj, err = st.annotatedRelationship(o)
	case model.KindOperation:
		obj, err = st.operation(o)
	case model.KindCapability:
		obj, err = model.NewCapability(idShort(o))
	case model.KindEntity:
		obj, err = st.entity(o)
	case model.KindBasicEvent:
		obj, err = st.basicEvent(o)
	case model.KindSubmodelElementCollection:
		obj, err = st.collection(o)
	case model.KindQualifier:
		obj, err = qualifier(o)
	case model.KindFormula:
		obj, err = formula(o)
	case model.KindOperationVariable:
		obj, err = operationVariable(o)
	default:
		return nil, errors.New(errors.ErrCodeUnknownDiscriminator, "model type %q cannot be decoded", name)
	}
	if err != nil {
		return nil, err
	}
	if r, ok := obj.(model.Referable); ok {
		if err := st.amend(r, o); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func idShort(o object) string {
	s, _ := o.m["idShort"].(string)
	return s
}

// amend applies the attributes shared through the abstract classes.
func (st *state) amend(r model.Referable, o object) error {
	category, err := o.str("category")
	if err != nil {
		return err
	}
	r.SetCategory(category)

	desc, err := o.langStrings("description")
	if err != nil {
		return err
	}
	if desc != nil {
		if err := r.SetDescription(desc); err != nil {
			return err
		}
	}

	if id, ok := r.(model.Identifiable); ok {
		name, err := o.str("idShort")
		if err != nil {
			return err
		}
		if name != "" {
			if err := r.SetIDShort(name); err != nil {
				return err
			}
		}
		admin, ok, err := o.obj("administration")
		if err != nil {
			return err
		}
		if ok {
			version, err := admin.str("version")
			if err != nil {
				return err
			}
			revision, err := admin.str("revision")
			if err != nil {
				return err
			}
			a, err := model.NewAdministrativeInformation(version, revision)
			if err != nil {
				return err
			}
			id.SetAdministration(a)
		}
	}

	if hs, ok := r.(model.HasSemantics); ok {
		ref, err := o.reference("semanticId")
		if err != nil {
			return err
		}
		hs.SetSemanticID(ref)
	}

	if q, ok := r.(model.Qualifiable); ok {
		var cs []model.Constraint
		if err := addAll(st, o, "qualifiers", "Constraint", func(c model.Constraint) error {
			cs = append(cs, c)
			return nil
		}); err != nil {
			return err
		}
		q.SetQualifiers(cs)
	}

	if hk, ok := r.(model.HasKind); ok {
		s, err := o.str("kind")
		if err != nil {
			return err
		}
		if s != "" {
			k, err := model.ParseModelingKind(s)
			if err != nil {
				return err
			}
			hk.SetModelingKind(k)
		}
	}
	return nil
}

// addAll passes every decoded child of the array at key to add. Children of
// the wrong type go through the type-expectation guard.
func addAll[T any](st *state, o object, key, want string, add func(T) error) error {
	items, err := o.list(key)
	if err != nil {
		return err
	}
	for i, item := range items {
		x, ok, err := expect[T](st, item, fmt.Sprintf("%s[%d]", o.at(key), i), want)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := add(x); err != nil {
			return err
		}
	}
	return nil
}

func (st *state) asset(o object) (*model.Asset, error) {
	id, err := o.identifier()
	if err != nil {
		return nil, err
	}
	kind := model.AssetInstance
	if s, err := o.str("kind"); err != nil {
		return nil, err
	} else if s != "" {
		if kind, err = model.ParseAssetKind(s); err != nil {
			return nil, err
		}
	}
	a := model.NewAsset(id, kind)
	if a.AssetIdentificationModel, err = o.aasReference("assetIdentificationModel", model.KindSubmodel); err != nil {
		return nil, err
	}
	if a.BillOfMaterial, err = o.aasReference("billOfMaterial", model.KindSubmodel); err != nil {
		return nil, err
	}
	return a, nil
}

func (st *state) shell(o object) (*model.AssetAdministrationShell, error) {
	id, err := o.identifier()
	if err != nil {
		return nil, err
	}
	asset, err := o.requiredAASReference("asset", model.KindAsset)
	if err != nil {
		return nil, err
	}
	aas := model.NewAssetAdministrationShell(id, asset)
	if aas.DerivedFrom, err = o.aasReference("derivedFrom", model.KindAssetAdministrationShell); err != nil {
		return nil, err
	}
	submodels, err := o.aasReferences("submodels", model.KindSubmodel)
	if err != nil {
		return nil, err
	}
	for _, ref := range submodels {
		aas.AddSubmodel(ref)
	}
	if err := addAll(st, o, "conceptDictionaries", "ConceptDictionary", aas.ConceptDictionaries().Add); err != nil {
		return nil, err
	}
	if err := addAll(st, o, "views", "View", aas.Views().Add); err != nil {
		return nil, err
	}
	return aas, nil
}

func (st *state) conceptDescription(o object) (*model.ConceptDescription, error) {
	id, err := o.identifier()
	if err != nil {
		return nil, err
	}
	cd := model.NewConceptDescription(id)
	if cd.IsCaseOf, err = o.references("isCaseOf"); err != nil {
		return nil, err
	}
	return cd, nil
}

func (st *state) submodel(o object) (*model.Submodel, error) {
	id, err := o.identifier()
	if err != nil {
		return nil, err
	}
	sm := model.NewSubmodel(id)
	if err := addAll(st, o, "submodelElements", "SubmodelElement", sm.SubmodelElements().Add); err != nil {
		return nil, err
	}
	return sm, nil
}

func (st *state) view(o object) (*model.View, error) {
	v, err := model.NewView(idShort(o))
	if err != nil {
		return nil, err
	}
	if v.ContainedElements, err = o.aasReferences("containedElements", model.KindReferable); err != nil {
		return nil, err
	}
	return v, nil
}

func (st *state) conceptDictionary(o object) (*model.ConceptDictionary, error) {
	cd, err := model.NewConceptDictionary(idShort(o))
	if err != nil {
		return nil, err
	}
	if cd.ConceptDescriptions, err = o.aasReferences("conceptDescriptions", model.KindConceptDescription); err != nil {
		return nil, err
	}
	return cd, nil
}

func (st *state) property(o object) (*model.Property, error) {
	vt, err := o.valueType("valueType")
	if err != nil {
		return nil, err
	}
	p, err := model.NewProperty(idShort(o), vt)
	if err != nil {
		return nil, err
	}
	val, err := o.scalar("value", vt)
	if err != nil {
		return nil, err
	}
	if err := p.SetValue(val); err != nil {
		return nil, err
	}
	if p.ValueID, err = o.reference("valueId"); err != nil {
		return nil, err
	}
	return p, nil
}

func (st *state) multiLanguageProperty(o object) (*model.MultiLanguageProperty, error) {
	p, err := model.NewMultiLanguageProperty(idShort(o))
	if err != nil {
		return nil, err
	}
	value, err := o.langStrings("value")
	if err != nil {
		return nil, err
	}
	if value != nil {
		if err := p.SetValue(value); err != nil {
			return nil, err
		}
	}
	if p.ValueID, err = o.reference("valueId"); err != nil {
		return nil, err
	}
	return p, nil
}

func (st *state) rangeElement(o object) (*model.Range, error) {
	vt, err := o.valueType("valueType")
	if err != nil {
		return nil, err
	}
	r, err := model.NewRange(idShort(o), vt)
	if err != nil {
		return nil, err
	}
	lo, err := o.scalar("min", vt)
	if err != nil {
		return nil, err
	}
	hi, err := o.scalar("max", vt)
	if err != nil {
		return nil, err
	}
	if err := r.SetMin(lo); err != nil {
		return nil, err
	}
	if err := r.SetMax(hi); err != nil {
		return nil, err
	}
	return r, nil
}

func (st *state) blob(o object) (*model.Blob, error) {
	mime, err := o.requiredStr("mimeType")
	if err != nil {
		return nil, err
	}
	b, err := model.NewBlob(idShort(o), mime)
	if err != nil {
		return nil, err
	}
	val, err := o.scalar("value", xsd.Base64Binary)
	if err != nil {
		return nil, err
	}
	if bin, ok := val.(xsd.Base64BinaryValue); ok {
		b.Value = []byte(bin)
	}
	return b, nil
}

func (st *state) file(o object) (*model.File, error) {
	mime, err := o.requiredStr("mimeType")
	if err != nil {
		return nil, err
	}
	f, err := model.NewFile(idShort(o), mime)
	if err != nil {
		return nil, err
	}
	if f.Value, err = o.str("value"); err != nil {
		return nil, err
	}
	return f, nil
}

func (st *state) referenceElement(o object) (*model.ReferenceElement, error) {
	re, err := model.NewReferenceElement(idShort(o))
	if err != nil {
		return nil, err
	}
	if re.Value, err = o.reference("value"); err != nil {
		return nil, err
	}
	return re, nil
}

func relationshipEnds(o object) (model.AASReference, model.AASReference, error) {
	first, err := o.requiredAASReference("first", model.KindReferable)
	if err != nil {
		return model.AASReference{}, model.AASReference{}, err
	}
	second, err := o.requiredAASReference("second", model.KindReferable)
	return first, second, err
}

func (st *state) relationship(o object) (*model.RelationshipElement, error) {
	first, second, err := relationshipEnds(o)
	if err != nil {
		return nil, err
	}
	return model.NewRelationshipElement(idShort(o), first, second)
}

func (st *state) annotatedRelationship(o object) (*model.AnnotatedRelationshipElement, error) {
	first, second, err := relationshipEnds(o)
	if err != nil {
		return nil, err
	}
	are, err := model.NewAnnotatedRelationshipElement(idShort(o), first, second)
	if err != nil {
		return nil, err
	}
	if err := addAll(st, o, "annotation", "DataElement", are.Annotation().Add); err != nil {
		return nil, err
	}
	return are, nil
}

func (st *state) operation(o object) (*model.Operation, error) {
	op, err := model.NewOperation(idShort(o))
	if err != nil {
		return nil, err
	}
	for _, vars := range []struct {
		key string
		dst *[]*model.OperationVariable
	}{
		{"inputVariable", &op.InputVariables},
		{"outputVariable", &op.OutputVariables},
		{"inoutputVariable", &op.InOutputVariables},
	} {
		if err := addAll(st, o, vars.key, "OperationVariable", func(v *model.OperationVariable) error {
			*vars.dst = append(*vars.dst, v)
			return nil
		}); err != nil {
			return nil, err
		}
	}
	return op, nil
}

func operationVariable(o object) (*model.OperationVariable, error) {
	v, ok := o.m["value"].(model.SubmodelElement)
	if !ok {
		return nil, fieldError(o.at("value"), "expected a SubmodelElement, found %s", describe(o.m["value"]))
	}
	return &model.OperationVariable{Value: v}, nil
}

func (st *state) entity(o object) (*model.Entity, error) {
	s, err := o.requiredStr("entityType")
	if err != nil {
		return nil, err
	}
	et, err := model.ParseEntityType(s)
	if err != nil {
		return nil, err
	}
	asset, err := o.aasReference("asset", model.KindAsset)
	if err != nil {
		return nil, err
	}
	ent, err := model.NewEntity(idShort(o), et, asset)
	if err != nil {
		return nil, err
	}
	if err := addAll(st, o, "statements", "SubmodelElement", ent.Statements().Add); err != nil {
		return nil, err
	}
	return ent, nil
}

func (st *state) basicEvent(o object) (*model.BasicEvent, error) {
	observed, err := o.requiredAASReference("observed", model.KindReferable)
	if err != nil {
		return nil, err
	}
	return model.NewBasicEvent(idShort(o), observed)
}

func (st *state) collection(o object) (model.SubmodelElementCollection, error) {
	ordered, err := o.boolean("ordered")
	if err != nil {
		return nil, err
	}
	allow, err := o.boolean("allowDuplicates")
	if err != nil {
		return nil, err
	}
	c, err := model.NewSubmodelElementCollection(idShort(o), ordered)
	if err != nil {
		return nil, err
	}
	c.SetAllowDuplicates(allow)
	if err := addAll(st, o, "value", "SubmodelElement", c.AddElement); err != nil {
		return nil, err
	}
	return c, nil
}

func qualifier(o object) (*model.Qualifier, error) {
	typ, err := o.requiredStr("type")
	if err != nil {
		return nil, err
	}
	vt, err := o.valueType("valueType")
	if err != nil {
		return nil, err
	}
	q, err := model.NewQualifier(typ, vt)
	if err != nil {
		return nil, err
	}
	val, err := o.scalar("value", vt)
	if err != nil {
		return nil, err
	}
	if err := q.SetValue(val); err != nil {
		return nil, err
	}
	if q.ValueID, err = o.reference("valueId"); err != nil {
		return nil, err
	}
	if q.SemanticID, err = o.reference("semanticId"); err != nil {
		return nil, err
	}
	return q, nil
}

func formula(o object) (*model.Formula, error) {
	deps, err := o.references("dependsOn")
	if err != nil {
		return nil, err
	}
	return &model.Formula{DependsOn: deps}, nil
}
