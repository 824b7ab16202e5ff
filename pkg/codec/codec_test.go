package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/store"
	"github.com/matzehuels/aasgraph/pkg/xsd"
)

var quiet = log.New(io.Discard)

func decode(t *testing.T, strict bool, doc string) (*Result, error) {
	t.Helper()
	d := NewDecoder(DecodeOptions{Strict: strict, Logger: quiet})
	return d.Decode(context.Background(), strings.NewReader(doc), FormatJSON)
}

func iri(id string) model.Identifier { return model.Identifier{ID: id, IDType: model.IRI} }

// must defers the error check of a two-value constructor to the returned
// function: must(model.NewView("Main"))(t).
func must[T any](x T, err error) func(*testing.T) T {
	return func(t *testing.T) T {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return x
	}
}

func check(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func property(t *testing.T, idShort string, vt xsd.DataType, lexical string) *model.Property {
	t.Helper()
	p := must(model.NewProperty(idShort, vt))(t)
	check(t, p.ParseValue(lexical))
	return p
}

func aasRef(t *testing.T, target model.Kind, keys ...model.Key) model.AASReference {
	t.Helper()
	return must(model.NewAASReference(target, keys...))(t)
}

// sampleStore builds a store exercising every concrete kind.
func sampleStore(t *testing.T) *store.DictStore {
	t.Helper()
	assetRef := aasRef(t, model.KindAsset, model.Key{Type: model.KeyAsset, Value: "urn:x:asset", IDType: model.KeyIRI})
	smRef := aasRef(t, model.KindSubmodel, model.Key{Type: model.KeySubmodel, Value: "urn:x:sm", IDType: model.KeyIRI})
	cdRef := aasRef(t, model.KindConceptDescription, model.Key{Type: model.KeyConceptDescription, Value: "urn:x:cd", IDType: model.KeyIRI})
	propRef := aasRef(t, model.KindProperty,
		model.Key{Type: model.KeySubmodel, Local: true, Value: "urn:x:sm", IDType: model.KeyIRI},
		model.Key{Type: model.KeyProperty, Local: true, Value: "Temperature", IDType: model.KeyIDShort})
	semantic := must(model.NewReference(model.Key{Type: model.KeyGlobalReference, Value: "0173-1#02-AAA123#001", IDType: model.KeyIRDI}))(t)

	asset := model.NewAsset(iri("urn:x:asset"), model.AssetType)
	check(t, asset.SetIDShort("Motor"))
	asset.AssetIdentificationModel = &smRef

	sm := model.NewSubmodel(iri("urn:x:sm"))
	check(t, sm.SetIDShort("Data"))
	sm.SetAdministration(must(model.NewAdministrativeInformation("1", "2"))(t))
	sm.SetSemanticID(&semantic)
	sm.SetModelingKind(model.Template)

	temp := property(t, "Temperature", xsd.Double, "21.5")
	temp.SetCategory("PARAMETER")
	check(t, temp.SetDescription(model.LangStringSet{"en": "Temperature", "de": "Temperatur"}))
	unit := must(model.NewQualifier("unit", xsd.String))(t)
	check(t, unit.ParseValue("celsius"))
	temp.AddQualifier(unit)
	temp.AddQualifier(&model.Formula{DependsOn: []model.Reference{semantic}})
	temp.ValueID = &semantic

	name := must(model.NewMultiLanguageProperty("Name"))(t)
	check(t, name.SetValue(model.LangStringSet{"en": "motor"}))

	limits := must(model.NewRange("Limits", xsd.Int))(t)
	check(t, limits.SetMin(xsd.IntValue(0)))
	check(t, limits.SetMax(xsd.IntValue(100)))

	firmware := must(model.NewBlob("Firmware", "application/octet-stream"))(t)
	firmware.Value = []byte{1, 2, 3}

	manual := must(model.NewFile("Manual", "application/pdf"))(t)
	manual.Value = "/docs/manual.pdf"

	link := must(model.NewReferenceElement("Link"))(t)
	link.Value = &semantic

	rel := must(model.NewRelationshipElement("Feeds", propRef, propRef))(t)
	are := must(model.NewAnnotatedRelationshipElement("Checked", propRef, propRef))(t)
	check(t, are.Annotation().Add(property(t, "Note", xsd.String, "ok")))

	start := must(model.NewOperation("Start"))(t)
	start.InputVariables = []*model.OperationVariable{{Value: property(t, "Speed", xsd.Int, "1500")}}
	start.OutputVariables = []*model.OperationVariable{{Value: property(t, "Running", xsd.Boolean, "true")}}

	drive := must(model.NewCapability("Drive"))(t)

	part := must(model.NewEntity("Part", model.SelfManagedEntity, &assetRef))(t)
	check(t, part.Statements().Add(property(t, "Serial", xsd.String, "42")))

	overheat := must(model.NewBasicEvent("Overheat", propRef))(t)

	history := must(model.NewSubmodelElementCollectionOrdered("History"))(t)
	check(t, history.AddElement(property(t, "Entry", xsd.DateTime, "2020-01-01T00:00:00Z")))
	bag := must(model.NewSubmodelElementCollectionUnordered("Bag"))(t)
	bag.SetAllowDuplicates(true)
	check(t, bag.AddElement(property(t, "Item", xsd.HexBinary, "0FB7")))

	for _, e := range []model.SubmodelElement{temp, name, limits, firmware, manual, link, rel, are, start, drive, part, overheat, history, bag} {
		check(t, sm.SubmodelElements().Add(e))
	}

	aas := model.NewAssetAdministrationShell(iri("urn:x:aas"), assetRef)
	check(t, aas.SetIDShort("Shell"))
	aas.AddSubmodel(smRef)
	view := must(model.NewView("Main"))(t)
	view.ContainedElements = []model.AASReference{propRef}
	check(t, aas.Views().Add(view))
	dict := must(model.NewConceptDictionary("Dict"))(t)
	dict.ConceptDescriptions = []model.AASReference{cdRef}
	check(t, aas.ConceptDictionaries().Add(dict))

	cd := model.NewConceptDescription(iri("urn:x:cd"))
	cd.IsCaseOf = []model.Reference{semantic}

	return must(store.NewDictStore(aas, sm, asset, cd))(t)
}

const scenario = `{"submodels":[{"modelType":{"name":"Submodel"},"identification":{"id":"urn:x:sm1","idType":"IRI"},"submodelElements":[{"modelType":{"name":"Property"},"idShort":"p1","valueType":"string","value":"hello"}]}],"assets":[],"assetAdministrationShells":[],"conceptDescriptions":[]}`

func TestDecodeScenario(t *testing.T) {
	res, err := decode(t, true, scenario)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Store.Len() != 1 {
		t.Fatalf("store size = %d, want 1", res.Store.Len())
	}
	sm, err := model.ResolveAs[*model.Submodel](aasRef(t, model.KindSubmodel,
		model.Key{Type: model.KeySubmodel, Value: "urn:x:sm1", IDType: model.KeyIRI}), res.Store)
	if err != nil {
		t.Fatalf("resolve submodel: %v", err)
	}
	children := sm.SubmodelElements().Items()
	if len(children) != 1 {
		t.Fatalf("children = %d, want 1", len(children))
	}
	p, ok := children[0].(*model.Property)
	if !ok {
		t.Fatalf("child is %T, want *model.Property", children[0])
	}
	if p.IDShort() != "p1" || p.Value().String() != "hello" {
		t.Errorf("property = %s %v, want p1 hello", p.IDShort(), p.Value())
	}

	// The re-encoded document carries every field of the input.
	var buf bytes.Buffer
	if err := WriteJSON(res.Store, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var want, got any
	check(t, json.Unmarshal([]byte(scenario), &want))
	check(t, json.Unmarshal(buf.Bytes(), &got))
	if path, ok := covers(want, got, "$"); !ok {
		t.Errorf("re-encoded document differs at %s:\n%s", path, buf.String())
	}
}

// covers reports whether got contains everything in want.
func covers(want, got any, path string) (string, bool) {
	switch w := want.(type) {
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok {
			return path, false
		}
		for k, v := range w {
			if p, ok := covers(v, g[k], path+"."+k); !ok {
				return p, false
			}
		}
		return "", true
	case []any:
		g, ok := got.([]any)
		if !ok || len(g) != len(w) {
			return path, false
		}
		for i := range w {
			if p, ok := covers(w[i], g[i], fmt.Sprintf("%s[%d]", path, i)); !ok {
				return p, false
			}
		}
		return "", true
	}
	return path, reflect.DeepEqual(want, got)
}

func TestRoundTrip(t *testing.T) {
	s := sampleStore(t)
	enc := NewEncoder(EncodeOptions{})
	want := enc.EncodeTree(s)

	for _, f := range Formats {
		for _, strict := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/strict=%v", f, strict), func(t *testing.T) {
				var buf bytes.Buffer
				if err := enc.Encode(context.Background(), &buf, s, f); err != nil {
					t.Fatalf("Encode: %v", err)
				}
				d := NewDecoder(DecodeOptions{Strict: strict, Logger: quiet})
				res, err := d.Decode(context.Background(), &buf, f)
				if err != nil {
					t.Fatalf("Decode: %v", err)
				}
				if len(res.Issues) != 0 {
					t.Errorf("issues = %v, want none", res.Issues)
				}
				if res.Store.Len() != s.Len() {
					t.Errorf("store size = %d, want %d", res.Store.Len(), s.Len())
				}
				if got := enc.EncodeTree(res.Store); !reflect.DeepEqual(got, want) {
					t.Errorf("round trip changed the document")
				}
			})
		}
	}
}

func TestRoundTripResolves(t *testing.T) {
	var buf bytes.Buffer
	check(t, WriteJSON(sampleStore(t), &buf))
	s, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	ref := aasRef(t, model.KindProperty,
		model.Key{Type: model.KeySubmodel, Local: true, Value: "urn:x:sm", IDType: model.KeyIRI},
		model.Key{Type: model.KeyProperty, Local: true, Value: "Temperature", IDType: model.KeyIDShort})
	p, err := model.ResolveAs[*model.Property](ref, s)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := p.Value(); !xsd.Equal(got, xsd.DoubleValue(21.5)) {
		t.Errorf("value = %v, want 21.5", got)
	}
	if len(p.Qualifiers()) != 2 {
		t.Errorf("qualifiers = %d, want 2", len(p.Qualifiers()))
	}
	if p.Description()["de"] != "Temperatur" {
		t.Errorf("description = %v", p.Description())
	}
}

// nineElements returns a document whose submodel holds nine properties,
// the fifth of which has a value that does not parse as int.
func nineElements() string {
	elems := make([]string, 9)
	for i := range elems {
		value := fmt.Sprint(i)
		if i == 4 {
			value = "abc"
		}
		elems[i] = fmt.Sprintf(`{"modelType":{"name":"Property"},"idShort":"p%d","valueType":"int","value":%q}`, i, value)
	}
	return `{"submodels":[{"modelType":{"name":"Submodel"},"identification":{"id":"urn:x:sm","idType":"IRI"},"submodelElements":[` +
		strings.Join(elems, ",") + `]}]}`
}

func TestFailsafeContainment(t *testing.T) {
	res, err := decode(t, false, nineElements())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Store.Len() != 1 {
		t.Fatalf("store size = %d, want 1", res.Store.Len())
	}
	sm := res.Store.Items()[0].(*model.Submodel)
	if n := sm.SubmodelElements().Len(); n != 8 {
		t.Errorf("elements = %d, want 8", n)
	}
	if sm.SubmodelElements().Contains("p4") {
		t.Error("malformed p4 was kept")
	}
	if len(res.Issues) != 1 {
		t.Fatalf("issues = %v, want exactly one for the dropped element", res.Issues)
	}
	issue := res.Issues[0]
	if issue.Path != "$.submodels[0].submodelElements[4]" {
		t.Errorf("issue path = %q", issue.Path)
	}
	if !errors.Is(issue.Err, errors.ErrCodeMalformedValue) {
		t.Errorf("issue err = %v, want MALFORMED_VALUE", issue.Err)
	}
}

func TestStrictFailure(t *testing.T) {
	res, err := decode(t, true, nineElements())
	if err == nil {
		t.Fatal("Decode succeeded, want error")
	}
	if res != nil {
		t.Error("strict failure returned a result")
	}
	if !errors.Is(err, errors.ErrCodeDecodeFailure) || !errors.Is(err, errors.ErrCodeMalformedValue) {
		t.Errorf("err = %v, want DECODE_FAILURE wrapping MALFORMED_VALUE", err)
	}
	if !strings.Contains(err.Error(), "$.submodels[0].submodelElements[4]") {
		t.Errorf("err %q does not name the location", err)
	}
}

func TestUnknownDiscriminator(t *testing.T) {
	doc := `{"submodels":[{"modelType":{"name":"Submodel"},"identification":{"id":"urn:x:sm","idType":"IRI"},
		"submodelElements":[{"modelType":{"name":"Gizmo"},"idShort":"g"},{"modelType":{"name":"DataElement"},"idShort":"d"}]}]}`

	res, err := decode(t, false, doc)
	if err != nil {
		t.Fatalf("failsafe Decode: %v", err)
	}
	sm := res.Store.Items()[0].(*model.Submodel)
	if sm.SubmodelElements().Len() != 0 {
		t.Errorf("elements = %d, want 0", sm.SubmodelElements().Len())
	}
	var unknown int
	for _, issue := range res.Issues {
		if errors.Is(issue.Err, errors.ErrCodeUnknownDiscriminator) {
			unknown++
		}
	}
	if unknown != 2 || len(res.Issues) != 2 {
		t.Errorf("issues = %v, want only the 2 unknown discriminators", res.Issues)
	}

	_, err = decode(t, true, doc)
	if !errors.Is(err, errors.ErrCodeUnknownDiscriminator) || !errors.Is(err, errors.ErrCodeDecodeFailure) {
		t.Errorf("strict err = %v, want DECODE_FAILURE wrapping UNKNOWN_DISCRIMINATOR", err)
	}
}

func TestWrongCollection(t *testing.T) {
	doc := `{"submodels":[{"modelType":{"name":"Asset"},"identification":{"id":"urn:x:a","idType":"IRI"},"kind":"Instance"}]}`

	res, err := decode(t, false, doc)
	if err != nil {
		t.Fatalf("failsafe Decode: %v", err)
	}
	if res.Store.Len() != 1 || res.Store.Items()[0].Kind() != model.KindAsset {
		t.Errorf("asset not kept")
	}
	if len(res.Issues) != 1 || res.Issues[0].Path != "$.submodels[0]" {
		t.Errorf("issues = %v, want one at $.submodels[0]", res.Issues)
	}

	if _, err := decode(t, true, doc); !errors.Is(err, errors.ErrCodeDecodeFailure) {
		t.Errorf("strict err = %v, want DECODE_FAILURE", err)
	}
}

func TestDuplicateIdentifiers(t *testing.T) {
	sm := `{"modelType":{"name":"Submodel"},"identification":{"id":"urn:x:sm","idType":"IRI"}}`
	doc := `{"submodels":[` + sm + `,` + sm + `]}`

	res, err := decode(t, false, doc)
	if err != nil {
		t.Fatalf("failsafe Decode: %v", err)
	}
	if res.Store.Len() != 1 {
		t.Errorf("store size = %d, want 1", res.Store.Len())
	}
	if len(res.Issues) != 1 || !errors.Is(res.Issues[0].Err, errors.ErrCodeDuplicate) {
		t.Errorf("issues = %v, want one DUPLICATE", res.Issues)
	}

	if _, err := decode(t, true, doc); !errors.Is(err, errors.ErrCodeDuplicate) {
		t.Errorf("strict err = %v, want DUPLICATE", err)
	}
}

func TestDuplicateChildDropsParent(t *testing.T) {
	doc := `{"submodels":[{"modelType":{"name":"Submodel"},"identification":{"id":"urn:x:sm","idType":"IRI"},
		"submodelElements":[
			{"modelType":{"name":"Capability"},"idShort":"c"},
			{"modelType":{"name":"Capability"},"idShort":"c"}]}]}`

	res, err := decode(t, false, doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Store.Len() != 0 {
		t.Errorf("store size = %d, want 0", res.Store.Len())
	}
	if len(res.Issues) == 0 || !errors.Is(res.Issues[0].Err, errors.ErrCodeNamingConflict) {
		t.Errorf("issues = %v, want NAMING_CONFLICT first", res.Issues)
	}
}

func TestDecodeLiteralValues(t *testing.T) {
	doc := `{"submodels":[{"modelType":{"name":"Submodel"},"identification":{"id":"urn:x:sm","idType":"IRI"},
		"submodelElements":[
			{"modelType":{"name":"Property"},"idShort":"count","valueType":"int","value":42},
			{"modelType":{"name":"Property"},"idShort":"flag","valueType":"boolean","value":true},
			{"modelType":{"name":"Property"},"idShort":"ratio","valueType":{"dataObjectType":{"name":"double"}},"value":0.5},
			{"modelType":{"name":"Property"},"idShort":"bad","valueType":"int","value":1.5}]}]}`

	res, err := decode(t, false, doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	elems := res.Store.Items()[0].(*model.Submodel).SubmodelElements()
	tests := []struct {
		idShort string
		want    xsd.Value
	}{
		{"count", xsd.IntValue(42)},
		{"flag", xsd.BooleanValue(true)},
		{"ratio", xsd.DoubleValue(0.5)},
	}
	for _, tt := range tests {
		e, ok := elems.Get(tt.idShort)
		if !ok {
			t.Errorf("%s missing", tt.idShort)
			continue
		}
		if got := e.(*model.Property).Value(); !xsd.Equal(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.idShort, got, tt.want)
		}
	}
	if elems.Contains("bad") {
		t.Error("float literal was assigned to an int property")
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	for _, strict := range []bool{false, true} {
		if _, err := decode(t, strict, `{"submodels": [`); !errors.Is(err, errors.ErrCodeDecodeFailure) {
			t.Errorf("strict=%v: err = %v, want DECODE_FAILURE", strict, err)
		}
	}
	if _, err := decode(t, false, `[]`); !errors.Is(err, errors.ErrCodeDecodeFailure) {
		t.Errorf("array document: err = %v, want DECODE_FAILURE", err)
	}
}

func TestStrippedEncoding(t *testing.T) {
	s := sampleStore(t)
	doc := NewEncoder(EncodeOptions{Stripped: true}).EncodeTree(s)

	aas := doc["assetAdministrationShells"].([]any)[0].(map[string]any)
	if _, ok := aas["submodels"]; ok {
		t.Error("stripped shell has submodels")
	}
	if _, ok := aas["views"]; !ok {
		t.Error("stripped shell lost its views")
	}
	sm := doc["submodels"].([]any)[0].(map[string]any)
	if _, ok := sm["submodelElements"]; ok {
		t.Error("stripped submodel has submodelElements")
	}
	if sm["idShort"] != "Data" {
		t.Errorf("idShort = %v, want Data", sm["idShort"])
	}

	obj, err := s.GetIdentifiable(iri("urn:x:sm"))
	check(t, err)
	full := NewEncoder(EncodeOptions{}).EncodeIdentifiable(obj)
	elems := full["submodelElements"].([]any)
	if _, ok := elems[0].(map[string]any)["qualifiers"]; !ok {
		t.Error("full encoding lost qualifiers")
	}
}

func TestEncodeReferable(t *testing.T) {
	obj, err := sampleStore(t).GetIdentifiable(iri("urn:x:sm"))
	check(t, err)
	temp, ok := obj.(*model.Submodel).SubmodelElements().Get("Temperature")
	if !ok {
		t.Fatal("Temperature missing")
	}
	m := NewEncoder(EncodeOptions{}).EncodeReferable(temp)
	if m["idShort"] != "Temperature" || m["value"] != "21.5" {
		t.Errorf("EncodeReferable = %v", m)
	}
}

func TestDecodeIdentifiable(t *testing.T) {
	s := sampleStore(t)
	obj, err := s.GetIdentifiable(iri("urn:x:sm"))
	check(t, err)
	enc := NewEncoder(EncodeOptions{})
	node := enc.EncodeIdentifiable(obj)

	var buf bytes.Buffer
	check(t, json.NewEncoder(&buf).Encode(node))
	tree, err := parseTree(&buf, FormatJSON)
	check(t, err)

	got, issues, err := NewDecoder(DecodeOptions{Strict: true}).DecodeIdentifiable(context.Background(), tree)
	if err != nil {
		t.Fatalf("DecodeIdentifiable: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("issues = %v", issues)
	}
	if !reflect.DeepEqual(enc.EncodeIdentifiable(got), node) {
		t.Error("single object round trip changed the node")
	}
}

func TestImportExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.json")
	if err := ExportJSON(sampleStore(t), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	s, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if s.Len() != 4 {
		t.Errorf("store size = %d, want 4", s.Len())
	}
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON of a missing file succeeded")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"CBOR", FormatCBOR},
		{"yml", FormatYAML},
	}
	for _, tt := range tests {
		if got, err := ParseFormat(tt.in); err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseFormat(xml) err = %v", err)
	}
	if got := FormatFromPath("a/b.yaml"); got != FormatYAML {
		t.Errorf("FormatFromPath = %q", got)
	}
	if got := FormatFromPath("a/b"); got != FormatJSON {
		t.Errorf("FormatFromPath = %q", got)
	}
}
