package nodelink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/store"
	"github.com/matzehuels/aasgraph/pkg/xsd"
)

func testStore(t *testing.T) store.ObjectStore {
	t.Helper()
	smID := model.Identifier{ID: "urn:x:sm", IDType: model.IRI}
	sm := model.NewSubmodel(smID)
	if err := sm.SetIDShort("Data"); err != nil {
		t.Fatal(err)
	}
	p, err := model.NewProperty("Temp", xsd.Double)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.ParseValue("21.5"); err != nil {
		t.Fatal(err)
	}
	if err := sm.SubmodelElements().Add(p); err != nil {
		t.Fatal(err)
	}
	toTemp, err := model.ReferenceTo(p)
	if err != nil {
		t.Fatal(err)
	}
	missing, err := model.NewAASReference(model.KindProperty,
		model.Key{Type: model.KeySubmodel, Local: true, Value: "urn:x:sm", IDType: model.KeyIRI},
		model.Key{Type: model.KeyProperty, Local: true, Value: "Gone", IDType: model.KeyIDShort})
	if err != nil {
		t.Fatal(err)
	}
	ev, err := model.NewBasicEvent("Alarm", toTemp)
	if err != nil {
		t.Fatal(err)
	}
	rel, err := model.NewRelationshipElement("Dangling", toTemp, missing)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []model.SubmodelElement{ev, rel} {
		if err := sm.SubmodelElements().Add(e); err != nil {
			t.Fatal(err)
		}
	}
	s, err := store.NewDictStore(sm)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testStore(t), Options{})
	for _, want := range []string{
		`"IRI:urn:x:sm" [label="Data"`,
		`"IRI:urn:x:sm" -> "IRI:urn:x:sm/Temp";`,
		`"IRI:urn:x:sm" -> "IRI:urn:x:sm/Alarm";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "style=dashed") {
		t.Error("reference edges drawn without References")
	}
}

func TestToDOTReferences(t *testing.T) {
	dot := ToDOT(testStore(t), Options{References: true})
	if !strings.Contains(dot, `"IRI:urn:x:sm/Alarm" -> "IRI:urn:x:sm/Temp" [style=dashed`) {
		t.Errorf("resolved reference edge missing:\n%s", dot)
	}
	if strings.Count(dot, `[label="(Submodel)[IRI]urn:x:sm, (Property)[IdShort]Gone"`) != 1 {
		t.Errorf("want exactly one placeholder for the dangling reference:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testStore(t), Options{Detailed: true})
	if !strings.Contains(dot, `Temp\nProperty\ndouble = 21.5`) {
		t.Errorf("detailed label missing value:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(testStore(t), Options{References: true}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
}
