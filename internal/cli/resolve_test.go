package cli

import (
	"testing"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
)

func TestParseKey(t *testing.T) {
	k, err := parseKey("Submodel:IRI:urn:example:sm:1")
	if err != nil {
		t.Fatalf("parseKey: %v", err)
	}
	want := model.Key{Type: model.KeySubmodel, Local: true, Value: "urn:example:sm:1", IDType: model.KeyIRI}
	if k != want {
		t.Errorf("key = %+v, want %+v", k, want)
	}

	for _, bad := range []string{"Submodel", "Submodel:IRI:", "Gadget:IRI:x", "Submodel:URL:x"} {
		if _, err := parseKey(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("parseKey(%q) err = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestParseReference(t *testing.T) {
	keys := []string{"Submodel:IRI:urn:x:sm", "Property:IdShort:Temp"}

	ref, err := parseReference(keys, "")
	if err != nil {
		t.Fatalf("parseReference: %v", err)
	}
	if ref.Target() != model.KindProperty || ref.Len() != 2 {
		t.Errorf("reference = %s -> %s", ref, ref.Target())
	}

	ref, err = parseReference(keys, "DataElement")
	if err != nil {
		t.Fatal(err)
	}
	if ref.Target() != model.KindDataElement {
		t.Errorf("target = %s, want DataElement", ref.Target())
	}

	if _, err := parseReference(nil, ""); !errors.Is(err, errors.ErrCodeEmptyReference) {
		t.Errorf("no keys err = %v, want EMPTY_REFERENCE", err)
	}
	if _, err := parseReference(keys, "Widget"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad target err = %v, want INVALID_INPUT", err)
	}
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want model.Identifier
	}{
		{"urn:example:sm:1", model.Identifier{ID: "urn:example:sm:1", IDType: model.IRI}},
		{"IRI:urn:example:sm:1", model.Identifier{ID: "urn:example:sm:1", IDType: model.IRI}},
		{"IRDI:0173-1#02-AAO677#002", model.Identifier{ID: "0173-1#02-AAO677#002", IDType: model.IRDI}},
		{"Custom:pump-7", model.Identifier{ID: "pump-7", IDType: model.Custom}},
		{"https://example.com/aas/1", model.Identifier{ID: "https://example.com/aas/1", IDType: model.IRI}},
	}
	for _, tt := range tests {
		if got := parseIdentifier(tt.in); got != tt.want {
			t.Errorf("parseIdentifier(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestTargetFormat(t *testing.T) {
	tests := []struct {
		to, output, want string
	}{
		{"", "", "json"},
		{"", "-", "json"},
		{"", "out.yml", "yaml"},
		{"cbor", "out.yaml", "cbor"},
	}
	for _, tt := range tests {
		got, err := targetFormat(tt.to, tt.output)
		if err != nil {
			t.Fatalf("targetFormat(%q, %q): %v", tt.to, tt.output, err)
		}
		if string(got) != tt.want {
			t.Errorf("targetFormat(%q, %q) = %s, want %s", tt.to, tt.output, got, tt.want)
		}
	}
	if _, err := targetFormat("xml", ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("xml err = %v, want INVALID_INPUT", err)
	}
}
