package filestore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/store"
	"github.com/matzehuels/aasgraph/pkg/xsd"
)

var _ store.ObjectStore = (*Store)(nil)

var smID = model.Identifier{ID: "urn:x:sm", IDType: model.IRI}

func open(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(dir, Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

// newSubmodel returns a submodel holding one string property "Status".
func newSubmodel(t *testing.T, status string) *model.Submodel {
	t.Helper()
	sm := model.NewSubmodel(smID)
	p, err := model.NewProperty("Status", xsd.String)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.ParseValue(status); err != nil {
		t.Fatal(err)
	}
	if err := sm.SubmodelElements().Add(p); err != nil {
		t.Fatal(err)
	}
	return sm
}

func status(t *testing.T, s *Store) *model.Property {
	t.Helper()
	obj, err := s.GetIdentifiable(smID)
	if err != nil {
		t.Fatalf("GetIdentifiable: %v", err)
	}
	e, ok := obj.(*model.Submodel).SubmodelElements().Get("Status")
	if !ok {
		t.Fatal("Status missing")
	}
	return e.(*model.Property)
}

func TestStoreAddGet(t *testing.T) {
	dir := t.TempDir()
	s := open(t, dir)
	sm := newSubmodel(t, "idle")

	if err := s.Add(sm); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !strings.HasPrefix(sm.Source(), "file://") {
		t.Errorf("source = %q, want file URI", sm.Source())
	}
	if err := s.Add(newSubmodel(t, "idle")); !errors.Is(err, errors.ErrCodeDuplicate) {
		t.Errorf("second Add err = %v, want DUPLICATE", err)
	}

	got, err := s.GetIdentifiable(smID)
	if err != nil {
		t.Fatalf("GetIdentifiable: %v", err)
	}
	if got != sm {
		t.Error("GetIdentifiable returned a different instance than was added")
	}
	if s.Len() != 1 || len(s.Items()) != 1 {
		t.Errorf("Len = %d, Items = %d, want 1", s.Len(), len(s.Items()))
	}
	if _, err := s.GetIdentifiable(model.Identifier{ID: "urn:x:none", IDType: model.IRI}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing id err = %v, want NOT_FOUND", err)
	}
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()
	if err := open(t, dir).Add(newSubmodel(t, "idle")); err != nil {
		t.Fatal(err)
	}

	s := open(t, dir)
	p := status(t, s)
	if p.Value().String() != "idle" {
		t.Errorf("Status = %v, want idle", p.Value())
	}
	if status(t, s) != p {
		t.Error("second lookup loaded a new instance")
	}
}

func TestStoreDiscard(t *testing.T) {
	s := open(t, t.TempDir())
	sm := newSubmodel(t, "idle")
	if err := s.Add(sm); err != nil {
		t.Fatal(err)
	}
	if err := s.Discard(sm); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after Discard", s.Len())
	}
	if sm.Source() != "" {
		t.Errorf("source = %q after Discard", sm.Source())
	}
	if err := s.Discard(sm); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second Discard err = %v, want NOT_FOUND", err)
	}
}

func TestItemsSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	s := open(t, dir)
	if err := s.Add(newSubmodel(t, "idle")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if n := len(s.Items()); n != 1 {
		t.Errorf("Items = %d, want 1", n)
	}
}

func TestCommitAndUpdate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if err := open(t, dir).Add(newSubmodel(t, "idle")); err != nil {
		t.Fatal(err)
	}
	a, b := open(t, dir), open(t, dir)
	pa, pb := status(t, a), status(t, b)

	if err := pb.ParseValue("running"); err != nil {
		t.Fatal(err)
	}
	if err := model.Commit(ctx, pb); err != nil {
		t.Fatalf("Commit b: %v", err)
	}

	if err := pa.ParseValue("stopped"); err != nil {
		t.Fatal(err)
	}
	if err := model.Commit(ctx, pa); !errors.Is(err, errors.ErrCodeConflict) {
		t.Fatalf("stale Commit err = %v, want CONFLICT", err)
	}

	if err := model.Update(ctx, pa); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if pa.Value().String() != "running" {
		t.Errorf("after Update Status = %v, want running", pa.Value())
	}
	if err := pa.ParseValue("stopped"); err != nil {
		t.Fatal(err)
	}
	if err := model.Commit(ctx, pa); err != nil {
		t.Fatalf("Commit after Update: %v", err)
	}

	if got := status(t, open(t, dir)).Value().String(); got != "stopped" {
		t.Errorf("persisted Status = %q, want stopped", got)
	}
}

func TestUpdateRemovedChild(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := open(t, dir)
	sm := newSubmodel(t, "idle")
	if err := s.Add(sm); err != nil {
		t.Fatal(err)
	}
	p, _ := sm.SubmodelElements().Get("Status")

	other := status(t, open(t, dir)).Parent().(*model.Submodel)
	if _, err := other.SubmodelElements().Remove("Status"); err != nil {
		t.Fatal(err)
	}
	if err := model.Commit(ctx, other); err != nil {
		t.Fatal(err)
	}

	if err := model.Update(ctx, p); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Update of removed child err = %v, want NOT_FOUND", err)
	}
}

func TestSourceURI(t *testing.T) {
	uri := SourceURI("/data/objects/abc.json", "deadbeef")
	path, token, err := ParseSource(uri)
	if err != nil {
		t.Fatalf("ParseSource(%q): %v", uri, err)
	}
	if path != filepath.FromSlash("/data/objects/abc.json") || token != "deadbeef" {
		t.Errorf("ParseSource = %q, %q", path, token)
	}
	if _, _, err := ParseSource("http://example.com/x"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("http source err = %v, want INVALID_INPUT", err)
	}
}
