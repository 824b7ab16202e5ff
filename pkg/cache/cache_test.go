package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/xsd"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "validate:abc"); hit {
		t.Error("empty cache reported a hit")
	}
	if err := c.Set(ctx, "validate:abc", []byte("report"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "validate:abc")
	if err != nil || !hit || string(data) != "report" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "expired", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "expired"); hit {
		t.Error("expired entry reported as hit")
	}

	if err := c.Delete(ctx, "validate:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "validate:abc"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	doc := Hash([]byte("{}"))

	if k.ValidationKey(doc, ValidationKeyOpts{Strict: true}) == k.ValidationKey(doc, ValidationKeyOpts{}) {
		t.Error("strictness should change the validation key")
	}
	c1 := k.ConversionKey(doc, ConversionKeyOpts{From: "json", To: "cbor"})
	c2 := k.ConversionKey(doc, ConversionKeyOpts{From: "json", To: "cbor", Stripped: true})
	if c1 == c2 {
		t.Error("stripped mode should change the conversion key")
	}
	if k.RenderKey(doc, RenderKeyOpts{Format: "svg"}) == k.RenderKey(doc, RenderKeyOpts{Format: "dot"}) {
		t.Error("format should change the render key")
	}
	if got := keyType(k.ValidationKey(doc, ValidationKeyOpts{})); got != "validate" {
		t.Errorf("keyType = %q", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "v1:")
	key := scoped.ValidationKey("h", ValidationKeyOpts{})
	if len(key) < 12 || key[:12] != "v1:validate:" {
		t.Errorf("ScopedKeyer key should be prefixed: %s", key)
	}
	if keyType(key) != "v1:validate" {
		t.Errorf("keyType = %q", keyType(key))
	}
}

func newSubmodel(t *testing.T, value string) *model.Submodel {
	t.Helper()
	sm := model.NewSubmodel(model.Identifier{ID: "urn:sm", IDType: model.IRI})
	p, err := model.NewProperty("p", xsd.String)
	if err != nil {
		t.Fatal(err)
	}
	_ = p.ParseValue(value)
	if err := sm.SubmodelElements().Add(p); err != nil {
		t.Fatal(err)
	}
	return sm
}

func TestIdentityReconciles(t *testing.T) {
	c := NewIdentity(0)
	first := newSubmodel(t, "old")
	got, err := c.Put(first)
	if err != nil || got != model.Identifiable(first) {
		t.Fatalf("Put(first) = %v, %v", got, err)
	}
	held, _ := first.SubmodelElements().Get("p")

	got, err = c.Put(newSubmodel(t, "new"))
	if err != nil {
		t.Fatalf("Put(second): %v", err)
	}
	if got != model.Identifiable(first) {
		t.Error("Put replaced the cached instance")
	}
	if v := held.(*model.Property).Value().String(); v != "new" {
		t.Errorf("holder sees %q, want new", v)
	}
}

func TestIdentityEviction(t *testing.T) {
	c := NewIdentity(2)
	ids := []string{"urn:a", "urn:b", "urn:c"}
	for _, id := range ids[:2] {
		_, _ = c.Put(model.NewSubmodel(model.Identifier{ID: id, IDType: model.IRI}))
	}
	// touch a so that b is the least recently used
	if _, ok := c.Get(model.Identifier{ID: "urn:a", IDType: model.IRI}); !ok {
		t.Fatal("urn:a missing")
	}
	_, _ = c.Put(model.NewSubmodel(model.Identifier{ID: "urn:c", IDType: model.IRI}))

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get(model.Identifier{ID: "urn:b", IDType: model.IRI}); ok {
		t.Error("least recently used entry not evicted")
	}
	c.Remove(model.Identifier{ID: "urn:a", IDType: model.IRI})
	if c.Len() != 1 {
		t.Errorf("Len() after Remove = %d", c.Len())
	}
}
