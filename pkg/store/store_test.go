package store

import (
	"bytes"
	"context"
	"testing"

	ferrors "github.com/flowkit/flowkit/pkg/errors"
)

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	def := []byte(`{"properties":{"name":"main"}}`)
	meta, err := s.Put(ctx, "main", def)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if meta.Name != "main" || meta.Revision == "" {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Definition != nil {
		t.Error("Put meta should not carry the definition payload")
	}

	doc, err := s.Get(ctx, "main")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(doc.Definition, def) {
		t.Errorf("definition = %s", doc.Definition)
	}
	if doc.Revision != meta.Revision {
		t.Errorf("revision = %q, want %q", doc.Revision, meta.Revision)
	}
}

func TestMemoryStoreRevisionChangesOnPut(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, _ := s.Put(ctx, "main", []byte("{}"))
	second, _ := s.Put(ctx, "main", []byte("{}"))
	if first.Revision == second.Revision {
		t.Error("Put should mint a fresh revision")
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "ghost"); !ferrors.Is(err, ferrors.ErrCodeGraphNotFound) {
		t.Errorf("Get missing = %v, want GRAPH_NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "ghost"); !ferrors.Is(err, ferrors.ErrCodeGraphNotFound) {
		t.Errorf("Delete missing = %v, want GRAPH_NOT_FOUND", err)
	}
}

func TestMemoryStoreListSortedMeta(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Put(ctx, "zeta", []byte("{}"))
	s.Put(ctx, "alpha", []byte("{}"))

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("docs = %d, want 2", len(docs))
	}
	if docs[0].Name != "alpha" || docs[1].Name != "zeta" {
		t.Errorf("order = %s, %s", docs[0].Name, docs[1].Name)
	}
	for _, d := range docs {
		if d.Definition != nil {
			t.Errorf("List should return meta only, got payload for %s", d.Name)
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Put(ctx, "main", []byte("{}"))
	if err := s.Delete(ctx, "main"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "main"); !ferrors.Is(err, ferrors.ErrCodeGraphNotFound) {
		t.Errorf("Get after Delete = %v", err)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	def := []byte(`{"a":1}`)
	s.Put(ctx, "main", def)
	def[1] = 'x' // caller mutates its slice after Put

	doc, _ := s.Get(ctx, "main")
	if !bytes.Equal(doc.Definition, []byte(`{"a":1}`)) {
		t.Error("store shares backing array with caller")
	}

	doc.Definition[1] = 'y' // mutate the returned copy
	doc2, _ := s.Get(ctx, "main")
	if !bytes.Equal(doc2.Definition, []byte(`{"a":1}`)) {
		t.Error("Get returns a shared slice")
	}
}
