package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	ferrors "github.com/flowkit/flowkit/pkg/errors"
)

// MemoryStore is a process-local Store for development and tests.
// It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

// Put stores definition under name with a fresh revision.
func (s *MemoryStore) Put(ctx context.Context, name string, definition []byte) (Document, error) {
	doc := Document{
		Name:       name,
		Revision:   uuid.NewString(),
		UpdatedAt:  time.Now().UTC(),
		Definition: slices.Clone(definition),
	}

	s.mu.Lock()
	s.docs[name] = doc
	s.mu.Unlock()

	return doc.Meta(), nil
}

// Get returns the stored document for name.
func (s *MemoryStore) Get(ctx context.Context, name string) (Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[name]
	s.mu.RUnlock()

	if !ok {
		return Document{}, ferrors.New(ferrors.ErrCodeGraphNotFound, "graph %s", name)
	}
	doc.Definition = slices.Clone(doc.Definition)
	return doc, nil
}

// List returns metadata for every stored document, ordered by name.
func (s *MemoryStore) List(ctx context.Context) ([]Document, error) {
	s.mu.RLock()
	out := make([]Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc.Meta())
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Document) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Delete removes the document for name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[name]; !ok {
		return ferrors.New(ferrors.ErrCodeGraphNotFound, "graph %s", name)
	}
	delete(s.docs, name)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
