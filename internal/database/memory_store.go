package database

import (
	"context"
	"sync"

	"restoran-pos/internal/models"
)

// MemoryStore keeps the document in memory only. It backs the server when
// the data file is unusable and doubles as the store in tests.
type MemoryStore struct {
	mu  sync.Mutex
	doc *models.Document
}

// NewMemoryStore starts from a copy of doc, or from the default document
// when doc is nil.
func NewMemoryStore(doc *models.Document) (*MemoryStore, error) {
	if doc == nil {
		doc = DefaultDocument()
	} else {
		doc = doc.Clone()
	}
	if _, err := Normalize(doc); err != nil {
		return nil, err
	}
	return &MemoryStore{doc: doc}, nil
}

func (s *MemoryStore) View(ctx context.Context, fn func(doc *models.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	doc := s.doc.Clone()
	s.mu.Unlock()

	return fn(doc)
}

// Update applies fn to a copy and swaps it in only on success.
func (s *MemoryStore) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.Clone()
	if err := fn(doc); err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// Snapshot returns a copy of the current document.
func (s *MemoryStore) Snapshot() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *MemoryStore) Close() error { return nil }
