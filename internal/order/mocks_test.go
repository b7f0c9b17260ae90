package order

import (
	"context"
	"errors"
	"sync"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/database"
	"restoran-pos/internal/models"
)

// failingStore runs fn like a real store but always fails to save.
type failingStore struct {
	*database.MemoryStore
}

func (s failingStore) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	doc := s.Snapshot()
	if err := fn(doc); err != nil {
		return err
	}
	return apperr.Persistence(errors.New("disk full"))
}

type published struct {
	subject string
	payload []byte
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{subject: subject, payload: payload})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
