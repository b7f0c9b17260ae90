package database

import (
	"context"

	"restoran-pos/internal/models"
)

// Store owns the persisted Document. Every domain operation runs inside
// View or Update; nothing holds a Document outside of them.
type Store interface {
	// View loads the current document and passes it to fn. Changes made by
	// fn are discarded.
	View(ctx context.Context, fn func(doc *models.Document) error) error

	// Update loads the current document, applies fn and persists the result
	// when fn returns nil. Updates are serialized. An error from fn is
	// returned unchanged and nothing is written; a storage failure is
	// returned as an apperr persistence error.
	Update(ctx context.Context, fn func(doc *models.Document) error) error

	Close() error
}
