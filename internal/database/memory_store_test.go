package database

import (
	"context"
	"errors"
	"testing"

	"restoran-pos/internal/models"
)

func TestMemoryStoreUpdateCommitsOnSuccess(t *testing.T) {
	s, err := NewMemoryStore(nil)
	if err != nil {
		t.Fatalf("NewMemoryStore() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Update(ctx, func(doc *models.Document) error {
		doc.LastOrderID = 3
		return nil
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := s.Snapshot().LastOrderID; got != 3 {
		t.Errorf("LastOrderID = %d, want 3", got)
	}
}

func TestMemoryStoreUpdateRollsBackOnError(t *testing.T) {
	s, err := NewMemoryStore(nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	boom := errors.New("boom")
	err = s.Update(ctx, func(doc *models.Document) error {
		doc.MenuItems = append(doc.MenuItems, models.MenuItem{ID: "x"})
		doc.LastOrderID = 42
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update() error = %v, want boom", err)
	}

	snap := s.Snapshot()
	if len(snap.MenuItems) != 0 || snap.LastOrderID != 0 {
		t.Errorf("failed update leaked into the store: %+v", snap)
	}
}

func TestMemoryStoreViewCannotMutate(t *testing.T) {
	s, err := NewMemoryStore(nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	_ = s.View(ctx, func(doc *models.Document) error {
		doc.Users = nil
		return nil
	})
	if len(s.Snapshot().Users) != 1 {
		t.Error("View() must not change stored state")
	}
}

func TestMemoryStoreCopiesSeedDocument(t *testing.T) {
	seed := DefaultDocument()
	s, err := NewMemoryStore(seed)
	if err != nil {
		t.Fatal(err)
	}
	seed.AppSettings.RestaurantName = "changed after"

	if got := s.Snapshot().AppSettings.RestaurantName; got != models.DefaultRestaurantName {
		t.Errorf("RestaurantName = %q, store should own its copy", got)
	}
}
