package menu

import (
	"context"
	"strings"
	"time"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/audit"
	"restoran-pos/internal/database"
	"restoran-pos/internal/models"

	"github.com/google/uuid"
)

const (
	entityType    = "menu_item"
	minNameLength = 2

	msgNotFound = "menu item not found"
)

type ItemInput struct {
	Name     string
	Category string
	Price    float64
	ImageURL string
}

// ItemPatch is a shallow merge: nil fields keep the stored value.
type ItemPatch struct {
	Name        *string
	Category    *string
	Price       *float64
	IsAvailable *bool
	ImageURL    *string
}

type Service struct {
	store database.Store
	now   func() time.Time
}

func NewService(store database.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// List returns items in insertion order, optionally only the available ones.
func (s *Service) List(ctx context.Context, onlyAvailable bool) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.store.View(ctx, func(doc *models.Document) error {
		items = make([]models.MenuItem, 0, len(doc.MenuItems))
		for _, it := range doc.MenuItems {
			if onlyAvailable && !it.IsAvailable {
				continue
			}
			items = append(items, it)
		}
		return nil
	})
	return items, err
}

func (s *Service) Get(ctx context.Context, id string) (models.MenuItem, error) {
	var item models.MenuItem
	err := s.store.View(ctx, func(doc *models.Document) error {
		i := doc.MenuItemIndex(id)
		if i < 0 {
			return apperr.NotFound(msgNotFound)
		}
		item = doc.MenuItems[i]
		return nil
	})
	return item, err
}

func (s *Service) Add(ctx context.Context, in ItemInput) (models.MenuItem, error) {
	item := models.MenuItem{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		IsAvailable: true,
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
	if err := validate(item); err != nil {
		return models.MenuItem{}, err
	}

	err := s.store.Update(ctx, func(doc *models.Document) error {
		doc.MenuItems = append(doc.MenuItems, item)
		audit.Record(ctx, doc, s.now(), audit.Entry{
			EntityType:  entityType,
			EntityID:    item.ID,
			Action:      models.AuditActionCreate,
			Description: "menu item added: " + item.Name,
			After:       item,
		})
		return nil
	})
	if err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, patch ItemPatch) (models.MenuItem, error) {
	var updated models.MenuItem
	err := s.store.Update(ctx, func(doc *models.Document) error {
		i := doc.MenuItemIndex(id)
		if i < 0 {
			return apperr.NotFound(msgNotFound)
		}
		before := doc.MenuItems[i]
		item := before

		if patch.Name != nil {
			item.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Category != nil {
			item.Category = strings.TrimSpace(*patch.Category)
		}
		if patch.Price != nil {
			item.Price = *patch.Price
		}
		if patch.IsAvailable != nil {
			item.IsAvailable = *patch.IsAvailable
		}
		if patch.ImageURL != nil {
			item.ImageURL = strings.TrimSpace(*patch.ImageURL)
		}
		if err := validate(item); err != nil {
			return err
		}

		doc.MenuItems[i] = item
		updated = item
		audit.Record(ctx, doc, s.now(), audit.Entry{
			EntityType:  entityType,
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "menu item updated: " + item.Name,
			Before:      before,
			After:       item,
		})
		return nil
	})
	if err != nil {
		return models.MenuItem{}, err
	}
	return updated, nil
}

func (s *Service) ToggleAvailability(ctx context.Context, id string) (models.MenuItem, error) {
	var updated models.MenuItem
	err := s.store.Update(ctx, func(doc *models.Document) error {
		i := doc.MenuItemIndex(id)
		if i < 0 {
			return apperr.NotFound(msgNotFound)
		}
		before := doc.MenuItems[i]
		doc.MenuItems[i].IsAvailable = !before.IsAvailable
		updated = doc.MenuItems[i]

		audit.Record(ctx, doc, s.now(), audit.Entry{
			EntityType:  entityType,
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "menu item availability toggled: " + updated.Name,
			Before:      before,
			After:       updated,
		})
		return nil
	})
	if err != nil {
		return models.MenuItem{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *models.Document) error {
		i := doc.MenuItemIndex(id)
		if i < 0 {
			return apperr.NotFound(msgNotFound)
		}
		removed := doc.MenuItems[i]
		doc.MenuItems = append(doc.MenuItems[:i], doc.MenuItems[i+1:]...)

		audit.Record(ctx, doc, s.now(), audit.Entry{
			EntityType:  entityType,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "menu item deleted: " + removed.Name,
			Before:      removed,
		})
		return nil
	})
}

func validate(item models.MenuItem) error {
	if len([]rune(item.Name)) < minNameLength {
		return apperr.Validation("name must be at least 2 characters")
	}
	if len([]rune(item.Category)) < minNameLength {
		return apperr.Validation("category must be at least 2 characters")
	}
	if item.Price <= 0 {
		return apperr.Validation("price must be a positive number")
	}
	return nil
}
