package admin

import (
	"context"
	"strings"
	"time"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/audit"
	"restoran-pos/internal/database"
	"restoran-pos/internal/models"
)

const minRestaurantNameLength = 2

// SettingsService owns the AppSettings singleton.
type SettingsService struct {
	store database.Store
	now   func() time.Time
}

func NewSettingsService(store database.Store) *SettingsService {
	return &SettingsService{store: store, now: time.Now}
}

func (s *SettingsService) RestaurantName(ctx context.Context) (string, error) {
	var name string
	err := s.store.View(ctx, func(doc *models.Document) error {
		name = doc.AppSettings.RestaurantName
		if name == "" {
			name = models.DefaultRestaurantName
		}
		return nil
	})
	return name, err
}

func (s *SettingsService) UpdateRestaurantName(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < minRestaurantNameLength {
		return "", apperr.Validation("restaurant name must be at least 2 characters")
	}

	err := s.store.Update(ctx, func(doc *models.Document) error {
		before := doc.AppSettings
		doc.AppSettings.RestaurantName = name
		audit.Record(ctx, doc, s.now(), audit.Entry{
			EntityType:  "settings",
			EntityID:    "restaurantName",
			Action:      models.AuditActionUpdate,
			Description: "restaurant name changed to " + name,
			Before:      before,
			After:       doc.AppSettings,
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}
