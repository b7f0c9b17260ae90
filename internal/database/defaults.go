package database

import (
	"fmt"

	"restoran-pos/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAdminID       = "default-admin"
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"
)

// DefaultDocument is the empty-but-well-formed state used for a fresh
// store. Its admin still carries a plaintext password; Normalize hashes it.
func DefaultDocument() *models.Document {
	return &models.Document{
		MenuItems:   []models.MenuItem{},
		Orders:      []models.Order{},
		LastOrderID: 0,
		Expenses:    []models.Expense{},
		AppSettings: models.AppSettings{RestaurantName: models.DefaultRestaurantName},
		Users: []models.User{{
			ID:       DefaultAdminID,
			Username: DefaultAdminUsername,
			Password: DefaultAdminPassword,
			Role:     models.RoleAdmin,
		}},
	}
}

// Normalize fills in whatever a loaded document is missing and reports
// whether anything changed:
//   - nil collections become empty
//   - an empty restaurant name gets the default
//   - lastOrderId is raised to the highest stored order id
//   - plaintext passwords are replaced by bcrypt hashes
//   - a default admin is seeded when no admin exists (an existing "admin"
//     account is promoted instead of duplicated)
func Normalize(doc *models.Document) (bool, error) {
	changed := false

	if doc.MenuItems == nil {
		doc.MenuItems = []models.MenuItem{}
		changed = true
	}
	if doc.Orders == nil {
		doc.Orders = []models.Order{}
		changed = true
	}
	if doc.Expenses == nil {
		doc.Expenses = []models.Expense{}
		changed = true
	}
	if doc.Users == nil {
		doc.Users = []models.User{}
		changed = true
	}
	if doc.AppSettings.RestaurantName == "" {
		doc.AppSettings.RestaurantName = models.DefaultRestaurantName
		changed = true
	}
	if highest := doc.MaxOrderID(); doc.LastOrderID < highest {
		doc.LastOrderID = highest
		changed = true
	}

	if doc.AdminCount() == 0 {
		seedAdmin(doc)
		changed = true
	}

	for i := range doc.Users {
		u := &doc.Users[i]
		if u.Password == "" {
			continue
		}
		if u.PasswordHash == "" {
			hash, err := bcrypt.GenerateFromPassword(bcryptInput(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return changed, fmt.Errorf("hash password of user %q: %w", u.Username, err)
			}
			u.PasswordHash = string(hash)
		}
		u.Password = ""
		changed = true
	}

	return changed, nil
}

func seedAdmin(doc *models.Document) {
	for i := range doc.Users {
		if doc.Users[i].Username == DefaultAdminUsername {
			doc.Users[i].Role = models.RoleAdmin
			return
		}
	}

	id := DefaultAdminID
	if doc.UserIndex(id) >= 0 {
		id = uuid.NewString()
	}
	doc.Users = append(doc.Users, models.User{
		ID:       id,
		Username: DefaultAdminUsername,
		Password: DefaultAdminPassword,
		Role:     models.RoleAdmin,
	})
}

// bcryptInput trims a legacy password to the 72 bytes bcrypt reads, which
// is also all CompareHashAndPassword looks at when the user logs in.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}
