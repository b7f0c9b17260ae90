package database

import (
	"strings"
	"testing"

	"restoran-pos/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	doc := &models.Document{
		Orders: []models.Order{{ID: 4}, {ID: 9}, {ID: 7}},
	}

	changed, err := Normalize(doc)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !changed {
		t.Error("Normalize() should report a change")
	}
	if doc.MenuItems == nil || doc.Expenses == nil || doc.Users == nil {
		t.Error("nil collections should become empty")
	}
	if doc.LastOrderID != 9 {
		t.Errorf("LastOrderID = %d, want 9", doc.LastOrderID)
	}
	if doc.AppSettings.RestaurantName != models.DefaultRestaurantName {
		t.Errorf("RestaurantName = %q, want default", doc.AppSettings.RestaurantName)
	}
	if doc.AdminCount() != 1 {
		t.Fatalf("AdminCount() = %d, want 1", doc.AdminCount())
	}
}

func TestNormalizeHashesLegacyPasswords(t *testing.T) {
	doc := DefaultDocument()
	doc.Users = append(doc.Users, models.User{ID: "c1", Username: "cashier", Password: "secret", Role: models.RoleCashier})

	if _, err := Normalize(doc); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	for _, u := range doc.Users {
		if u.Password != "" {
			t.Errorf("user %q still has a plaintext password", u.Username)
		}
		if u.PasswordHash == "" {
			t.Errorf("user %q has no password hash", u.Username)
		}
	}
	cashier := doc.Users[doc.UserIndex("c1")]
	if err := bcrypt.CompareHashAndPassword([]byte(cashier.PasswordHash), []byte("secret")); err != nil {
		t.Errorf("hash does not match the legacy password: %v", err)
	}
}

func TestNormalizeIsStable(t *testing.T) {
	doc := DefaultDocument()
	if _, err := Normalize(doc); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	changed, err := Normalize(doc)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if changed {
		t.Error("a normalized document should not change again")
	}
}

func TestNormalizePromotesExistingAdminAccount(t *testing.T) {
	doc := &models.Document{
		Users: []models.User{{ID: "u1", Username: DefaultAdminUsername, PasswordHash: "x", Role: models.RoleCashier}},
	}
	if _, err := Normalize(doc); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(doc.Users) != 1 {
		t.Fatalf("len(Users) = %d, want 1", len(doc.Users))
	}
	if doc.Users[0].Role != models.RoleAdmin {
		t.Errorf("Role = %q, want admin", doc.Users[0].Role)
	}
}

func TestNormalizeHashesOverlongLegacyPassword(t *testing.T) {
	long := strings.Repeat("x", 80)
	doc := DefaultDocument()
	doc.Users = append(doc.Users, models.User{ID: "c1", Username: "cashier", Password: long, Role: models.RoleCashier})

	if _, err := Normalize(doc); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	cashier := doc.Users[doc.UserIndex("c1")]
	if err := bcrypt.CompareHashAndPassword([]byte(cashier.PasswordHash), []byte(long[:72])); err != nil {
		t.Errorf("hash does not match the first 72 bytes: %v", err)
	}
}
