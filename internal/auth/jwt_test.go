package auth

import (
	"testing"
	"time"

	"restoran-pos/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens(testSecret, time.Hour)
	user := models.UserView{ID: "u1", Username: "kasa", Role: models.RoleCashier}

	signed, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	claims, err := tokens.Parse(signed)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "kasa" || claims.Role != models.RoleCashier {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokensRejects(t *testing.T) {
	user := models.UserView{ID: "u1", Username: "kasa", Role: models.RoleCashier}
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tokens := NewTokens(testSecret, time.Hour)
	tokens.now = func() time.Time { return issued }
	signed, err := tokens.Issue(user)
	if err != nil {
		t.Fatal(err)
	}

	expired := NewTokens(testSecret, time.Hour)
	expired.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := expired.Parse(signed); err == nil {
		t.Error("expired token accepted")
	}

	other := NewTokens("another-secret-another-secret-xx", time.Hour)
	other.now = tokens.now
	if _, err := other.Parse(signed); err == nil {
		t.Error("token signed with another secret accepted")
	}

	if _, err := tokens.Parse("not-a-jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}
