package auth

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/models"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) (*fiber.App, *Service, *Tokens) {
	t.Helper()
	svc, _ := newTestService(t)
	tokens := NewTokens(testSecret, time.Hour)

	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	app.Post("/login", NewThrottle(2).Middleware(), LoginHandler(svc, tokens))

	api := app.Group("/api", JWTMiddleware(tokens, svc))
	api.Get("/me", MeHandler(svc))
	admin := api.Group("/admin", RequireRole(models.RoleAdmin))
	admin.Get("/users", ListUsersHandler(svc))
	admin.Post("/users", CreateUserHandler(svc))
	admin.Delete("/users/:id", DeleteUserHandler(svc))
	return app, svc, tokens
}

func login(t *testing.T, app *fiber.App, username, password string) (*LoginResponse, int) {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + password + `"}`
	req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		return nil, resp.StatusCode
	}
	var out LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return &out, resp.StatusCode
}

func TestLoginAndMe(t *testing.T) {
	app, _, _ := newTestApp(t)

	out, status := login(t, app, "admin", "admin")
	if status != fiber.StatusOK {
		t.Fatalf("login status = %d, want 200", status)
	}
	if out.Token == "" || out.User.Role != models.RoleAdmin {
		t.Fatalf("login response = %+v", out)
	}

	req := httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("me status = %d, want 200", resp.StatusCode)
	}
	var me models.UserView
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		t.Fatal(err)
	}
	if me != out.User {
		t.Errorf("me = %+v, want %+v", me, out.User)
	}
}

func TestLoginThrottled(t *testing.T) {
	app, _, _ := newTestApp(t)

	for i := 0; i < 2; i++ {
		if _, status := login(t, app, "admin", "wrong"); status != fiber.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, status)
		}
	}
	if _, status := login(t, app, "admin", "admin"); status != fiber.StatusTooManyRequests {
		t.Errorf("third attempt status = %d, want 429", status)
	}
}

func TestProtectedRoutes(t *testing.T) {
	app, svc, tokens := newTestApp(t)
	cashier, err := svc.AddUser(t.Context(), UserInput{Username: "kasa", Password: "1234", Role: models.RoleCashier})
	if err != nil {
		t.Fatal(err)
	}
	cashierToken, err := tokens.Issue(cashier)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"noHeader", "", fiber.StatusUnauthorized},
		{"notBearer", "Basic abc", fiber.StatusUnauthorized},
		{"badToken", "Bearer abc", fiber.StatusUnauthorized},
		{"cashierOnAdminRoute", "Bearer " + cashierToken, fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/admin/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestDeleteLastAdminHandler(t *testing.T) {
	app, _, tokens := newTestApp(t)
	token, err := tokens.Issue(models.UserView{ID: "default-admin", Username: "admin", Role: models.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("DELETE", "/api/admin/users/default-admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != msgLastAdmin {
		t.Errorf("error = %q, want %q", body["error"], msgLastAdmin)
	}
}

func TestDeletedUserTokenRejected(t *testing.T) {
	app, svc, tokens := newTestApp(t)
	boss, err := svc.AddUser(t.Context(), UserInput{Username: "boss2", Password: "1234", Role: models.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	token, err := tokens.Issue(boss)
	if err != nil {
		t.Fatal(err)
	}

	get := func() int {
		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp.StatusCode
	}

	if status := get(); status != fiber.StatusOK {
		t.Fatalf("status before delete = %d, want 200", status)
	}
	if err := svc.DeleteUser(t.Context(), boss.ID); err != nil {
		t.Fatal(err)
	}
	if status := get(); status != fiber.StatusUnauthorized {
		t.Errorf("status after delete = %d, want 401", status)
	}
}

func TestStoredRoleWinsOverClaims(t *testing.T) {
	app, svc, tokens := newTestApp(t)
	cashier, err := svc.AddUser(t.Context(), UserInput{Username: "kasa", Password: "1234", Role: models.RoleCashier})
	if err != nil {
		t.Fatal(err)
	}
	forged := cashier
	forged.Role = models.RoleAdmin
	token, err := tokens.Issue(forged)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403 for a stored cashier", resp.StatusCode)
	}
}
