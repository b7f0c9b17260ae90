package apperr

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("disk full")
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("order cannot be empty"), KindValidation},
		{"notFound", NotFound("menu item not found"), KindNotFound},
		{"wrapped", fmt.Errorf("complete order: %w", Conflict("dup")), KindConflict},
		{"persistence", Persistence(cause), KindPersistence},
		{"foreign", cause, KindUnknown},
		{"nil", nil, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPersistenceHidesCause(t *testing.T) {
	cause := errors.New("rename db.json: permission denied")
	err := Persistence(cause)

	if got := Message(err); got != MsgFailedToSave {
		t.Errorf("Message() = %q, want %q", got, MsgFailedToSave)
	}
	if !errors.Is(err, cause) {
		t.Error("Persistence() should wrap the cause")
	}
	if got := KindOf(err).Status(); got != fiber.StatusInternalServerError {
		t.Errorf("Status() = %d, want 500", got)
	}
}

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, fiber.StatusBadRequest},
		{KindNotFound, fiber.StatusNotFound},
		{KindConflict, fiber.StatusConflict},
		{KindUnauthorized, fiber.StatusUnauthorized},
		{KindForbidden, fiber.StatusForbidden},
		{KindTooManyRequests, fiber.StatusTooManyRequests},
		{KindUnknown, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.kind.Status(); got != tt.want {
			t.Errorf("%v.Status() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/domain", func(c *fiber.Ctx) error { return NotFound("menu item not found") })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/foreign", func(c *fiber.Ctx) error { return errors.New("secret internals") })

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/domain", fiber.StatusNotFound, `{"error":"menu item not found"}`},
		{"/fiber", fiber.StatusTeapot, `{"error":"short and stout"}`},
		{"/foreign", fiber.StatusInternalServerError, `{"error":"unexpected server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %s, want %s", body, tt.wantBody)
			}
		})
	}
}
