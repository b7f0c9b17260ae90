// Package apperr is the error vocabulary shared by the domain packages.
// Expected business failures are returned as *Error values with a Kind;
// callers switch on KindOf instead of matching strings.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindTooManyRequests
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindTooManyRequests:
		return "too_many_requests"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Status maps a kind to the HTTP status the API answers with.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindTooManyRequests:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string) error { return New(KindValidation, msg) }

func NotFound(msg string) error { return New(KindNotFound, msg) }

func Conflict(msg string) error { return New(KindConflict, msg) }

func Unauthorized(msg string) error { return New(KindUnauthorized, msg) }

func Forbidden(msg string) error { return New(KindForbidden, msg) }

func TooManyRequests(msg string) error { return New(KindTooManyRequests, msg) }

// MsgFailedToSave is the only message a caller ever sees for a storage failure.
const MsgFailedToSave = "failed to save"

// Persistence wraps a storage failure. The cause is kept for logging and
// never shown to API clients.
func Persistence(err error) error {
	return &Error{Kind: KindPersistence, Message: MsgFailedToSave, Err: err}
}

const MsgFailedToLoad = "failed to load data"

// LoadFailed wraps a storage read failure.
func LoadFailed(err error) error {
	return &Error{Kind: KindPersistence, Message: MsgFailedToLoad, Err: err}
}

// KindOf reports the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the client-facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "unexpected server error"
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ErrorHandler renders every error as {"error": message}. Fiber errors keep
// their own status; domain errors get the status of their kind.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return c.Status(KindOf(err).Status()).JSON(fiber.Map{"error": Message(err)})
}
