package auth

import (
	"strings"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/audit"
	"restoran-pos/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"
	CtxUserRoleKey = "user_role"
)

// JWTMiddleware accepts "Authorization: Bearer <token>" and resolves the
// caller from the stored user record, so deleted users and role changes take
// effect before the token expires. The caller goes into Locals and onto the
// user context as the audit actor.
func JWTMiddleware(tokens *Tokens, users *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperr.Unauthorized("missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return apperr.Unauthorized("authorization header must be 'Bearer <token>'")
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			return apperr.Unauthorized("invalid or expired token")
		}

		user, err := users.Get(c.UserContext(), claims.UserID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.Unauthorized("user no longer exists")
			}
			return err
		}

		c.Locals(CtxUserIDKey, user.ID)
		c.Locals(CtxUsernameKey, user.Username)
		c.Locals(CtxUserRoleKey, user.Role)
		c.SetUserContext(audit.WithActor(c.UserContext(), audit.Actor{
			ID:       user.ID,
			Username: user.Username,
		}))

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
		if !ok {
			return apperr.Forbidden("role information missing")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return apperr.Forbidden("you are not allowed to do this")
	}
}
