package auth

import (
	"restoran-pos/internal/apperr"
	"restoran-pos/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  models.UserView `json:"user"`
}

type CreateUserRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

// POST /api/auth/login
func LoginHandler(svc *Service, tokens *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("invalid request body")
		}

		user, err := svc.Login(c.UserContext(), body.Username, body.Password)
		if err != nil {
			return err
		}

		token, err := tokens.Issue(user)
		if err != nil {
			return err
		}
		return c.JSON(LoginResponse{Token: token, User: user})
	}
}

// GET /api/auth/me
func MeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.Locals(CtxUserIDKey).(string)
		user, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.Unauthorized("user no longer exists")
			}
			return err
		}
		return c.JSON(user)
	}
}

// GET /api/admin/users
func ListUsersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.ListUsers(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(users)
	}
}

// POST /api/admin/users
func CreateUserHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("invalid request body")
		}

		user, err := svc.AddUser(c.UserContext(), UserInput{
			Username: body.Username,
			Password: body.Password,
			Role:     body.Role,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// DELETE /api/admin/users/:id
func DeleteUserHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
