package order

import (
	"restoran-pos/internal/apperr"
	"restoran-pos/internal/dates"
	"restoran-pos/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CompleteOrderRequest struct {
	Items []models.OrderItem `json:"items"`
}

// POST /api/orders
func CompleteOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CompleteOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("invalid request body")
		}

		order, err := svc.Complete(c.UserContext(), body.Items)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

// GET /api/orders/:id (receipt reprint)
func GetOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("invalid order id")
		}

		order, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(order)
	}
}

// GET /api/admin/orders?start=2025-01-01&end=2025-01-31
func ListOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := dates.ParseRange(c.Query("start"), c.Query("end"))
		if err != nil {
			return err
		}

		orders, err := svc.List(c.UserContext(), r)
		if err != nil {
			return err
		}
		return c.JSON(orders)
	}
}
