package expense

import (
	"time"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/dates"

	"github.com/gofiber/fiber/v2"
)

type CreateExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"` // "2025-12-09", empty means now
	Category    string  `json:"category"`
}

// GET /api/admin/expenses?start=2025-12-01&end=2025-12-31
func ListExpensesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := dates.ParseRange(c.Query("start"), c.Query("end"))
		if err != nil {
			return err
		}

		list, err := svc.List(c.UserContext(), r)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// POST /api/admin/expenses
func CreateExpenseHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("invalid request body")
		}

		var at time.Time
		if body.Date != "" {
			d, err := dates.ParseDay(body.Date, time.Time{})
			if err != nil {
				return err
			}
			at = d
		}

		e, err := svc.Add(c.UserContext(), Input{
			Description: body.Description,
			Amount:      body.Amount,
			Date:        at,
			Category:    body.Category,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// DELETE /api/admin/expenses/:id
func DeleteExpenseHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/admin/expenses/summary?start=...&end=...
func ExpenseSummaryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := dates.ParseRange(c.Query("start"), c.Query("end"))
		if err != nil {
			return err
		}

		res, err := svc.Summarize(c.UserContext(), r)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
