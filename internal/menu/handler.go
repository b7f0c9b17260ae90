package menu

import (
	"strings"

	"restoran-pos/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

type CreateItemRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	IsAvailable *bool    `json:"isAvailable"`
	ImageURL    *string  `json:"imageUrl"`
}

// GET /api/menu?available=false
// Cashiers get only available items unless they ask otherwise.
func ListItemsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		onlyAvailable := c.QueryBool("available", true)
		items, err := svc.List(c.UserContext(), onlyAvailable)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// GET /api/admin/menu (all items, available or not)
func ListAllItemsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext(), false)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// POST /api/admin/menu
func CreateItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("invalid request body")
		}

		item, err := svc.Add(c.UserContext(), ItemInput{
			Name:     body.Name,
			Category: body.Category,
			Price:    body.Price,
			ImageURL: body.ImageURL,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /api/admin/menu/:id
func UpdateItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("invalid request body")
		}

		item, err := svc.Update(c.UserContext(), c.Params("id"), ItemPatch{
			Name:        body.Name,
			Category:    body.Category,
			Price:       body.Price,
			IsAvailable: body.IsAvailable,
			ImageURL:    body.ImageURL,
		})
		if err != nil {
			return err
		}
		return c.JSON(item)
	}
}

// POST /api/admin/menu/:id/toggle
func ToggleItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := svc.ToggleAvailability(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(item)
	}
}

// DELETE /api/admin/menu/:id
func DeleteItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/admin/menu/import (multipart, field "file", .xlsx)
func ImportItemsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return apperr.Validation("file is required")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return apperr.Validation("only .xlsx files can be imported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return apperr.Validation("file could not be opened")
		}
		defer file.Close()

		res, err := svc.Import(c.UserContext(), file)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
