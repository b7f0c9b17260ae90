package admin

import (
	"restoran-pos/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

type RestaurantNameRequest struct {
	RestaurantName string `json:"restaurantName"`
}

type RestaurantNameResponse struct {
	RestaurantName string `json:"restaurantName"`
}

// GET /api/settings/restaurant-name
func GetRestaurantNameHandler(svc *SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := svc.RestaurantName(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(RestaurantNameResponse{RestaurantName: name})
	}
}

// PUT /api/admin/settings/restaurant-name
func UpdateRestaurantNameHandler(svc *SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RestaurantNameRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("invalid request body")
		}

		name, err := svc.UpdateRestaurantName(c.UserContext(), body.RestaurantName)
		if err != nil {
			return err
		}
		return c.JSON(RestaurantNameResponse{RestaurantName: name})
	}
}
