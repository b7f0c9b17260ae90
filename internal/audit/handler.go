package audit

import (
	"restoran-pos/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/audit-logs?entity_type=menu_item&entity_id=...&user_id=...&limit=100
func ListAuditLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit < 0 {
			return apperr.Validation("limit must not be negative")
		}

		logs, err := svc.List(c.UserContext(), Filter{
			EntityType: c.Query("entity_type"),
			EntityID:   c.Query("entity_id"),
			UserID:     c.Query("user_id"),
			Limit:      limit,
		})
		if err != nil {
			return err
		}
		return c.JSON(logs)
	}
}
