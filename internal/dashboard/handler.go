package dashboard

import (
	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/dashboard/sales-chart?period=daily&count=7
func SalesChartHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", PeriodDaily)
		count := c.QueryInt("count", DefaultCount(period))

		chart, err := svc.SalesChart(c.UserContext(), period, count)
		if err != nil {
			return err
		}
		return c.JSON(chart)
	}
}
