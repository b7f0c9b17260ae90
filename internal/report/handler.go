package report

import (
	"bytes"
	"fmt"

	"restoran-pos/internal/dates"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/reports/daily?date=2025-06-01 (default: today)
func DailySalesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := dates.ParseDay(c.Query("date"), svc.now())
		if err != nil {
			return err
		}

		res, err := svc.DailySalesFor(c.UserContext(), day)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GET /api/admin/reports/monthly?year=2025&month=6 (default: current month)
func MonthlyReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := svc.now()
		year := c.QueryInt("year", now.Year())
		month := c.QueryInt("month", int(now.Month()))

		res, err := svc.Monthly(c.UserContext(), year, month)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GET /api/admin/reports/item-sales?start=2025-06-01&end=2025-06-30
func ItemSalesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := dates.ParseRange(c.Query("start"), c.Query("end"))
		if err != nil {
			return err
		}

		rows, err := svc.ItemSales(c.UserContext(), r)
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/admin/reports/item-sales/export?start=...&end=...
func ExportItemSalesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end := c.Query("start"), c.Query("end")
		r, err := dates.ParseRange(start, end)
		if err != nil {
			return err
		}

		rows, err := svc.ItemSales(c.UserContext(), r)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := WriteItemSalesXLSX(&buf, rangeTitle(start, end), rows); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "report could not be exported")
		}

		c.Attachment("item-sales.xlsx")
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	}
}

func rangeTitle(start, end string) string {
	switch {
	case start == "" && end == "":
		return "Item sales: all time"
	case start == "":
		return fmt.Sprintf("Item sales: until %s", end)
	case end == "":
		return fmt.Sprintf("Item sales: from %s", start)
	default:
		return fmt.Sprintf("Item sales: %s to %s", start, end)
	}
}
