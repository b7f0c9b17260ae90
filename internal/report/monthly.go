package report

import (
	"context"
	"time"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/dates"
	"restoran-pos/internal/models"
)

type MonthlyReport struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalExpenses    float64 `json:"totalExpenses"`
	NetProfit        float64 `json:"netProfit"`
	NumberOfInvoices int     `json:"numberOfInvoices"`
}

// Monthly compares a calendar month's sales with its recorded expenses.
func (s *Service) Monthly(ctx context.Context, year, month int) (MonthlyReport, error) {
	if year < 2000 || year > 2100 {
		return MonthlyReport{}, apperr.Validation("year is out of range")
	}
	if month < 1 || month > 12 {
		return MonthlyReport{}, apperr.Validation("month must be between 1 and 12")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := dates.EndOfDay(start.AddDate(0, 1, -1))
	r := dates.Range{Start: &start, End: &end}

	res := MonthlyReport{Year: year, Month: month}
	err := s.store.View(ctx, func(doc *models.Document) error {
		for _, o := range doc.Orders {
			if r.Contains(o.Timestamp) {
				res.TotalRevenue += o.TotalAmount
				res.NumberOfInvoices++
			}
		}
		for _, e := range doc.Expenses {
			if r.Contains(e.Date) {
				res.TotalExpenses += e.Amount
			}
		}
		return nil
	})
	if err != nil {
		return MonthlyReport{}, err
	}

	res.NetProfit = res.TotalRevenue - res.TotalExpenses
	return res, nil
}
