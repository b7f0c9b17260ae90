package report

import (
	"context"
	"sort"
	"time"

	"restoran-pos/internal/database"
	"restoran-pos/internal/dates"
	"restoran-pos/internal/models"
)

type DailySales struct {
	TotalSales       float64 `json:"totalSales"`
	NumberOfInvoices int     `json:"numberOfInvoices"`
	Date             string  `json:"date"` // YYYY-MM-DD, server local time
}

type ItemSales struct {
	ItemName     string `json:"itemName"`
	QuantitySold int    `json:"quantitySold"`
}

type Service struct {
	store database.Store
	now   func() time.Time
}

func NewService(store database.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// DailySales totals today's orders.
func (s *Service) DailySales(ctx context.Context) (DailySales, error) {
	return s.DailySalesFor(ctx, s.now())
}

// DailySalesFor totals the orders of day's calendar day in local time.
// Every stored order counts, cancelled ones included, unlike the dashboard chart.
func (s *Service) DailySalesFor(ctx context.Context, day time.Time) (DailySales, error) {
	day = day.In(time.Local)
	r := dates.Day(day)
	res := DailySales{Date: day.Format(dates.DayLayout)}

	err := s.store.View(ctx, func(doc *models.Document) error {
		for _, o := range doc.Orders {
			if !r.Contains(o.Timestamp) {
				continue
			}
			res.TotalSales += o.TotalAmount
			res.NumberOfInvoices++
		}
		return nil
	})
	if err != nil {
		return DailySales{}, err
	}
	return res, nil
}

// ItemSales sums sold quantities per item name over the orders in r,
// highest first. Items are keyed by name, not menu item id: two items that
// share a name are merged and a renamed item is reported under both names.
// Ties keep the order in which names were first seen.
func (s *Service) ItemSales(ctx context.Context, r dates.Range) ([]ItemSales, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var rows []ItemSales
	err := s.store.View(ctx, func(doc *models.Document) error {
		index := make(map[string]int)
		rows = make([]ItemSales, 0)
		for _, o := range doc.Orders {
			if !r.Contains(o.Timestamp) {
				continue
			}
			for _, it := range o.Items {
				i, ok := index[it.Name]
				if !ok {
					i = len(rows)
					index[it.Name] = i
					rows = append(rows, ItemSales{ItemName: it.Name})
				}
				rows[i].QuantitySold += it.Quantity
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].QuantitySold > rows[j].QuantitySold
	})
	return rows, nil
}
