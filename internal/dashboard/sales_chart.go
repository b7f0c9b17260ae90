// Package dashboard buckets sales over recent days, weeks or months for the
// admin charts.
package dashboard

import (
	"context"
	"time"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/database"
	"restoran-pos/internal/dates"
	"restoran-pos/internal/models"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"

	maxPoints = 366
)

type ChartPoint struct {
	Label  string  `json:"label"` // first day of the bucket
	Cash   float64 `json:"cash"`
	Card   float64 `json:"card"`
	Online float64 `json:"online"`
	Other  float64 `json:"other"`
	Total  float64 `json:"total"`
	Orders int     `json:"orders"`
}

type GrandTotals struct {
	Cash   float64 `json:"cash"`
	Card   float64 `json:"card"`
	Online float64 `json:"online"`
	Other  float64 `json:"other"`
	Total  float64 `json:"total"`
	Orders int     `json:"orders"`
}

type SalesChart struct {
	Period      string       `json:"period"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Points      []ChartPoint `json:"points"`
	GrandTotals GrandTotals  `json:"grandTotals"`
}

type Service struct {
	store database.Store
	now   func() time.Time
}

func NewService(store database.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// DefaultCount is the number of buckets shown when the caller does not ask.
func DefaultCount(period string) int {
	switch period {
	case PeriodWeekly:
		return 8
	case PeriodMonthly:
		return 12
	default:
		return 7
	}
}

// SalesChart returns count consecutive buckets ending with the current one.
// Empty buckets are included; cancelled orders are ignored. Weeks start on
// Monday.
func (s *Service) SalesChart(ctx context.Context, period string, count int) (SalesChart, error) {
	if count <= 0 || count > maxPoints {
		return SalesChart{}, apperr.Validation("count must be between 1 and 366")
	}

	starts, err := bucketStarts(s.now(), period, count)
	if err != nil {
		return SalesChart{}, err
	}
	end := next(starts[len(starts)-1], period)

	points := make([]ChartPoint, len(starts))
	for i, b := range starts {
		points[i].Label = b.Format(dates.DayLayout)
	}

	err = s.store.View(ctx, func(doc *models.Document) error {
		for _, o := range doc.Orders {
			if o.Status == models.OrderStatusCancelled {
				continue
			}
			at := dates.FromMillis(o.Timestamp)
			if at.Before(starts[0]) || !at.Before(end) {
				continue
			}
			i := bucketIndex(starts, at)
			p := &points[i]
			switch o.PaymentMethod {
			case models.PaymentMethodCash:
				p.Cash += o.TotalAmount
			case models.PaymentMethodCard:
				p.Card += o.TotalAmount
			case models.PaymentMethodOnline:
				p.Online += o.TotalAmount
			default:
				p.Other += o.TotalAmount
			}
			p.Total += o.TotalAmount
			p.Orders++
		}
		return nil
	})
	if err != nil {
		return SalesChart{}, err
	}

	var grand GrandTotals
	for _, p := range points {
		grand.Cash += p.Cash
		grand.Card += p.Card
		grand.Online += p.Online
		grand.Other += p.Other
		grand.Total += p.Total
		grand.Orders += p.Orders
	}

	return SalesChart{
		Period:      period,
		From:        starts[0].Format(dates.DayLayout),
		To:          end.AddDate(0, 0, -1).Format(dates.DayLayout),
		Points:      points,
		GrandTotals: grand,
	}, nil
}

func bucketStarts(now time.Time, period string, count int) ([]time.Time, error) {
	today := dates.StartOfDay(now.In(time.Local))

	var last time.Time
	switch period {
	case PeriodDaily:
		last = today
	case PeriodWeekly:
		offset := (int(today.Weekday()) + 6) % 7
		last = today.AddDate(0, 0, -offset)
	case PeriodMonthly:
		last = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.Local)
	default:
		return nil, apperr.Validation("period must be daily, weekly or monthly")
	}

	starts := make([]time.Time, count)
	starts[count-1] = last
	for i := count - 2; i >= 0; i-- {
		starts[i] = prev(starts[i+1], period)
	}
	return starts, nil
}

func next(t time.Time, period string) time.Time {
	switch period {
	case PeriodWeekly:
		return t.AddDate(0, 0, 7)
	case PeriodMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func prev(t time.Time, period string) time.Time {
	switch period {
	case PeriodWeekly:
		return t.AddDate(0, 0, -7)
	case PeriodMonthly:
		return t.AddDate(0, -1, 0)
	default:
		return t.AddDate(0, 0, -1)
	}
}

// bucketIndex returns the last bucket starting at or before t.
func bucketIndex(starts []time.Time, t time.Time) int {
	i := len(starts) - 1
	for i > 0 && t.Before(starts[i]) {
		i--
	}
	return i
}
