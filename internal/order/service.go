package order

import (
	"context"
	"encoding/json"
	"math"
	"slices"
	"sort"
	"time"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/audit"
	"restoran-pos/internal/database"
	"restoran-pos/internal/dates"
	"restoran-pos/internal/events"
	"restoran-pos/internal/models"

	"github.com/rs/zerolog"
)

const (
	msgEmptyOrder = "order cannot be empty"
	msgNotFound   = "order not found"

	EventCompleted = "order.completed"
)

type CompletedEvent struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

type Service struct {
	store     database.Store
	publisher events.Publisher
	subject   string
	log       zerolog.Logger
	now       func() time.Time
}

func NewService(store database.Store, publisher events.Publisher, subject string, log zerolog.Logger) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		store:     store,
		publisher: publisher,
		subject:   subject,
		log:       log,
		now:       time.Now,
	}
}

// Complete records a paid cash order. Line prices are taken as given and
// never re-read from the menu, so a price edit cannot change an order that
// is already on the counter.
func (s *Service) Complete(ctx context.Context, items []models.OrderItem) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, apperr.Validation(msgEmptyOrder)
	}

	var total float64
	for _, it := range items {
		if it.Quantity < 1 {
			return models.Order{}, apperr.Validation("quantity must be at least 1")
		}
		if it.Price < 0 {
			return models.Order{}, apperr.Validation("price must not be negative")
		}
		line := it.LineTotal()
		if math.IsInf(line, 0) || math.IsNaN(line) {
			return models.Order{}, apperr.Validation("line total is out of range")
		}
		total += line
	}
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return models.Order{}, apperr.Validation("order total is out of range")
	}

	var userID string
	if a, ok := audit.ActorFrom(ctx); ok {
		userID = a.ID
	}

	var order models.Order
	err := s.store.Update(ctx, func(doc *models.Document) error {
		id := doc.LastOrderID + 1
		order = models.Order{
			ID:            id,
			Timestamp:     s.now().UnixMilli(),
			Items:         slices.Clone(items),
			TotalAmount:   total,
			Status:        models.OrderStatusCompleted,
			PaymentMethod: models.PaymentMethodCash,
			UserID:        userID,
		}
		doc.Orders = append(doc.Orders, order)
		doc.LastOrderID = id
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int("items", len(items)).Msg("order could not be saved")
		return models.Order{}, err
	}

	s.log.Info().Int("order_id", order.ID).Float64("total", order.TotalAmount).Msg("order completed")
	s.publishCompleted(ctx, order)
	return order, nil
}

// publishCompleted is best effort: the order is already saved.
func (s *Service) publishCompleted(ctx context.Context, order models.Order) {
	payload, err := json.Marshal(CompletedEvent{Type: EventCompleted, Order: order})
	if err != nil {
		s.log.Error().Err(err).Int("order_id", order.ID).Msg("order event could not be encoded")
		return
	}
	if err := s.publisher.Publish(ctx, s.subject, payload); err != nil {
		s.log.Warn().Err(err).Int("order_id", order.ID).Msg("order event could not be published")
	}
}

func (s *Service) Get(ctx context.Context, id int) (models.Order, error) {
	var order models.Order
	err := s.store.View(ctx, func(doc *models.Document) error {
		for _, o := range doc.Orders {
			if o.ID == id {
				order = o
				return nil
			}
		}
		return apperr.NotFound(msgNotFound)
	})
	return order, err
}

// List returns orders inside r, newest first.
func (s *Service) List(ctx context.Context, r dates.Range) ([]models.Order, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var out []models.Order
	err := s.store.View(ctx, func(doc *models.Document) error {
		out = make([]models.Order, 0)
		for _, o := range doc.Orders {
			if r.Contains(o.Timestamp) {
				out = append(out, o)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
