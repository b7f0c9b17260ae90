package expense

import (
	"context"
	"sort"
	"strings"
	"time"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/audit"
	"restoran-pos/internal/database"
	"restoran-pos/internal/dates"
	"restoran-pos/internal/models"

	"github.com/google/uuid"
)

const (
	entityType           = "expense"
	minDescriptionLength = 3

	msgNotFound = "expense not found"
)

type Input struct {
	Description string
	Amount      float64
	Date        time.Time // zero means now
	Category    string
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type Summary struct {
	Items      []CategoryTotal `json:"items"`
	GrandTotal float64         `json:"grandTotal"`
}

type Service struct {
	store database.Store
	now   func() time.Time
}

func NewService(store database.Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Add(ctx context.Context, in Input) (models.Expense, error) {
	description := strings.TrimSpace(in.Description)
	if len([]rune(description)) < minDescriptionLength {
		return models.Expense{}, apperr.Validation("description must be at least 3 characters")
	}
	if in.Amount <= 0 {
		return models.Expense{}, apperr.Validation("amount must be a positive number")
	}
	at := in.Date
	if at.IsZero() {
		at = s.now()
	}

	e := models.Expense{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      in.Amount,
		Date:        at.UnixMilli(),
		Category:    strings.TrimSpace(in.Category),
	}
	err := s.store.Update(ctx, func(doc *models.Document) error {
		doc.Expenses = append(doc.Expenses, e)
		audit.Record(ctx, doc, s.now(), audit.Entry{
			EntityType:  entityType,
			EntityID:    e.ID,
			Action:      models.AuditActionCreate,
			Description: "expense added: " + e.Description,
			After:       e,
		})
		return nil
	})
	if err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

// List returns the expenses dated inside r, newest first.
func (s *Service) List(ctx context.Context, r dates.Range) ([]models.Expense, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var out []models.Expense
	err := s.store.View(ctx, func(doc *models.Document) error {
		out = make([]models.Expense, 0, len(doc.Expenses))
		for _, e := range doc.Expenses {
			if r.Contains(e.Date) {
				out = append(out, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *models.Document) error {
		i := doc.ExpenseIndex(id)
		if i < 0 {
			return apperr.NotFound(msgNotFound)
		}
		removed := doc.Expenses[i]
		doc.Expenses = append(doc.Expenses[:i], doc.Expenses[i+1:]...)

		audit.Record(ctx, doc, s.now(), audit.Entry{
			EntityType:  entityType,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "expense deleted: " + removed.Description,
			Before:      removed,
		})
		return nil
	})
}

// Summarize totals the expenses in r per category, largest first.
// Expenses without a category are grouped under "other".
func (s *Service) Summarize(ctx context.Context, r dates.Range) (Summary, error) {
	list, err := s.List(ctx, r)
	if err != nil {
		return Summary{}, err
	}

	index := make(map[string]int)
	res := Summary{Items: make([]CategoryTotal, 0)}
	for _, e := range list {
		cat := e.Category
		if cat == "" {
			cat = "other"
		}
		i, ok := index[cat]
		if !ok {
			i = len(res.Items)
			index[cat] = i
			res.Items = append(res.Items, CategoryTotal{Category: cat})
		}
		res.Items[i].Total += e.Amount
		res.GrandTotal += e.Amount
	}

	sort.SliceStable(res.Items, func(i, j int) bool { return res.Items[i].Total > res.Items[j].Total })
	return res, nil
}
