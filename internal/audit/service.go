package audit

import (
	"context"
	"encoding/json"
	"time"

	"restoran-pos/internal/database"
	"restoran-pos/internal/models"

	"github.com/google/uuid"
)

// MaxEntries caps the trail kept in the document; older entries are dropped.
const MaxEntries = 500

type Actor struct {
	ID       string
	Username string
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

type Entry struct {
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Record appends e to doc's audit trail. Call it from inside the
// Store.Update that performs the change so both are saved together.
func Record(ctx context.Context, doc *models.Document, at time.Time, e Entry) {
	entry := models.AuditLog{
		ID:          uuid.NewString(),
		Timestamp:   at.UnixMilli(),
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Description: e.Description,
		Before:      marshal(e.Before),
		After:       marshal(e.After),
	}
	if a, ok := ActorFrom(ctx); ok {
		entry.UserID = a.ID
		entry.Username = a.Username
	}

	doc.AuditLogs = append(doc.AuditLogs, entry)
	if n := len(doc.AuditLogs); n > MaxEntries {
		doc.AuditLogs = append([]models.AuditLog(nil), doc.AuditLogs[n-MaxEntries:]...)
	}
}

func marshal(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

type Filter struct {
	EntityType string
	EntityID   string
	UserID     string
	Limit      int // 0 means all
}

func (f Filter) match(l models.AuditLog) bool {
	if f.EntityType != "" && l.EntityType != f.EntityType {
		return false
	}
	if f.EntityID != "" && l.EntityID != f.EntityID {
		return false
	}
	if f.UserID != "" && l.UserID != f.UserID {
		return false
	}
	return true
}

type Service struct {
	store database.Store
}

func NewService(store database.Store) *Service {
	return &Service{store: store}
}

// List returns matching entries, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]models.AuditLog, error) {
	var out []models.AuditLog
	err := s.store.View(ctx, func(doc *models.Document) error {
		out = make([]models.AuditLog, 0)
		for i := len(doc.AuditLogs) - 1; i >= 0; i-- {
			if !f.match(doc.AuditLogs[i]) {
				continue
			}
			out = append(out, doc.AuditLogs[i])
			if f.Limit > 0 && len(out) == f.Limit {
				break
			}
		}
		return nil
	})
	return out, err
}
