package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/audit"
	"restoran-pos/internal/database"
	"restoran-pos/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	entityType        = "user"
	minUsernameLength = 3
	minPasswordLength = 4
	maxPasswordBytes  = 72 // bcrypt input limit

	msgBadCredentials = "username or password incorrect"
	msgUserNotFound   = "user not found"
	msgLastAdmin      = "cannot delete the last admin"
)

// dummyHash is compared against when the username is unknown so a failed
// lookup costs as much as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("restoran-pos"), bcrypt.DefaultCost)
	return h
})

type UserInput struct {
	Username string
	Password string
	Role     models.UserRole
}

type Service struct {
	store database.Store
	now   func() time.Time
	cost  int
}

func NewService(store database.Store) *Service {
	return &Service{store: store, now: time.Now, cost: bcrypt.DefaultCost}
}

func (s *Service) Login(ctx context.Context, username, password string) (models.UserView, error) {
	if username == "" || password == "" {
		return models.UserView{}, apperr.Validation("username and password are required")
	}

	var user models.User
	found := false
	err := s.store.View(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Username == username {
				user, found = u, true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return models.UserView{}, err
	}

	if !found {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return models.UserView{}, apperr.Unauthorized(msgBadCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.UserView{}, apperr.Unauthorized(msgBadCredentials)
	}
	return user.View(), nil
}

// Get returns the current view of a user; tokens outlive role changes, so
// /me reads the stored record instead of trusting the claims.
func (s *Service) Get(ctx context.Context, id string) (models.UserView, error) {
	var view models.UserView
	err := s.store.View(ctx, func(doc *models.Document) error {
		i := doc.UserIndex(id)
		if i < 0 {
			return apperr.NotFound(msgUserNotFound)
		}
		view = doc.Users[i].View()
		return nil
	})
	return view, err
}

func (s *Service) ListUsers(ctx context.Context) ([]models.UserView, error) {
	var users []models.UserView
	err := s.store.View(ctx, func(doc *models.Document) error {
		users = make([]models.UserView, 0, len(doc.Users))
		for _, u := range doc.Users {
			users = append(users, u.View())
		}
		return nil
	})
	return users, err
}

func (s *Service) AddUser(ctx context.Context, in UserInput) (models.UserView, error) {
	username := strings.TrimSpace(in.Username)
	if len([]rune(username)) < minUsernameLength {
		return models.UserView{}, apperr.Validation("username must be at least 3 characters")
	}
	if len([]rune(in.Password)) < minPasswordLength {
		return models.UserView{}, apperr.Validation("password must be at least 4 characters")
	}
	if len(in.Password) > maxPasswordBytes {
		return models.UserView{}, apperr.Validation("password must be at most 72 bytes")
	}
	if !in.Role.Valid() {
		return models.UserView{}, apperr.Validation("role must be admin or cashier")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return models.UserView{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         in.Role,
	}

	err = s.store.Update(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Username == user.Username {
				return apperr.Conflict("username already exists")
			}
		}
		doc.Users = append(doc.Users, user)
		audit.Record(ctx, doc, s.now(), audit.Entry{
			EntityType:  entityType,
			EntityID:    user.ID,
			Action:      models.AuditActionCreate,
			Description: "user added: " + user.Username,
			After:       user.View(),
		})
		return nil
	})
	if err != nil {
		return models.UserView{}, err
	}
	return user.View(), nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *models.Document) error {
		i := doc.UserIndex(id)
		if i < 0 {
			return apperr.NotFound(msgUserNotFound)
		}
		removed := doc.Users[i]
		if removed.Role == models.RoleAdmin && doc.AdminCount() <= 1 {
			return apperr.Validation(msgLastAdmin)
		}
		doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)

		audit.Record(ctx, doc, s.now(), audit.Entry{
			EntityType:  entityType,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "user deleted: " + removed.Username,
			Before:      removed.View(),
		})
		return nil
	})
}
