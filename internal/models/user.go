package models

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCashier UserRole = "cashier"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleCashier
}

type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	Password     string   `json:"password,omitempty"` // legacy plaintext, hashed on load
	Role         UserRole `json:"role"`
}

// UserView is the only user shape that leaves the domain layer.
type UserView struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

func (u User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, Role: u.Role}
}
