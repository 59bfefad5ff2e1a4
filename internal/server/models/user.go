package models

import "time"

// Roles a user can hold. Admin passes both the admin-only and the
// any-authenticated checks; there is no further hierarchy.
const (
	RoleAdmin  = "admin"
	RoleCommon = "common"
)

// User is the persisted account record. SessionToken holds the single
// currently-valid session token for the user; overwriting it on login
// revokes every previously issued token.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	SessionToken string     `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Sanitized is the projection of a user that is safe to hand to callers.
// It never carries the password hash or the raw session token.
type Sanitized struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Sanitize returns the caller-safe projection of u.
func (u *User) Sanitize() *Sanitized {
	return &Sanitized{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
