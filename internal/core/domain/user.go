package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// User models an account able to sign in. Users are created out-of-band
// (cmd/seed) and never mutated by request handlers.
type User struct {
	ID           ID        `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is what the credential verifier hands to the session issuer.
type Identity struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Identity strips credential material from the user.
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// NormalizeEmail is applied both when users are stored and when they are looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
