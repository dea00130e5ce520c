package domain

import "time"

// SessionClaims is the verified payload recovered from a session token.
// SubjectID is the only key used for ownership decisions.
type SessionClaims struct {
	SubjectID ID        `json:"subject_id"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session carries the admin role.
func (c *SessionClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
