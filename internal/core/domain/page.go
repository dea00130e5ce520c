package domain

import "time"

// Page is a user-owned document. OwnerID is fixed at creation.
type Page struct {
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   ID        `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwnedBy compares the stored owner with a session subject.
func (p *Page) IsOwnedBy(subject ID) bool {
	return p.OwnerID == subject
}

// PageUpdate is a partial update: nil fields keep their stored value.
// There is deliberately no owner field.
type PageUpdate struct {
	Title   *string
	Content *string
}

// Empty reports whether the update carries no field at all.
func (u PageUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil
}

// PageOperation names a gated mutation for logs, metrics and audit records.
type PageOperation string

const (
	OpPageUpdate PageOperation = "update"
	OpPageDelete PageOperation = "delete"
)
