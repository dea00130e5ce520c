package ports

import (
	"context"

	"github.com/lidmar/site-api/internal/core/domain"
)

// PageRepository is the document store for pages. It performs no ownership
// checks of its own: every mutating call must come from a caller that has
// already passed the authorization gate.
type PageRepository interface {
	FindByID(ctx context.Context, id domain.ID) (*domain.Page, error)
	ListByOwner(ctx context.Context, ownerID domain.ID) ([]*domain.Page, error)
	Create(ctx context.Context, ownerID domain.ID, title, content string) (*domain.Page, error)
	// Update applies a coalescing partial update and refreshes updated_at.
	Update(ctx context.Context, id domain.ID, update domain.PageUpdate) (*domain.Page, error)
	Delete(ctx context.Context, id domain.ID) error
}
