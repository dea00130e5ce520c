package ports

import (
	"context"

	"github.com/lidmar/site-api/internal/core/domain"
)

// CreatePageInput carries the fields accepted when a page is created.
type CreatePageInput struct {
	Title   string
	Content string
}

// PageView is a page as seen by a particular viewer.
type PageView struct {
	Page    *domain.Page
	CanEdit bool
}

// PageService exposes the page use cases. viewer/claims are nil for
// anonymous callers.
type PageService interface {
	Get(ctx context.Context, viewer *domain.SessionClaims, id string) (*PageView, error)
	ListMine(ctx context.Context, claims *domain.SessionClaims) ([]*domain.Page, error)
	Create(ctx context.Context, claims *domain.SessionClaims, input CreatePageInput) (*domain.Page, error)
	Update(ctx context.Context, claims *domain.SessionClaims, id string, update domain.PageUpdate) (*domain.Page, error)
	Delete(ctx context.Context, claims *domain.SessionClaims, id string) error
}
