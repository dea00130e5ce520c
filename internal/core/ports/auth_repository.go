package ports

import (
	"context"

	"github.com/lidmar/site-api/internal/core/domain"
)

// AuthRepository defines user persistence used by the credential verifier
// and by the out-of-band seeding command.
type AuthRepository interface {
	// FindByEmail looks up exactly one user by normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
