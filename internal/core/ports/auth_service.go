package ports

import (
	"context"

	"github.com/lidmar/site-api/internal/core/domain"
)

// LoginResult is returned after a successful sign-in.
type LoginResult struct {
	Token    string
	Claims   *domain.SessionClaims
	Identity *domain.Identity
}

type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// SessionValidator turns a bearer token into verified claims.
type SessionValidator interface {
	Validate(token string) (*domain.SessionClaims, error)
}
