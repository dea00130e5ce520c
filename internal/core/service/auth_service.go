package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
	"github.com/lidmar/site-api/internal/pkg/metrics"
)

// dummyHash is compared against when the email is unknown so both rejection
// paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// AuthService verifies credentials and issues sessions.
type AuthService struct {
	repo   ports.AuthRepository
	issuer *SessionIssuer
	log    zerolog.Logger
}

// NewAuthService wires the verifier. repo may be nil when no database is
// configured; every call then fails with ErrNotConfigured.
func NewAuthService(repo ports.AuthRepository, issuer *SessionIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, log: log}
}

// Authenticate returns the identity behind email/password. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		s.log.Debug().Msg("login rejected: missing email or password")
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if s.repo == nil {
		s.log.Error().Msg("login unavailable: user store not configured (DATABASE_URL)")
		metrics.LoginAttemptsTotal.WithLabelValues("unavailable").Inc()
		return nil, fmt.Errorf("authenticate: user store: %w", domain.ErrNotConfigured)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.log.Info().Str("email", email).Msg("login rejected: user not found")
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Str("email", email).Msg("login failed: user lookup")
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Info().Str("email", email).Str("user_id", user.ID.String()).Msg("login rejected: password mismatch")
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return user.Identity(), nil
}

// Login authenticates and mints a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	identity, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, claims, err := s.issuer.Issue(identity)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", identity.ID.String()).Msg("session issue failed")
		return nil, err
	}

	s.log.Info().Str("user_id", identity.ID.String()).Str("role", identity.Role).Msg("login succeeded")
	return &ports.LoginResult{Token: token, Claims: claims, Identity: identity}, nil
}

// Register creates a user. It is used by cmd/seed only; there is no public
// sign-up route.
func (s *AuthService) Register(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" || !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: email, password and a known role are required", domain.ErrValidation)
	}
	if s.repo == nil {
		return nil, fmt.Errorf("register: user store: %w", domain.ErrNotConfigured)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}
