package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lidmar/site-api/internal/core/domain"
)

const DefaultSessionTTL = 24 * time.Hour

// sessionClaims is the JWT payload. The subject is the decimal user id.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SessionIssuer mints and validates stateless HS256 session tokens. There is
// no revocation list: a token stays valid until it expires.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// IssuerOption customises a SessionIssuer.
type IssuerOption func(*SessionIssuer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) IssuerOption {
	return func(s *SessionIssuer) { s.now = now }
}

func NewSessionIssuer(secret string, ttl time.Duration, opts ...IssuerOption) *SessionIssuer {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &SessionIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the configured session lifetime.
func (s *SessionIssuer) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for identity. Expiry is issuedAt + TTL.
func (s *SessionIssuer) Issue(identity *domain.Identity) (string, *domain.SessionClaims, error) {
	if len(s.secret) == 0 {
		return "", nil, fmt.Errorf("issue session: signing secret: %w", domain.ErrNotConfigured)
	}
	if identity == nil || identity.ID <= 0 {
		return "", nil, errors.New("issue session: identity without id")
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}

	return signed, &domain.SessionClaims{
		SubjectID: identity.ID,
		Role:      identity.Role,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate verifies signature, algorithm and expiry. Every failure collapses
// into ErrUnauthenticated.
func (s *SessionIssuer) Validate(token string) (*domain.SessionClaims, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("validate session: signing secret: %w", domain.ErrNotConfigured)
	}
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)

	var claims sessionClaims
	tkn, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, domain.ErrUnauthenticated
	}

	subject, err := domain.ParseID(claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.SessionClaims{
		SubjectID: subject,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
