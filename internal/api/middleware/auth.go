package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
)

// ClaimsKey is the echo context key holding *domain.SessionClaims.
const ClaimsKey = "session_claims"

// Auth validates the bearer session token and injects claims into context.
// Requests without a valid session never reach next.
func Auth(sessions ports.SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := sessions.Validate(token)
			if err != nil {
				if errors.Is(err, domain.ErrNotConfigured) {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "service not configured")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			setClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth injects claims when a valid session is presented and lets
// every other request through as anonymous.
func OptionalAuth(sessions ports.SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return next(c)
			}
			token, err := bearerToken(c)
			if err != nil {
				return next(c)
			}
			if claims, err := sessions.Validate(token); err == nil {
				setClaims(c, claims)
			}
			return next(c)
		}
	}
}

// Claims returns the session claims set by Auth or OptionalAuth, or nil.
func Claims(c echo.Context) *domain.SessionClaims {
	claims, _ := c.Get(ClaimsKey).(*domain.SessionClaims)
	return claims
}

func setClaims(c echo.Context, claims *domain.SessionClaims) {
	c.Set(ClaimsKey, claims)
	c.Set("role", claims.Role)
	c.Set("user_id", claims.SubjectID.String())
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
