package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/lidmar/site-api/internal/api/middleware"
	"github.com/lidmar/site-api/internal/core/domain"
)

// ctxClaims returns the claims injected by the Auth middleware. Routes that
// require a session fail fast here; the page gate repeats the check itself.
func ctxClaims(c echo.Context) (*domain.SessionClaims, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}

// optionalClaims returns the caller's claims, or nil for anonymous callers.
func optionalClaims(c echo.Context) *domain.SessionClaims {
	return middleware.Claims(c)
}

type successResponse struct {
	Success bool `json:"success"`
}

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}
