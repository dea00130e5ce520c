package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/lidmar/site-api/internal/core/domain"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not configured", fmt.Errorf("page store: %w", domain.ErrNotConfigured), http.StatusServiceUnavailable, "service not configured"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"missing page", domain.ErrPageNotFound, http.StatusNotFound, "page not found"},
		{"malformed id looks missing", fmt.Errorf("%w: \"012\"", domain.ErrInvalidID), http.StatusNotFound, "page not found"},
		{"missing product", domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{"validation shows detail", fmt.Errorf("%w: title is required", domain.ErrValidation), http.StatusBadRequest, "validation failed: title is required"},
		{"unknown field", fmt.Errorf("%w: \"x\"", domain.ErrUnknownField), http.StatusBadRequest, "unknown content field: \"x\""},
		{"echo error", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big"), http.StatusRequestEntityTooLarge, "too big"},
		{"unexpected", errors.New("pq: connection reset"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := resolveError(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestHTTPErrorHandler_DoesNotLeakInternals(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/pages/1", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("password=hunter2"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestHTTPErrorHandler_Head(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/v1/pages/9", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrPageNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
