package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lidmar/site-api/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps a domain error to its HTTP rendering. An empty message
// means the error text itself is shown to the client.
type errorStatus struct {
	target  error
	code    int
	message string
}

// Order matters: the first match wins.
var errorStatuses = []errorStatus{
	{domain.ErrNotConfigured, http.StatusServiceUnavailable, "service not configured"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrPageNotFound, http.StatusNotFound, "page not found"},
	{domain.ErrInvalidID, http.StatusNotFound, "page not found"},
	{domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
	{domain.ErrContentNotFound, http.StatusNotFound, "site content not found"},
	{domain.ErrValidation, http.StatusBadRequest, ""},
	{domain.ErrUnknownField, http.StatusBadRequest, ""},
}

// NewHTTPErrorHandler renders every error as {"error": "..."}. Unknown errors
// become a logged 500 with a generic message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		switch {
		case code == http.StatusServiceUnavailable:
			log.Warn().Err(err).Str("path", c.Path()).Msg("request hit an unconfigured dependency")
		case code >= http.StatusInternalServerError:
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, s := range errorStatuses {
		if errors.Is(err, s.target) {
			if s.message == "" {
				return s.code, err.Error()
			}
			return s.code, s.message
		}
	}
	return http.StatusInternalServerError, "internal server error"
}
