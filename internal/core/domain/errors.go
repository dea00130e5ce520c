package domain

import "errors"

// Configuration errors: a required collaborator (store, signing secret) is absent.
var ErrNotConfigured = errors.New("service not configured")

// Authentication errors.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authorization errors.
var ErrForbidden = errors.New("access forbidden")

// Lookup errors.
var (
	ErrInvalidID       = errors.New("invalid identifier")
	ErrPageNotFound    = errors.New("page not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrProductNotFound = errors.New("product not found")
	ErrContentNotFound = errors.New("site content not found")
)

// Input errors.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnknownField = errors.New("unknown content field")
)
