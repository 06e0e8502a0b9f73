package services

import "errors"

// Sentinel errors the controllers map to HTTP status codes. Validation
// failures wrap ErrInvalid so the message survives to the response body.
var (
	ErrInvalid      = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)
