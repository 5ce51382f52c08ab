// Package pkg holds utilities shared across layers.
// This file defines the domain-level errors.
//
// Services wrap these with fmt.Errorf("%w: ...") and the HTTP layer maps
// them to status codes with errors.Is, so wrapped errors still match:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

// Domain-level errors.
// Handlers map them to HTTP status codes (see mapErrorToStatus).
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyExists   = errors.New("already exists")
	ErrBadRequest      = errors.New("bad request")
	ErrTooManyRequests = errors.New("too many requests")
	ErrInternal        = errors.New("internal error")
)
