// Package apperr defines the error taxonomy shared by services and handlers.
// Services wrap these sentinels with context via fmt.Errorf("...: %w", ...);
// handlers map them to HTTP status codes with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound covers missing tenants, products, orders, categories and
	// unresolvable slugs.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized covers missing or invalid sessions and ownership
	// violations.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict covers duplicate reviews, usernames, emails and slugs.
	ErrConflict = errors.New("conflict")
	// ErrBadRequest covers validation failures raised inside services.
	ErrBadRequest = errors.New("bad request")
)
