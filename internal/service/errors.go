package service

import "errors"

// Error kinds surfaced verbatim to handlers. Services wrap these with
// fmt.Errorf("%w: ...") so callers can branch with errors.Is.
var (
	// ErrValidation marks malformed or missing caller input.
	ErrValidation = errors.New("validation failed")
	// ErrLimitExceeded marks the saved-meal cap.
	ErrLimitExceeded = errors.New("limit exceeded")
	// ErrNotFound marks a referenced id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an id that exists but belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrStorage marks a persistence or object-storage failure. Retrying is
	// the caller's decision; nothing here retries internally.
	ErrStorage = errors.New("storage unavailable")
)
