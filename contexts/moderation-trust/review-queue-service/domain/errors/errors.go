package errors

import "errors"

var (
	ErrInvalidRequest          = errors.New("invalid review request")
	ErrEntityNotFound          = errors.New("entity not found")
	ErrUnsupportedKind         = errors.New("entity kind not moderated here")
	ErrInvalidStatusTransition = errors.New("invalid moderation transition")
	ErrUnauthorizedReviewer    = errors.New("reviewer not authorized")
	ErrIdempotencyKeyRequired  = errors.New("idempotency key required")
	ErrIdempotencyConflict     = errors.New("idempotency key reused with a different request")
)
