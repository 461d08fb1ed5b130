package errors

import "errors"

var (
	ErrInvalidRequest          = errors.New("invalid request")
	ErrTargetNotFound          = errors.New("edit target not found")
	ErrFieldNotAllowed         = errors.New("field is not editable for this entity kind")
	ErrNoOpEdit                = errors.New("suggested value equals the current value")
	ErrSuggestionNotFound      = errors.New("edit suggestion not found")
	ErrInvalidStatusTransition = errors.New("invalid suggestion status transition")
	ErrUnauthorizedActor       = errors.New("actor is not authorized")
)
