package errors

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid catalog request")
	ErrProductNotFound = errors.New("product not found")
	// ErrProductArchived marks an id that exists but is hidden from
	// unprivileged callers. Kept distinct from ErrProductNotFound so the
	// transport layer can answer 403 instead of 404.
	ErrProductArchived  = errors.New("product archived")
	ErrFieldNotEditable = errors.New("product field not editable")
	ErrDuplicateProduct = errors.New("product already exists")
)
