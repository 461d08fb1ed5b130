package errors

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid availability request")
	ErrRecordNotFound = errors.New("availability record not found")
	// ErrDuplicateAvailability guards the (product, store) uniqueness rule.
	// The aggregator also raises it when it meets a duplicate pair that the
	// write path should have prevented.
	ErrDuplicateAvailability = errors.New("duplicate availability record")
)
