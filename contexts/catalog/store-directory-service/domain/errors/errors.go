package errors

import (
	"errors"
	"fmt"

	"stockist/contexts/catalog/store-directory-service/domain/entities"
)

var (
	ErrInvalidRequest   = errors.New("invalid store request")
	ErrStoreNotFound    = errors.New("store not found")
	ErrStoreHidden      = errors.New("store not visible")
	ErrFieldNotEditable = errors.New("store field not editable")
	ErrDuplicateStore   = errors.New("duplicate store")
	ErrSimilarStores    = errors.New("similar stores found")
)

// DuplicateStoreError blocks a submission whose identity collides with an
// existing listing. It matches ErrDuplicateStore under errors.Is and carries
// the conflicting record so callers can show it.
type DuplicateStoreError struct {
	Existing entities.DirectoryStore
}

func (e *DuplicateStoreError) Error() string {
	return fmt.Sprintf("duplicate store: conflicts with %s", e.Existing.StoreID)
}

func (e *DuplicateStoreError) Is(target error) bool {
	return target == ErrDuplicateStore
}

// SimilarStoresError is advisory: the submission may proceed when the caller
// explicitly overrides. Matches ErrSimilarStores under errors.Is.
type SimilarStoresError struct {
	Similar []entities.DirectoryStore
}

func (e *SimilarStoresError) Error() string {
	return fmt.Sprintf("similar stores found: %d candidates", len(e.Similar))
}

func (e *SimilarStoresError) Is(target error) bool {
	return target == ErrSimilarStores
}
