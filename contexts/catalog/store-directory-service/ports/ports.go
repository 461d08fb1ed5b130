package ports

import (
	"context"
	"time"

	"stockist/contexts/catalog/store-directory-service/domain/entities"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}

type ContributorDirectory interface {
	ResolveContributor(ctx context.Context, userID string) (trustpolicy.Contributor, bool, error)
}

// StoreFilter narrows directory reads. The duplicate checker lists by type
// and matches in memory; name matching rules live in the domain service, not
// in the repository.
type StoreFilter struct {
	Query string
	Type  entities.StoreType
}

type StoreRepository interface {
	GetStore(ctx context.Context, storeID string) (entities.DirectoryStore, error)
	ListStores(ctx context.Context, filter StoreFilter) ([]entities.DirectoryStore, error)
	CreateStore(ctx context.Context, store entities.DirectoryStore) error
	UpdateStore(ctx context.Context, store entities.DirectoryStore) error
}

type ModerationUpdate struct {
	Status           trustpolicy.ModerationStatus
	NeedsReview      bool
	ReviewedByUserID string
	ReviewedAt       time.Time
}

type ModerationWriter interface {
	SetModeration(ctx context.Context, storeID string, update ModerationUpdate) error
}

type SubmitStoreResult struct {
	StoreID     string
	Status      trustpolicy.ModerationStatus
	NeedsReview bool
}
