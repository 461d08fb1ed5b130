package ports

import (
	"context"
	"time"

	"stockist/contexts/catalog/availability-service/domain/entities"
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

type AvailabilityRepository interface {
	GetRecord(ctx context.Context, recordID string) (entities.AvailabilityRecord, error)
	// GetByPair enforces the one-record-per-(product, store) rule on the
	// write path.
	GetByPair(ctx context.Context, productID, storeID string) (entities.AvailabilityRecord, bool, error)
	ListByStore(ctx context.Context, storeID string) ([]entities.AvailabilityRecord, error)
	CreateRecord(ctx context.Context, record entities.AvailabilityRecord) error
	UpdateRecord(ctx context.Context, record entities.AvailabilityRecord) error
}

type ModerationUpdate struct {
	Status           trustpolicy.ModerationStatus
	NeedsReview      bool
	ReviewedByUserID string
	ReviewedAt       time.Time
}

type ModerationWriter interface {
	SetModeration(ctx context.Context, recordID string, update ModerationUpdate) error
}

type ReportResult struct {
	RecordID    string
	Status      trustpolicy.ModerationStatus
	NeedsReview bool
}
