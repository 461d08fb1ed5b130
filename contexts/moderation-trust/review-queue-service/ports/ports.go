package ports

import (
	"context"
	"time"

	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Clock interface {
	Now() time.Time
}

type ContributorDirectory interface {
	ResolveContributor(ctx context.Context, userID string) (trustpolicy.Contributor, bool, error)
}

type IdempotencyRecord struct {
	Key         string
	RequestHash string
	Payload     []byte
	ExpiresAt   time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	Put(ctx context.Context, record IdempotencyRecord) error
}

// EntityState is the moderation view of one contributed entity, as reported
// by the owning service.
type EntityState struct {
	Kind        trustpolicy.EntityKind
	EntityID    string
	Summary     string
	Status      trustpolicy.ModerationStatus
	NeedsReview bool
	CreatedBy   string
	CreatedAt   time.Time
}

// ModerationClient is implemented per entity kind by the owning service's
// module. The review queue never touches another context's storage directly.
type ModerationClient interface {
	GetState(ctx context.Context, entityID string) (EntityState, error)
	// ListOpen returns entities awaiting attention: pending ones plus live
	// ones still flagged needs-review.
	ListOpen(ctx context.Context) ([]EntityState, error)
	SetModeration(ctx context.Context, entityID string, status trustpolicy.ModerationStatus, needsReview bool, reviewerID string, at time.Time) error
}

type QueueFilter struct {
	Kind        trustpolicy.EntityKind
	Status      string
	NeedsReview *bool
	Limit       int
	Offset      int
}

type ReviewActionInput struct {
	Kind     trustpolicy.EntityKind
	EntityID string
	Reason   string
	Notes    string
}

type DecisionRecord struct {
	DecisionID string
	Kind       trustpolicy.EntityKind
	EntityID   string
	ReviewerID string
	Action     string
	Reason     string
	Notes      string
	CreatedAt  time.Time
}

type DecisionStore interface {
	RecordDecision(ctx context.Context, record DecisionRecord, now time.Time) (DecisionRecord, error)
	ListDecisions(ctx context.Context, kind trustpolicy.EntityKind, entityID string) ([]DecisionRecord, error)
}
