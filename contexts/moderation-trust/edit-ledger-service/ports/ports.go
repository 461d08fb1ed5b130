package ports

import (
	"context"
	"time"

	"stockist/contexts/moderation-trust/edit-ledger-service/domain/entities"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ContributorDirectory resolves the acting caller's contributor record.
// A missing record is not an error: the caller is classified Regular.
type ContributorDirectory interface {
	ResolveContributor(ctx context.Context, userID string) (trustpolicy.Contributor, bool, error)
}

// TargetStore reads and mutates single fields on live entities. ReadField
// returns ErrTargetNotFound for missing targets regardless of kind; the
// service decides whether the kind materializes lazily.
type TargetStore interface {
	ReadField(ctx context.Context, target entities.TargetRef, field string) (string, error)
	ApplyField(ctx context.Context, target entities.TargetRef, field string, value string, now time.Time) error
}

type SuggestionFilter struct {
	TargetKind  trustpolicy.EntityKind
	TargetID    string
	UserID      string
	Status      trustpolicy.ModerationStatus
	NeedsReview *bool
	Limit       int
	Offset      int
}

// LedgerStore is the append-only suggestion ledger. Review mutations touch
// only the review columns; payload columns are immutable after append.
type LedgerStore interface {
	AppendSuggestion(ctx context.Context, suggestion entities.EditSuggestion) error
	GetSuggestion(ctx context.Context, suggestionID string) (entities.EditSuggestion, error)
	ListSuggestions(ctx context.Context, filter SuggestionFilter) ([]entities.EditSuggestion, error)
	UpdateSuggestionReview(ctx context.Context, suggestion entities.EditSuggestion) error
}

type EventEnvelope struct {
	EventID    string
	EventType  string
	EntityType string
	EntityID   string
	OccurredAt time.Time
	Payload    []byte
}

type OutboxMessage struct {
	ID         string
	EventType  string
	EntityType string
	EntityID   string
	Payload    []byte
	Status     string
	RetryCount int
	CreatedAt  time.Time
}

type OutboxRepository interface {
	AppendOutbox(ctx context.Context, message OutboxMessage) error
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, id string, publishedAt time.Time) error
	MarkOutboxFailed(ctx context.Context, id string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EditResult is what a contributor is told about their submission. Applied
// mirrors AutoApplied on the ledger row; pending suggestions always report
// Applied=false.
type EditResult struct {
	SuggestionID string
	Status       trustpolicy.ModerationStatus
	Applied      bool
	NeedsReview  bool
}
