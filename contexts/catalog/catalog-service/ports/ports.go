package ports

import (
	"context"
	"time"

	"stockist/contexts/catalog/catalog-service/domain/entities"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}

// ContributorDirectory resolves the trust classification inputs for a user.
type ContributorDirectory interface {
	ResolveContributor(ctx context.Context, userID string) (trustpolicy.Contributor, bool, error)
}

// CatalogFilter narrows listing reads. Pagination is deliberately absent:
// the merged listing paginates after combining both collections, so
// repositories return the full matching set.
type CatalogFilter struct {
	Query    string
	Brand    string
	Category string
}

// CanonicalRepository reads the imported catalog. The import pipeline owns
// writes; this service never mutates canonical rows.
type CanonicalRepository interface {
	GetCanonical(ctx context.Context, productID string) (entities.CanonicalProduct, error)
	ListCanonical(ctx context.Context, filter CatalogFilter) ([]entities.CanonicalProduct, error)
}

// ContributedRepository stores user-originated products and shadow overrides.
type ContributedRepository interface {
	GetContributed(ctx context.Context, productID string) (entities.ContributedProduct, error)
	// GetShadowFor returns the shadow record whose SourceProductID matches
	// the given canonical id, regardless of moderation state. Callers decide
	// whether the shadow is eligible to override.
	GetShadowFor(ctx context.Context, sourceProductID string) (entities.ContributedProduct, bool, error)
	ListContributed(ctx context.Context, filter CatalogFilter) ([]entities.ContributedProduct, error)
	// ListShadows returns every shadow row regardless of moderation state or
	// filter. The merged listing needs the full set because a filter must run
	// against the override's effective values, not the canonical's.
	ListShadows(ctx context.Context) ([]entities.ContributedProduct, error)
	CreateContributed(ctx context.Context, product entities.ContributedProduct) error
	UpdateContributed(ctx context.Context, product entities.ContributedProduct) error
}

// ModerationUpdate is applied by the review queue when an admin decides on a
// pending or flagged contributed product.
type ModerationUpdate struct {
	Status           trustpolicy.ModerationStatus
	NeedsReview      bool
	ReviewedByUserID string
	ReviewedAt       time.Time
}

// ModerationWriter lets the review queue change a contributed product's
// moderation state without reaching into the repository schema.
type ModerationWriter interface {
	SetModeration(ctx context.Context, productID string, update ModerationUpdate) error
}

// SubmitResult reports the moderation outcome of a new product submission.
type SubmitResult struct {
	ProductID   string
	Status      trustpolicy.ModerationStatus
	NeedsReview bool
}

// CatalogPage is one page of the merged listing.
type CatalogPage struct {
	Items []entities.CatalogSummary
	Total int
	Page  int
	Limit int
}
