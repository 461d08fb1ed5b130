package queries

import (
	"context"
	"errors"
	"strings"

	"stockist/contexts/catalog/catalog-service/domain/entities"
	domainerrors "stockist/contexts/catalog/catalog-service/domain/errors"
	"stockist/contexts/catalog/catalog-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// ResolveProductQuery fetches one catalog entry by id. AllowArchived is a
// capability, not a filter: privileged callers see archived records as a
// normal result while everyone else gets a forbidden error.
type ResolveProductQuery struct {
	ProductID     string
	AllowArchived bool
}

type ResolveUseCase struct {
	Canonical   ports.CanonicalRepository
	Contributed ports.ContributedRepository
}

// Resolve walks the dual-source priority order: an eligible shadow override
// wins over the canonical record, the canonical record wins over a standalone
// contributed product that happens to share the id. Resolution is computed on
// every call; nothing is cached.
func (uc ResolveUseCase) Resolve(ctx context.Context, query ResolveProductQuery) (entities.CatalogEntry, error) {
	productID := strings.TrimSpace(query.ProductID)
	if productID == "" {
		return entities.CatalogEntry{}, domainerrors.ErrInvalidRequest
	}

	shadow, found, err := uc.Contributed.GetShadowFor(ctx, productID)
	if err != nil {
		return entities.CatalogEntry{}, err
	}
	if found && shadowEligible(shadow) {
		return entities.CatalogEntry{Source: entities.SourceOverride, Contributed: &shadow}, nil
	}

	canonical, err := uc.Canonical.GetCanonical(ctx, productID)
	switch {
	case err == nil:
		if canonical.Archived && !query.AllowArchived {
			return entities.CatalogEntry{}, domainerrors.ErrProductArchived
		}
		return entities.CatalogEntry{Source: entities.SourceCanonical, Canonical: &canonical}, nil
	case !errors.Is(err, domainerrors.ErrProductNotFound):
		return entities.CatalogEntry{}, err
	}

	contributed, err := uc.Contributed.GetContributed(ctx, productID)
	switch {
	case err == nil:
		if contributed.Status != trustpolicy.StatusApproved {
			return entities.CatalogEntry{}, domainerrors.ErrProductNotFound
		}
		if contributed.Archived && !query.AllowArchived {
			return entities.CatalogEntry{}, domainerrors.ErrProductArchived
		}
		return entities.CatalogEntry{Source: entities.SourceContributed, Contributed: &contributed}, nil
	case errors.Is(err, domainerrors.ErrProductNotFound):
		return entities.CatalogEntry{}, domainerrors.ErrProductNotFound
	default:
		return entities.CatalogEntry{}, err
	}
}

// shadowEligible gates the override step: only an approved, non-archived
// shadow replaces its canonical source. Anything else falls through to the
// canonical record.
func shadowEligible(shadow entities.ContributedProduct) bool {
	return shadow.Status == trustpolicy.StatusApproved && !shadow.Archived
}
