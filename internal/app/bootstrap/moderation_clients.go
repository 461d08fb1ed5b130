package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilitypg "stockist/contexts/catalog/availability-service/adapters/postgres"
	availabilityerrors "stockist/contexts/catalog/availability-service/domain/errors"
	availabilityports "stockist/contexts/catalog/availability-service/ports"
	catalogpg "stockist/contexts/catalog/catalog-service/adapters/postgres"
	catalogerrors "stockist/contexts/catalog/catalog-service/domain/errors"
	catalogports "stockist/contexts/catalog/catalog-service/ports"
	directorypg "stockist/contexts/catalog/store-directory-service/adapters/postgres"
	directoryerrors "stockist/contexts/catalog/store-directory-service/domain/errors"
	directoryports "stockist/contexts/catalog/store-directory-service/ports"
	reviewerrors "stockist/contexts/moderation-trust/review-queue-service/domain/errors"
	reviewports "stockist/contexts/moderation-trust/review-queue-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// Moderation clients adapt each owning service's repository to the review
// queue's per-kind port. They live in the composition root so the contexts
// never import each other.

type productModerationClient struct {
	repo *catalogpg.Repository
}

func (c productModerationClient) GetState(ctx context.Context, entityID string) (reviewports.EntityState, error) {
	product, err := c.repo.GetContributed(ctx, entityID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrProductNotFound) {
			return reviewports.EntityState{}, reviewerrors.ErrEntityNotFound
		}
		return reviewports.EntityState{}, err
	}
	return reviewports.EntityState{
		Kind:        trustpolicy.KindProduct,
		EntityID:    product.ProductID,
		Summary:     product.Name,
		Status:      product.Status,
		NeedsReview: product.NeedsReview,
		CreatedBy:   product.CreatedByUserID,
		CreatedAt:   product.CreatedAt,
	}, nil
}

func (c productModerationClient) ListOpen(ctx context.Context) ([]reviewports.EntityState, error) {
	products, err := c.repo.ListOpenContributed(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]reviewports.EntityState, 0, len(products))
	for _, product := range products {
		items = append(items, reviewports.EntityState{
			Kind:        trustpolicy.KindProduct,
			EntityID:    product.ProductID,
			Summary:     product.Name,
			Status:      product.Status,
			NeedsReview: product.NeedsReview,
			CreatedBy:   product.CreatedByUserID,
			CreatedAt:   product.CreatedAt,
		})
	}
	return items, nil
}

func (c productModerationClient) SetModeration(ctx context.Context, entityID string, status trustpolicy.ModerationStatus, needsReview bool, reviewerID string, at time.Time) error {
	err := c.repo.SetModeration(ctx, entityID, catalogports.ModerationUpdate{
		Status:           status,
		NeedsReview:      needsReview,
		ReviewedByUserID: reviewerID,
		ReviewedAt:       at,
	})
	if errors.Is(err, catalogerrors.ErrProductNotFound) {
		return reviewerrors.ErrEntityNotFound
	}
	return err
}

type storeModerationClient struct {
	repo *directorypg.Repository
}

func (c storeModerationClient) GetState(ctx context.Context, entityID string) (reviewports.EntityState, error) {
	store, err := c.repo.GetStore(ctx, entityID)
	if err != nil {
		if errors.Is(err, directoryerrors.ErrStoreNotFound) {
			return reviewports.EntityState{}, reviewerrors.ErrEntityNotFound
		}
		return reviewports.EntityState{}, err
	}
	return reviewports.EntityState{
		Kind:        trustpolicy.KindStore,
		EntityID:    store.StoreID,
		Summary:     store.Name,
		Status:      store.Status,
		NeedsReview: store.NeedsReview,
		CreatedBy:   store.CreatedByUserID,
		CreatedAt:   store.CreatedAt,
	}, nil
}

func (c storeModerationClient) ListOpen(ctx context.Context) ([]reviewports.EntityState, error) {
	stores, err := c.repo.ListOpenStores(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]reviewports.EntityState, 0, len(stores))
	for _, store := range stores {
		items = append(items, reviewports.EntityState{
			Kind:        trustpolicy.KindStore,
			EntityID:    store.StoreID,
			Summary:     store.Name,
			Status:      store.Status,
			NeedsReview: store.NeedsReview,
			CreatedBy:   store.CreatedByUserID,
			CreatedAt:   store.CreatedAt,
		})
	}
	return items, nil
}

func (c storeModerationClient) SetModeration(ctx context.Context, entityID string, status trustpolicy.ModerationStatus, needsReview bool, reviewerID string, at time.Time) error {
	err := c.repo.SetModeration(ctx, entityID, directoryports.ModerationUpdate{
		Status:           status,
		NeedsReview:      needsReview,
		ReviewedByUserID: reviewerID,
		ReviewedAt:       at,
	})
	if errors.Is(err, directoryerrors.ErrStoreNotFound) {
		return reviewerrors.ErrEntityNotFound
	}
	return err
}

type availabilityModerationClient struct {
	repo *availabilitypg.Repository
}

func (c availabilityModerationClient) GetState(ctx context.Context, entityID string) (reviewports.EntityState, error) {
	record, err := c.repo.GetRecord(ctx, entityID)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrRecordNotFound) {
			return reviewports.EntityState{}, reviewerrors.ErrEntityNotFound
		}
		return reviewports.EntityState{}, err
	}
	return reviewports.EntityState{
		Kind:        trustpolicy.KindAvailability,
		EntityID:    record.RecordID,
		Summary:     fmt.Sprintf("product %s at store %s", record.ProductID, record.StoreID),
		Status:      record.EffectiveStatus(),
		NeedsReview: record.NeedsReview,
		CreatedBy:   record.CreatedByUserID,
		CreatedAt:   record.CreatedAt,
	}, nil
}

func (c availabilityModerationClient) ListOpen(ctx context.Context) ([]reviewports.EntityState, error) {
	records, err := c.repo.ListOpenRecords(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]reviewports.EntityState, 0, len(records))
	for _, record := range records {
		items = append(items, reviewports.EntityState{
			Kind:        trustpolicy.KindAvailability,
			EntityID:    record.RecordID,
			Summary:     fmt.Sprintf("product %s at store %s", record.ProductID, record.StoreID),
			Status:      record.EffectiveStatus(),
			NeedsReview: record.NeedsReview,
			CreatedBy:   record.CreatedByUserID,
			CreatedAt:   record.CreatedAt,
		})
	}
	return items, nil
}

func (c availabilityModerationClient) SetModeration(ctx context.Context, entityID string, status trustpolicy.ModerationStatus, needsReview bool, reviewerID string, at time.Time) error {
	err := c.repo.SetModeration(ctx, entityID, availabilityports.ModerationUpdate{
		Status:           status,
		NeedsReview:      needsReview,
		ReviewedByUserID: reviewerID,
		ReviewedAt:       at,
	})
	if errors.Is(err, availabilityerrors.ErrRecordNotFound) {
		return reviewerrors.ErrEntityNotFound
	}
	return err
}
