package queries

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"stockist/contexts/catalog/availability-service/application"
	"stockist/contexts/catalog/availability-service/domain/entities"
	domainerrors "stockist/contexts/catalog/availability-service/domain/errors"
	"stockist/contexts/catalog/availability-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type AggregateUseCase struct {
	Records ports.AvailabilityRepository
	Logger  *slog.Logger
}

// CountsByStore rolls up availability records per store by effective status.
// A record without a stored status counts as confirmed. A duplicate
// (product, store) pair is a write-path invariant violation: it is reported
// as an error rather than summed twice.
func (uc AggregateUseCase) CountsByStore(ctx context.Context, storeIDs []string) (map[string]entities.StatusCounts, error) {
	logger := application.ResolveLogger(uc.Logger)

	result := make(map[string]entities.StatusCounts, len(storeIDs))
	for _, rawID := range storeIDs {
		storeID := strings.TrimSpace(rawID)
		if storeID == "" {
			continue
		}
		records, err := uc.Records.ListByStore(ctx, storeID)
		if err != nil {
			return nil, err
		}

		counts := entities.StatusCounts{}
		seen := make(map[string]bool, len(records))
		for _, record := range records {
			key := record.PairKey()
			if seen[key] {
				logger.Error("duplicate availability pair",
					slog.String("event", "availability_duplicate_pair"),
					slog.String("module", "availability-service"),
					slog.String("layer", "application"),
					slog.String("product_id", record.ProductID),
					slog.String("store_id", record.StoreID),
				)
				return nil, fmt.Errorf("%w: product %s store %s",
					domainerrors.ErrDuplicateAvailability, record.ProductID, record.StoreID)
			}
			seen[key] = true

			switch record.EffectiveStatus() {
			case trustpolicy.StatusConfirmed:
				counts.Confirmed++
			case trustpolicy.StatusPending:
				counts.Pending++
			case trustpolicy.StatusRejected:
				counts.Rejected++
			}
			counts.Total++
		}
		result[storeID] = counts
	}
	return result, nil
}

// VisibleProducts lists product ids stocked at a store, applying the
// confirmed-or-absent predicate. Output order is deterministic.
func (uc AggregateUseCase) VisibleProducts(ctx context.Context, storeID string) ([]string, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	records, err := uc.Records.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	products := make([]string, 0, len(records))
	for _, record := range records {
		if record.IsVisible() {
			products = append(products, record.ProductID)
		}
	}
	sort.Strings(products)
	return products, nil
}
