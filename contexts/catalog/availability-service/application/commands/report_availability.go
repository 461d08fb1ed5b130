package commands

import (
	"context"
	"log/slog"
	"strings"

	"stockist/contexts/catalog/availability-service/application"
	"stockist/contexts/catalog/availability-service/domain/entities"
	domainerrors "stockist/contexts/catalog/availability-service/domain/errors"
	"stockist/contexts/catalog/availability-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// ReportAvailabilityCommand records that a product is stocked at a store.
type ReportAvailabilityCommand struct {
	ProductID  string
	StoreID    string
	Source     string
	PriceRange string
	ActorID    string
}

type ReportAvailabilityUseCase struct {
	Records      ports.AvailabilityRepository
	Contributors ports.ContributorDirectory
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func (uc ReportAvailabilityUseCase) Report(ctx context.Context, cmd ReportAvailabilityCommand) (ports.ReportResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	productID := strings.TrimSpace(cmd.ProductID)
	storeID := strings.TrimSpace(cmd.StoreID)
	actorID := strings.TrimSpace(cmd.ActorID)
	if productID == "" || storeID == "" || actorID == "" {
		return ports.ReportResult{}, domainerrors.ErrInvalidRequest
	}

	// One record per (product, store); the aggregator depends on it.
	if _, exists, err := uc.Records.GetByPair(ctx, productID, storeID); err != nil {
		return ports.ReportResult{}, err
	} else if exists {
		return ports.ReportResult{}, domainerrors.ErrDuplicateAvailability
	}

	contributor, found, err := uc.Contributors.ResolveContributor(ctx, actorID)
	if err != nil {
		return ports.ReportResult{}, err
	}
	if !found {
		contributor = trustpolicy.Contributor{UserID: actorID}
	}
	decision := trustpolicy.DecideNewEntity(trustpolicy.Classify(contributor), trustpolicy.KindAvailability)

	now := uc.Clock.Now().UTC()
	status := decision.Status
	record := entities.AvailabilityRecord{
		RecordID:            uc.IDGen.NewID(),
		ProductID:           productID,
		StoreID:             storeID,
		Status:              &status,
		Source:              strings.TrimSpace(cmd.Source),
		PriceRange:          strings.TrimSpace(cmd.PriceRange),
		LastConfirmedAt:     now,
		TrustedContribution: decision.AutoApplied,
		NeedsReview:         decision.NeedsReview,
		CreatedByUserID:     actorID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.Records.CreateRecord(ctx, record); err != nil {
		return ports.ReportResult{}, err
	}

	logger.Info("availability reported",
		slog.String("event", "availability_reported"),
		slog.String("module", "availability-service"),
		slog.String("layer", "application"),
		slog.String("record_id", record.RecordID),
		slog.String("product_id", productID),
		slog.String("store_id", storeID),
		slog.String("status", string(status)),
	)

	return ports.ReportResult{
		RecordID:    record.RecordID,
		Status:      status,
		NeedsReview: record.NeedsReview,
	}, nil
}
