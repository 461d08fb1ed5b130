package commands

import (
	"context"
	"log/slog"
	"strings"

	"stockist/contexts/catalog/store-directory-service/application"
	"stockist/contexts/catalog/store-directory-service/domain/entities"
	domainerrors "stockist/contexts/catalog/store-directory-service/domain/errors"
	"stockist/contexts/catalog/store-directory-service/domain/services"
	"stockist/contexts/catalog/store-directory-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// SubmitStoreCommand registers a new store listing. OverrideSimilar lets the
// caller proceed past advisory matches; nothing overrides an exact match.
type SubmitStoreCommand struct {
	Name            string
	Type            string
	PlaceID         string
	WebsiteURL      string
	Address         string
	Phone           string
	OpeningHours    string
	ActorID         string
	OverrideSimilar bool
}

type SubmitStoreUseCase struct {
	Stores       ports.StoreRepository
	Contributors ports.ContributorDirectory
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func (uc SubmitStoreUseCase) Submit(ctx context.Context, cmd SubmitStoreCommand) (ports.SubmitStoreResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	name := strings.TrimSpace(cmd.Name)
	actorID := strings.TrimSpace(cmd.ActorID)
	storeType, ok := entities.ParseStoreType(cmd.Type)
	if name == "" || actorID == "" || !ok {
		return ports.SubmitStoreResult{}, domainerrors.ErrInvalidRequest
	}
	if storeType == entities.StoreOnline && strings.TrimSpace(cmd.WebsiteURL) == "" {
		return ports.SubmitStoreResult{}, domainerrors.ErrInvalidRequest
	}
	if storeType == entities.StorePhysical && strings.TrimSpace(cmd.PlaceID) == "" && strings.TrimSpace(cmd.Address) == "" {
		return ports.SubmitStoreResult{}, domainerrors.ErrInvalidRequest
	}

	candidate := entities.DirectoryStore{
		Name:         name,
		Type:         storeType,
		PlaceID:      strings.TrimSpace(cmd.PlaceID),
		WebsiteURL:   strings.TrimSpace(cmd.WebsiteURL),
		Address:      strings.TrimSpace(cmd.Address),
		Phone:        strings.TrimSpace(cmd.Phone),
		OpeningHours: strings.TrimSpace(cmd.OpeningHours),
	}

	existing, err := uc.Stores.ListStores(ctx, ports.StoreFilter{})
	if err != nil {
		return ports.SubmitStoreResult{}, err
	}
	report := services.CheckDuplicate(candidate, existing)
	if report.HasExactMatch() {
		logger.Info("store submission blocked",
			slog.String("event", "store_duplicate_blocked"),
			slog.String("module", "store-directory-service"),
			slog.String("layer", "application"),
			slog.String("conflicting_store_id", report.ExactMatch.StoreID),
		)
		return ports.SubmitStoreResult{}, &domainerrors.DuplicateStoreError{Existing: *report.ExactMatch}
	}
	if len(report.SimilarStores) > 0 && !cmd.OverrideSimilar {
		return ports.SubmitStoreResult{}, &domainerrors.SimilarStoresError{Similar: report.SimilarStores}
	}

	contributor, found, err := uc.Contributors.ResolveContributor(ctx, actorID)
	if err != nil {
		return ports.SubmitStoreResult{}, err
	}
	if !found {
		contributor = trustpolicy.Contributor{UserID: actorID}
	}
	decision := trustpolicy.DecideNewEntity(trustpolicy.Classify(contributor), trustpolicy.KindStore)

	now := uc.Clock.Now().UTC()
	candidate.StoreID = uc.IDGen.NewID()
	candidate.Status = decision.Status
	candidate.TrustedContribution = decision.AutoApplied
	candidate.NeedsReview = decision.NeedsReview
	candidate.CreatedByUserID = actorID
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	if err := uc.Stores.CreateStore(ctx, candidate); err != nil {
		return ports.SubmitStoreResult{}, err
	}

	logger.Info("store submitted",
		slog.String("event", "store_submitted"),
		slog.String("module", "store-directory-service"),
		slog.String("layer", "application"),
		slog.String("store_id", candidate.StoreID),
		slog.String("status", string(candidate.Status)),
		slog.Bool("needs_review", candidate.NeedsReview),
	)

	return ports.SubmitStoreResult{
		StoreID:     candidate.StoreID,
		Status:      candidate.Status,
		NeedsReview: candidate.NeedsReview,
	}, nil
}
