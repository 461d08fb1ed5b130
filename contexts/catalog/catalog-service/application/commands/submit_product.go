package commands

import (
	"context"
	"log/slog"
	"strings"

	"stockist/contexts/catalog/catalog-service/application"
	"stockist/contexts/catalog/catalog-service/domain/entities"
	domainerrors "stockist/contexts/catalog/catalog-service/domain/errors"
	"stockist/contexts/catalog/catalog-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// SubmitProductCommand creates a user-originated product. The moderation
// outcome depends entirely on the actor's trust tier.
type SubmitProductCommand struct {
	Name        string
	Brand       string
	Category    string
	Description string
	ImageURL    string
	WebsiteURL  string
	ActorID     string
}

type SubmitProductUseCase struct {
	Contributed  ports.ContributedRepository
	Contributors ports.ContributorDirectory
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func (uc SubmitProductUseCase) Submit(ctx context.Context, cmd SubmitProductCommand) (ports.SubmitResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	name := strings.TrimSpace(cmd.Name)
	actorID := strings.TrimSpace(cmd.ActorID)
	if name == "" || actorID == "" {
		return ports.SubmitResult{}, domainerrors.ErrInvalidRequest
	}

	contributor, found, err := uc.Contributors.ResolveContributor(ctx, actorID)
	if err != nil {
		return ports.SubmitResult{}, err
	}
	if !found {
		// Unknown actors classify as Regular via the zero value.
		contributor = trustpolicy.Contributor{UserID: actorID}
	}
	decision := trustpolicy.DecideNewEntity(trustpolicy.Classify(contributor), trustpolicy.KindProduct)

	now := uc.Clock.Now().UTC()
	product := entities.ContributedProduct{
		ProductID:           uc.IDGen.NewID(),
		Name:                name,
		Brand:               strings.TrimSpace(cmd.Brand),
		Category:            strings.TrimSpace(cmd.Category),
		Description:         strings.TrimSpace(cmd.Description),
		ImageURL:            strings.TrimSpace(cmd.ImageURL),
		WebsiteURL:          strings.TrimSpace(cmd.WebsiteURL),
		Status:              decision.Status,
		TrustedContribution: decision.AutoApplied,
		NeedsReview:         decision.NeedsReview,
		CreatedByUserID:     actorID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.Contributed.CreateContributed(ctx, product); err != nil {
		return ports.SubmitResult{}, err
	}

	logger.Info("product submitted",
		slog.String("event", "catalog_product_submitted"),
		slog.String("module", "catalog-service"),
		slog.String("layer", "application"),
		slog.String("product_id", product.ProductID),
		slog.String("status", string(product.Status)),
		slog.Bool("needs_review", product.NeedsReview),
	)

	return ports.SubmitResult{
		ProductID:   product.ProductID,
		Status:      product.Status,
		NeedsReview: product.NeedsReview,
	}, nil
}
