package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stockist/contexts/catalog/catalog-service/application"
	"stockist/contexts/catalog/catalog-service/domain/entities"
	domainerrors "stockist/contexts/catalog/catalog-service/domain/errors"
	"stockist/contexts/catalog/catalog-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// EditTargetUseCase exposes product content as editable fields. The edit
// ledger calls it through an adapter when a suggestion targets a product.
//
// Writes follow the shadow-override rule: canonical rows are never mutated.
// The first applied edit of a canonical product materializes a shadow copy
// and all later applied edits land on that shadow.
type EditTargetUseCase struct {
	Canonical   ports.CanonicalRepository
	Contributed ports.ContributedRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// ReadField returns the current effective value of a product field, i.e. the
// value a resolver would serve: shadow first, then canonical, then a
// standalone contributed product.
func (uc EditTargetUseCase) ReadField(ctx context.Context, productID, field string) (string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return "", domainerrors.ErrInvalidRequest
	}

	shadow, found, err := uc.Contributed.GetShadowFor(ctx, productID)
	if err != nil {
		return "", err
	}
	if found && shadowEligibleForEdit(shadow) {
		return productFieldValue(shadow, field)
	}

	canonical, err := uc.Canonical.GetCanonical(ctx, productID)
	switch {
	case err == nil:
		return canonicalFieldValue(canonical, field)
	case !errors.Is(err, domainerrors.ErrProductNotFound):
		return "", err
	}

	contributed, err := uc.Contributed.GetContributed(ctx, productID)
	if err != nil {
		return "", err
	}
	return productFieldValue(contributed, field)
}

// ApplyField writes an approved field value. Targeting a canonical product
// creates or updates its shadow; targeting a contributed product writes in
// place.
func (uc EditTargetUseCase) ApplyField(ctx context.Context, productID, field, value string) error {
	logger := application.ResolveLogger(uc.Logger)
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domainerrors.ErrInvalidRequest
	}

	now := uc.Clock.Now().UTC()

	shadow, found, err := uc.Contributed.GetShadowFor(ctx, productID)
	if err != nil {
		return err
	}
	if found && shadowEligibleForEdit(shadow) {
		if err := setProductField(&shadow, field, value); err != nil {
			return err
		}
		shadow.UpdatedAt = now
		return uc.Contributed.UpdateContributed(ctx, shadow)
	}

	canonical, err := uc.Canonical.GetCanonical(ctx, productID)
	switch {
	case err == nil:
		if found {
			// An ineligible shadow (rejected or archived) no longer overrides
			// reads, so the write must not land on it invisibly. Rebuild the
			// row from the canonical the read served, keeping one shadow per
			// source id.
			refreshed := shadowFromCanonical(canonical, shadow.ProductID, now)
			refreshed.CreatedAt = shadow.CreatedAt
			if err := setProductField(&refreshed, field, value); err != nil {
				return err
			}
			logger.Info("shadow rematerialized",
				slog.String("event", "catalog_shadow_rematerialized"),
				slog.String("module", "catalog-service"),
				slog.String("layer", "application"),
				slog.String("source_product_id", canonical.ProductID),
				slog.String("shadow_id", refreshed.ProductID),
			)
			return uc.Contributed.UpdateContributed(ctx, refreshed)
		}
		materialized := shadowFromCanonical(canonical, uc.IDGen.NewID(), now)
		if err := setProductField(&materialized, field, value); err != nil {
			return err
		}
		if err := uc.Contributed.CreateContributed(ctx, materialized); err != nil {
			return err
		}
		logger.Info("shadow materialized",
			slog.String("event", "catalog_shadow_materialized"),
			slog.String("module", "catalog-service"),
			slog.String("layer", "application"),
			slog.String("source_product_id", canonical.ProductID),
			slog.String("shadow_id", materialized.ProductID),
		)
		return nil
	case !errors.Is(err, domainerrors.ErrProductNotFound):
		return err
	}

	contributed, err := uc.Contributed.GetContributed(ctx, productID)
	if err != nil {
		return err
	}
	if err := setProductField(&contributed, field, value); err != nil {
		return err
	}
	contributed.UpdatedAt = now
	return uc.Contributed.UpdateContributed(ctx, contributed)
}

// shadowFromCanonical copies every editable field so the shadow fully
// replaces its source at read time, not just the edited field.
func shadowFromCanonical(canonical entities.CanonicalProduct, shadowID string, now time.Time) entities.ContributedProduct {
	return entities.ContributedProduct{
		ProductID:       shadowID,
		SourceProductID: canonical.ProductID,
		Name:            canonical.Name,
		Brand:           canonical.Brand,
		Category:        canonical.Category,
		Description:     canonical.Description,
		ImageURL:        canonical.ImageURL,
		WebsiteURL:      canonical.WebsiteURL,
		Rating:          canonical.Rating,
		Status:          trustpolicy.StatusApproved,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func shadowEligibleForEdit(shadow entities.ContributedProduct) bool {
	return shadow.Status == trustpolicy.StatusApproved && !shadow.Archived
}

func canonicalFieldValue(product entities.CanonicalProduct, field string) (string, error) {
	switch field {
	case "name":
		return product.Name, nil
	case "description":
		return product.Description, nil
	case "brand":
		return product.Brand, nil
	case "category":
		return product.Category, nil
	case "image_url":
		return product.ImageURL, nil
	case "website_url":
		return product.WebsiteURL, nil
	default:
		return "", domainerrors.ErrFieldNotEditable
	}
}

func productFieldValue(product entities.ContributedProduct, field string) (string, error) {
	switch field {
	case "name":
		return product.Name, nil
	case "description":
		return product.Description, nil
	case "brand":
		return product.Brand, nil
	case "category":
		return product.Category, nil
	case "image_url":
		return product.ImageURL, nil
	case "website_url":
		return product.WebsiteURL, nil
	default:
		return "", domainerrors.ErrFieldNotEditable
	}
}

func setProductField(product *entities.ContributedProduct, field, value string) error {
	switch field {
	case "name":
		product.Name = value
	case "description":
		product.Description = value
	case "brand":
		product.Brand = value
	case "category":
		product.Category = value
	case "image_url":
		product.ImageURL = value
	case "website_url":
		product.WebsiteURL = value
	default:
		return domainerrors.ErrFieldNotEditable
	}
	return nil
}
