package bootstrap

import (
	"context"
	"errors"
	"time"

	catalogcommands "stockist/contexts/catalog/catalog-service/application/commands"
	catalogerrors "stockist/contexts/catalog/catalog-service/domain/errors"
	directorycommands "stockist/contexts/catalog/store-directory-service/application/commands"
	directoryerrors "stockist/contexts/catalog/store-directory-service/domain/errors"
	"stockist/contexts/moderation-trust/edit-ledger-service/domain/entities"
	ledgererrors "stockist/contexts/moderation-trust/edit-ledger-service/domain/errors"
	ledgerports "stockist/contexts/moderation-trust/edit-ledger-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// compositeTargetStore routes edit-ledger field access to the service that
// owns the target kind. Products and stores go through the owning use case so
// shadow materialization and field rules stay in one place; editorial pages
// live in the ledger's own store.
type compositeTargetStore struct {
	Products catalogcommands.EditTargetUseCase
	Stores   directorycommands.EditTargetUseCase
	Pages    ledgerports.TargetStore
}

func (c compositeTargetStore) ReadField(ctx context.Context, target entities.TargetRef, field string) (string, error) {
	switch target.Kind {
	case trustpolicy.KindProduct:
		value, err := c.Products.ReadField(ctx, target.ID, field)
		return value, mapCatalogTargetError(err)
	case trustpolicy.KindStore:
		value, err := c.Stores.ReadField(ctx, target.ID, field)
		return value, mapDirectoryTargetError(err)
	case trustpolicy.KindPage:
		return c.Pages.ReadField(ctx, target, field)
	default:
		return "", ledgererrors.ErrTargetNotFound
	}
}

func (c compositeTargetStore) ApplyField(ctx context.Context, target entities.TargetRef, field string, value string, now time.Time) error {
	switch target.Kind {
	case trustpolicy.KindProduct:
		return mapCatalogTargetError(c.Products.ApplyField(ctx, target.ID, field, value))
	case trustpolicy.KindStore:
		return mapDirectoryTargetError(c.Stores.ApplyField(ctx, target.ID, field, value))
	case trustpolicy.KindPage:
		return c.Pages.ApplyField(ctx, target, field, value, now)
	default:
		return ledgererrors.ErrTargetNotFound
	}
}

func mapCatalogTargetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalogerrors.ErrProductNotFound), errors.Is(err, catalogerrors.ErrProductArchived):
		return ledgererrors.ErrTargetNotFound
	case errors.Is(err, catalogerrors.ErrFieldNotEditable):
		return ledgererrors.ErrFieldNotAllowed
	default:
		return err
	}
}

func mapDirectoryTargetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, directoryerrors.ErrStoreNotFound):
		return ledgererrors.ErrTargetNotFound
	case errors.Is(err, directoryerrors.ErrFieldNotEditable):
		return ledgererrors.ErrFieldNotAllowed
	default:
		return err
	}
}
