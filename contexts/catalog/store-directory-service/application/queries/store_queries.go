package queries

import (
	"context"
	"strings"

	"stockist/contexts/catalog/store-directory-service/domain/entities"
	domainerrors "stockist/contexts/catalog/store-directory-service/domain/errors"
	"stockist/contexts/catalog/store-directory-service/domain/services"
	"stockist/contexts/catalog/store-directory-service/ports"
)

type QueryUseCase struct {
	Stores ports.StoreRepository
}

// GetStore returns one listing. Unconfirmed or archived listings are hidden
// from unprivileged callers with a distinct error so transports can answer
// 403 rather than 404.
func (uc QueryUseCase) GetStore(ctx context.Context, storeID string, allowHidden bool) (entities.DirectoryStore, error) {
	store, err := uc.Stores.GetStore(ctx, strings.TrimSpace(storeID))
	if err != nil {
		return entities.DirectoryStore{}, err
	}
	if !store.IsVisible() && !allowHidden {
		return entities.DirectoryStore{}, domainerrors.ErrStoreHidden
	}
	return store, nil
}

// ListStores returns listings matching the filter, visible ones only unless
// the caller is privileged.
func (uc QueryUseCase) ListStores(ctx context.Context, filter ports.StoreFilter, allowHidden bool) ([]entities.DirectoryStore, error) {
	stores, err := uc.Stores.ListStores(ctx, filter)
	if err != nil {
		return nil, err
	}
	if allowHidden {
		return stores, nil
	}
	visible := make([]entities.DirectoryStore, 0, len(stores))
	for _, store := range stores {
		if store.IsVisible() {
			visible = append(visible, store)
		}
	}
	return visible, nil
}

// CheckDuplicate runs the pre-creation duplicate check without creating
// anything, so clients can warn contributors before they finish a form.
func (uc QueryUseCase) CheckDuplicate(ctx context.Context, candidate entities.DirectoryStore) (services.DuplicateReport, error) {
	existing, err := uc.Stores.ListStores(ctx, ports.StoreFilter{})
	if err != nil {
		return services.DuplicateReport{}, err
	}
	return services.CheckDuplicate(candidate, existing), nil
}
