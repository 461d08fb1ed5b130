package commands

import (
	"context"
	"strings"

	"stockist/contexts/catalog/store-directory-service/domain/entities"
	domainerrors "stockist/contexts/catalog/store-directory-service/domain/errors"
	"stockist/contexts/catalog/store-directory-service/ports"
)

// EditTargetUseCase exposes store listings as editable fields for the edit
// ledger. Store edits are in-place; there is no shadow mechanism for stores.
type EditTargetUseCase struct {
	Stores ports.StoreRepository
	Clock  ports.Clock
}

func (uc EditTargetUseCase) ReadField(ctx context.Context, storeID, field string) (string, error) {
	store, err := uc.Stores.GetStore(ctx, strings.TrimSpace(storeID))
	if err != nil {
		return "", err
	}
	return storeFieldValue(store, field)
}

func (uc EditTargetUseCase) ApplyField(ctx context.Context, storeID, field, value string) error {
	store, err := uc.Stores.GetStore(ctx, strings.TrimSpace(storeID))
	if err != nil {
		return err
	}
	if err := setStoreField(&store, field, value); err != nil {
		return err
	}
	store.UpdatedAt = uc.Clock.Now().UTC()
	return uc.Stores.UpdateStore(ctx, store)
}

func storeFieldValue(store entities.DirectoryStore, field string) (string, error) {
	switch field {
	case "name":
		return store.Name, nil
	case "website_url":
		return store.WebsiteURL, nil
	case "address":
		return store.Address, nil
	case "phone":
		return store.Phone, nil
	case "opening_hours":
		return store.OpeningHours, nil
	default:
		return "", domainerrors.ErrFieldNotEditable
	}
}

func setStoreField(store *entities.DirectoryStore, field, value string) error {
	switch field {
	case "name":
		store.Name = value
	case "website_url":
		store.WebsiteURL = value
	case "address":
		store.Address = value
	case "phone":
		store.Phone = value
	case "opening_hours":
		store.OpeningHours = value
	default:
		return domainerrors.ErrFieldNotEditable
	}
	return nil
}
