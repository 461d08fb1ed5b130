package commands

import (
	"context"
	"errors"
	"testing"

	"stockist/contexts/catalog/store-directory-service/adapters/memory"
	"stockist/contexts/catalog/store-directory-service/domain/entities"
	domainerrors "stockist/contexts/catalog/store-directory-service/domain/errors"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

func TestStoreEditApplyAndReadField(t *testing.T) {
	store := memory.NewStore()
	store.SeedStore(entities.DirectoryStore{
		StoreID: "s-1",
		Name:    "Corner Shop",
		Type:    entities.StorePhysical,
		Phone:   "0123",
		Status:  trustpolicy.StatusConfirmed,
	})
	uc := EditTargetUseCase{Stores: store, Clock: store}

	if err := uc.ApplyField(context.Background(), "s-1", "phone", "0456"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	value, err := uc.ReadField(context.Background(), "s-1", "phone")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if value != "0456" {
		t.Fatalf("expected updated phone, got %q", value)
	}
}

func TestStoreEditRejectsUnknownField(t *testing.T) {
	store := memory.NewStore()
	store.SeedStore(entities.DirectoryStore{StoreID: "s-1", Name: "Corner Shop", Type: entities.StorePhysical})
	uc := EditTargetUseCase{Stores: store, Clock: store}

	if err := uc.ApplyField(context.Background(), "s-1", "place_id", "place-9"); !errors.Is(err, domainerrors.ErrFieldNotEditable) {
		t.Fatalf("expected ErrFieldNotEditable, got %v", err)
	}
}

func TestStoreEditMissingStore(t *testing.T) {
	uc := EditTargetUseCase{Stores: memory.NewStore(), Clock: memory.NewStore()}
	if _, err := uc.ReadField(context.Background(), "missing", "name"); !errors.Is(err, domainerrors.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}
