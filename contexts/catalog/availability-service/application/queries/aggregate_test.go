package queries

import (
	"context"
	"errors"
	"testing"

	"stockist/contexts/catalog/availability-service/adapters/memory"
	"stockist/contexts/catalog/availability-service/domain/entities"
	domainerrors "stockist/contexts/catalog/availability-service/domain/errors"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

func statusPtr(status trustpolicy.ModerationStatus) *trustpolicy.ModerationStatus {
	return &status
}

func TestCountsByStoreTreatsAbsentStatusAsConfirmed(t *testing.T) {
	store := memory.NewStore()
	// Legacy row: written before the moderation rollout, no status at all.
	store.SeedRecord(entities.AvailabilityRecord{RecordID: "r-1", ProductID: "p-1", StoreID: "s-1"})
	store.SeedRecord(entities.AvailabilityRecord{RecordID: "r-2", ProductID: "p-2", StoreID: "s-1", Status: statusPtr(trustpolicy.StatusPending)})
	store.SeedRecord(entities.AvailabilityRecord{RecordID: "r-3", ProductID: "p-3", StoreID: "s-1", Status: statusPtr(trustpolicy.StatusRejected)})
	store.SeedRecord(entities.AvailabilityRecord{RecordID: "r-4", ProductID: "p-4", StoreID: "s-1", Status: statusPtr(trustpolicy.StatusConfirmed)})
	uc := AggregateUseCase{Records: store}

	counts, err := uc.CountsByStore(context.Background(), []string{"s-1"})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	got := counts["s-1"]
	if got.Confirmed != 2 {
		t.Fatalf("absent status must count as confirmed: %+v", got)
	}
	if got.Pending != 1 || got.Rejected != 1 || got.Total != 4 {
		t.Fatalf("unexpected counts: %+v", got)
	}
}

func TestCountsByStoreReportsDuplicatePair(t *testing.T) {
	store := memory.NewStore()
	store.SeedRecord(entities.AvailabilityRecord{RecordID: "r-1", ProductID: "p-1", StoreID: "s-1"})
	store.SeedRecord(entities.AvailabilityRecord{RecordID: "r-2", ProductID: "p-1", StoreID: "s-1"})
	uc := AggregateUseCase{Records: store}

	_, err := uc.CountsByStore(context.Background(), []string{"s-1"})
	if !errors.Is(err, domainerrors.ErrDuplicateAvailability) {
		t.Fatalf("duplicate pair must surface as an error, got %v", err)
	}
}

func TestCountsByStoreEmptyStore(t *testing.T) {
	uc := AggregateUseCase{Records: memory.NewStore()}
	counts, err := uc.CountsByStore(context.Background(), []string{"s-1", "s-2"})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if counts["s-1"].Total != 0 || counts["s-2"].Total != 0 {
		t.Fatalf("expected zero counts, got %+v", counts)
	}
}

func TestVisibleProductsUsesConfirmedOrAbsentPredicate(t *testing.T) {
	store := memory.NewStore()
	store.SeedRecord(entities.AvailabilityRecord{RecordID: "r-1", ProductID: "p-legacy", StoreID: "s-1"})
	store.SeedRecord(entities.AvailabilityRecord{RecordID: "r-2", ProductID: "p-confirmed", StoreID: "s-1", Status: statusPtr(trustpolicy.StatusConfirmed)})
	store.SeedRecord(entities.AvailabilityRecord{RecordID: "r-3", ProductID: "p-pending", StoreID: "s-1", Status: statusPtr(trustpolicy.StatusPending)})
	store.SeedRecord(entities.AvailabilityRecord{RecordID: "r-4", ProductID: "p-rejected", StoreID: "s-1", Status: statusPtr(trustpolicy.StatusRejected)})
	uc := AggregateUseCase{Records: store}

	products, err := uc.VisibleProducts(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("visible products: %v", err)
	}
	want := []string{"p-confirmed", "p-legacy"}
	if len(products) != len(want) {
		t.Fatalf("expected %v, got %v", want, products)
	}
	for i := range want {
		if products[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, products)
		}
	}
}
