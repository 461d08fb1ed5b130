package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockist/contexts/catalog/catalog-service/adapters/memory"
	"stockist/contexts/catalog/catalog-service/domain/entities"
	domainerrors "stockist/contexts/catalog/catalog-service/domain/errors"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

func newResolveUseCase(store *memory.Store) ResolveUseCase {
	return ResolveUseCase{Canonical: store, Contributed: store}
}

func seedCanonical(store *memory.Store, id, name string) {
	store.SeedCanonical(entities.CanonicalProduct{
		ProductID:  id,
		Name:       name,
		Brand:      "Acme",
		Category:   "snacks",
		ImportedAt: time.Now().UTC(),
	})
}

func TestResolveServesCanonicalWithoutShadow(t *testing.T) {
	store := memory.NewStore()
	seedCanonical(store, "p-1", "Crisps")
	uc := newResolveUseCase(store)

	entry, err := uc.Resolve(context.Background(), ResolveProductQuery{ProductID: "p-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if entry.Source != entities.SourceCanonical {
		t.Fatalf("expected canonical source, got %s", entry.Source)
	}
	if entry.Canonical.Name != "Crisps" {
		t.Fatalf("unexpected name %q", entry.Canonical.Name)
	}
}

func TestResolvePrefersApprovedShadow(t *testing.T) {
	store := memory.NewStore()
	seedCanonical(store, "p-1", "Crisps")
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID:       "c-1",
		SourceProductID: "p-1",
		Name:            "Sea Salt Crisps",
		Status:          trustpolicy.StatusApproved,
	}); err != nil {
		t.Fatalf("seed shadow: %v", err)
	}
	uc := newResolveUseCase(store)

	entry, err := uc.Resolve(context.Background(), ResolveProductQuery{ProductID: "p-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if entry.Source != entities.SourceOverride {
		t.Fatalf("expected override source, got %s", entry.Source)
	}
	if entry.Contributed.Name != "Sea Salt Crisps" {
		t.Fatalf("shadow content not served: %q", entry.Contributed.Name)
	}
	if entry.LogicalID() != "p-1" {
		t.Fatalf("override must keep the canonical id, got %q", entry.LogicalID())
	}
}

func TestResolveIgnoresPendingShadow(t *testing.T) {
	store := memory.NewStore()
	seedCanonical(store, "p-1", "Crisps")
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID:       "c-1",
		SourceProductID: "p-1",
		Name:            "Wrong Name",
		Status:          trustpolicy.StatusPending,
	}); err != nil {
		t.Fatalf("seed shadow: %v", err)
	}
	uc := newResolveUseCase(store)

	entry, err := uc.Resolve(context.Background(), ResolveProductQuery{ProductID: "p-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if entry.Source != entities.SourceCanonical {
		t.Fatalf("pending shadow must not override, got %s", entry.Source)
	}
}

func TestResolveArchivedCanonicalIsCapabilityGated(t *testing.T) {
	store := memory.NewStore()
	store.SeedCanonical(entities.CanonicalProduct{ProductID: "p-1", Name: "Retired", Archived: true})
	uc := newResolveUseCase(store)

	if _, err := uc.Resolve(context.Background(), ResolveProductQuery{ProductID: "p-1"}); !errors.Is(err, domainerrors.ErrProductArchived) {
		t.Fatalf("expected ErrProductArchived, got %v", err)
	}

	entry, err := uc.Resolve(context.Background(), ResolveProductQuery{ProductID: "p-1", AllowArchived: true})
	if err != nil {
		t.Fatalf("privileged resolve: %v", err)
	}
	if !entry.Canonical.Archived {
		t.Fatal("expected the archived record as a normal result")
	}
}

func TestResolveFallsBackToApprovedContributed(t *testing.T) {
	store := memory.NewStore()
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID: "c-1",
		Name:      "Homemade Granola",
		Status:    trustpolicy.StatusApproved,
	}); err != nil {
		t.Fatalf("seed contributed: %v", err)
	}
	uc := newResolveUseCase(store)

	entry, err := uc.Resolve(context.Background(), ResolveProductQuery{ProductID: "c-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if entry.Source != entities.SourceContributed {
		t.Fatalf("expected contributed source, got %s", entry.Source)
	}
}

func TestResolveHidesPendingContributed(t *testing.T) {
	store := memory.NewStore()
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID: "c-1",
		Name:      "Unreviewed",
		Status:    trustpolicy.StatusPending,
	}); err != nil {
		t.Fatalf("seed contributed: %v", err)
	}
	uc := newResolveUseCase(store)

	if _, err := uc.Resolve(context.Background(), ResolveProductQuery{ProductID: "c-1"}); !errors.Is(err, domainerrors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestResolveUnknownIDIsNotFound(t *testing.T) {
	uc := newResolveUseCase(memory.NewStore())
	if _, err := uc.Resolve(context.Background(), ResolveProductQuery{ProductID: "missing"}); !errors.Is(err, domainerrors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
