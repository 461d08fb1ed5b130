package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockist/contexts/catalog/catalog-service/adapters/memory"
	"stockist/contexts/catalog/catalog-service/application/queries"
	"stockist/contexts/catalog/catalog-service/domain/entities"
	domainerrors "stockist/contexts/catalog/catalog-service/domain/errors"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

func newEditTargetUseCase(store *memory.Store) EditTargetUseCase {
	return EditTargetUseCase{
		Canonical:   store,
		Contributed: store,
		Clock:       store,
		IDGen:       store,
	}
}

func seedCanonicalProduct(store *memory.Store) {
	store.SeedCanonical(entities.CanonicalProduct{
		ProductID:   "p-1",
		Name:        "Crisps",
		Brand:       "Acme",
		Category:    "snacks",
		Description: "Plain crisps",
		Rating:      4.2,
		ImportedAt:  time.Now().UTC(),
	})
}

func TestApplyFieldMaterializesShadowFromCanonical(t *testing.T) {
	store := memory.NewStore()
	seedCanonicalProduct(store)
	uc := newEditTargetUseCase(store)

	if err := uc.ApplyField(context.Background(), "p-1", "name", "Sea Salt Crisps"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	shadow, found, err := store.GetShadowFor(context.Background(), "p-1")
	if err != nil || !found {
		t.Fatalf("shadow missing: found=%v err=%v", found, err)
	}
	if shadow.Name != "Sea Salt Crisps" {
		t.Fatalf("edited field not applied: %q", shadow.Name)
	}
	if shadow.Brand != "Acme" || shadow.Description != "Plain crisps" || shadow.Rating != 4.2 {
		t.Fatalf("untouched fields must copy from canonical: %+v", shadow)
	}
	if shadow.Status != trustpolicy.StatusApproved {
		t.Fatalf("materialized shadow must be approved, got %s", shadow.Status)
	}

	// The resolver now serves the shadow for the canonical id.
	resolve := queries.ResolveUseCase{Canonical: store, Contributed: store}
	entry, err := resolve.Resolve(context.Background(), queries.ResolveProductQuery{ProductID: "p-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if entry.Source != entities.SourceOverride || entry.Contributed.Name != "Sea Salt Crisps" {
		t.Fatalf("override not served after materialization: %+v", entry)
	}
}

func TestApplyFieldReusesExistingShadow(t *testing.T) {
	store := memory.NewStore()
	seedCanonicalProduct(store)
	uc := newEditTargetUseCase(store)

	if err := uc.ApplyField(context.Background(), "p-1", "name", "Sea Salt Crisps"); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	first, _, _ := store.GetShadowFor(context.Background(), "p-1")

	if err := uc.ApplyField(context.Background(), "p-1", "description", "Hand cooked"); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	second, _, _ := store.GetShadowFor(context.Background(), "p-1")
	if second.ProductID != first.ProductID {
		t.Fatalf("second edit must land on the same shadow row: %s vs %s", second.ProductID, first.ProductID)
	}
	if second.Name != "Sea Salt Crisps" || second.Description != "Hand cooked" {
		t.Fatalf("edits must accumulate on the shadow: %+v", second)
	}
}

func TestApplyFieldRematerializesIneligibleShadow(t *testing.T) {
	store := memory.NewStore()
	seedCanonicalProduct(store)
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID:       "c-1",
		SourceProductID: "p-1",
		Name:            "Stale Crisps",
		Status:          trustpolicy.StatusApproved,
		Archived:        true,
	}); err != nil {
		t.Fatalf("seed archived shadow: %v", err)
	}
	uc := newEditTargetUseCase(store)

	// The read serves the canonical because the archived shadow no longer
	// overrides it; the write must end up just as visible.
	value, err := uc.ReadField(context.Background(), "p-1", "name")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if value != "Crisps" {
		t.Fatalf("archived shadow must not answer reads, got %q", value)
	}

	if err := uc.ApplyField(context.Background(), "p-1", "name", "Sea Salt Crisps"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	shadow, found, err := store.GetShadowFor(context.Background(), "p-1")
	if err != nil || !found {
		t.Fatalf("shadow missing: found=%v err=%v", found, err)
	}
	if shadow.ProductID != "c-1" {
		t.Fatalf("apply must reuse the existing shadow row, got %s", shadow.ProductID)
	}
	if shadow.Archived || shadow.Status != trustpolicy.StatusApproved {
		t.Fatalf("rematerialized shadow must be live: %+v", shadow)
	}
	if shadow.Name != "Sea Salt Crisps" || shadow.Brand != "Acme" {
		t.Fatalf("rematerialized shadow must carry canonical fields plus the edit: %+v", shadow)
	}

	value, err = uc.ReadField(context.Background(), "p-1", "name")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if value != "Sea Salt Crisps" {
		t.Fatalf("applied edit invisible to reads, got %q", value)
	}
}

func TestApplyFieldWritesContributedInPlace(t *testing.T) {
	store := memory.NewStore()
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID: "c-1",
		Name:      "Granola",
		Status:    trustpolicy.StatusApproved,
	}); err != nil {
		t.Fatalf("seed contributed: %v", err)
	}
	uc := newEditTargetUseCase(store)

	if err := uc.ApplyField(context.Background(), "c-1", "name", "Toasted Granola"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	stored, err := store.GetContributed(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if stored.Name != "Toasted Granola" {
		t.Fatalf("in-place write missed: %q", stored.Name)
	}
	if _, found, _ := store.GetShadowFor(context.Background(), "c-1"); found {
		t.Fatal("editing a contributed product must not create a shadow")
	}
}

func TestReadFieldPrefersShadowValue(t *testing.T) {
	store := memory.NewStore()
	seedCanonicalProduct(store)
	uc := newEditTargetUseCase(store)

	value, err := uc.ReadField(context.Background(), "p-1", "name")
	if err != nil {
		t.Fatalf("read canonical: %v", err)
	}
	if value != "Crisps" {
		t.Fatalf("expected canonical value, got %q", value)
	}

	if err := uc.ApplyField(context.Background(), "p-1", "name", "Sea Salt Crisps"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	value, err = uc.ReadField(context.Background(), "p-1", "name")
	if err != nil {
		t.Fatalf("read shadowed: %v", err)
	}
	if value != "Sea Salt Crisps" {
		t.Fatalf("expected shadow value, got %q", value)
	}
}

func TestApplyFieldRejectsUnknownField(t *testing.T) {
	store := memory.NewStore()
	seedCanonicalProduct(store)
	uc := newEditTargetUseCase(store)

	if err := uc.ApplyField(context.Background(), "p-1", "rating", "5.0"); !errors.Is(err, domainerrors.ErrFieldNotEditable) {
		t.Fatalf("expected ErrFieldNotEditable, got %v", err)
	}
	if _, found, _ := store.GetShadowFor(context.Background(), "p-1"); found {
		t.Fatal("rejected edit must not materialize a shadow")
	}
}

func TestApplyFieldUnknownProductIsNotFound(t *testing.T) {
	uc := newEditTargetUseCase(memory.NewStore())
	if err := uc.ApplyField(context.Background(), "missing", "name", "x"); !errors.Is(err, domainerrors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
