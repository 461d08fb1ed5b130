package queries

import (
	"context"
	"fmt"
	"testing"

	"stockist/contexts/catalog/catalog-service/adapters/memory"
	"stockist/contexts/catalog/catalog-service/domain/entities"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

func newListUseCase(store *memory.Store) ListUseCase {
	return ListUseCase{Canonical: store, Contributed: store}
}

func TestListPaginatesAcrossBothCollections(t *testing.T) {
	store := memory.NewStore()
	for i := 0; i < 15; i++ {
		seedCanonical(store, fmt.Sprintf("p-%02d", i), fmt.Sprintf("Canonical %02d", i))
	}
	for i := 0; i < 10; i++ {
		if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
			ProductID: fmt.Sprintf("c-%02d", i),
			Name:      fmt.Sprintf("User Product %02d", i),
			Status:    trustpolicy.StatusApproved,
		}); err != nil {
			t.Fatalf("seed contributed: %v", err)
		}
	}
	uc := newListUseCase(store)

	first, err := uc.List(context.Background(), ListCatalogQuery{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(first.Items) != 20 {
		t.Fatalf("expected 20 items on page 1, got %d", len(first.Items))
	}
	if first.Total != 25 {
		t.Fatalf("expected merged total 25, got %d", first.Total)
	}

	second, err := uc.List(context.Background(), ListCatalogQuery{Page: 2, Limit: 20})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(second.Items) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(second.Items))
	}

	seen := make(map[string]bool)
	for _, item := range append(first.Items, second.Items...) {
		if seen[item.ProductID] {
			t.Fatalf("duplicate id across pages: %s", item.ProductID)
		}
		seen[item.ProductID] = true
	}
}

func TestListDeduplicatesShadowedCanonical(t *testing.T) {
	store := memory.NewStore()
	seedCanonical(store, "p-1", "Crisps")
	seedCanonical(store, "p-2", "Biscuits")
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID:       "c-1",
		SourceProductID: "p-1",
		Name:            "Sea Salt Crisps",
		Status:          trustpolicy.StatusApproved,
	}); err != nil {
		t.Fatalf("seed shadow: %v", err)
	}
	uc := newListUseCase(store)

	page, err := uc.List(context.Background(), ListCatalogQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("shadowed canonical must appear once, total %d", page.Total)
	}
	var override *entities.CatalogSummary
	for i := range page.Items {
		if page.Items[i].ProductID == "p-1" {
			override = &page.Items[i]
		}
		if page.Items[i].ProductID == "c-1" {
			t.Fatal("shadow row leaked into the listing under its own id")
		}
	}
	if override == nil {
		t.Fatal("canonical id missing from listing")
	}
	if override.Name != "Sea Salt Crisps" || override.Source != entities.SourceOverride {
		t.Fatalf("override content not served: %+v", override)
	}
}

func TestListFiltersOnOverrideEffectiveValues(t *testing.T) {
	store := memory.NewStore()
	seedCanonical(store, "p-1", "Alpha")
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID:       "c-1",
		SourceProductID: "p-1",
		Name:            "Beta",
		Status:          trustpolicy.StatusApproved,
	}); err != nil {
		t.Fatalf("seed shadow: %v", err)
	}
	uc := newListUseCase(store)

	byOldName, err := uc.List(context.Background(), ListCatalogQuery{Query: "Alpha"})
	if err != nil {
		t.Fatalf("list by old name: %v", err)
	}
	if byOldName.Total != 0 {
		t.Fatalf("shadowed canonical must not match by its stale name, got %+v", byOldName.Items)
	}

	byNewName, err := uc.List(context.Background(), ListCatalogQuery{Query: "Beta"})
	if err != nil {
		t.Fatalf("list by new name: %v", err)
	}
	if byNewName.Total != 1 {
		t.Fatalf("renamed product must be findable by its effective name, got %+v", byNewName.Items)
	}
	item := byNewName.Items[0]
	if item.ProductID != "p-1" || item.Name != "Beta" || item.Source != entities.SourceOverride {
		t.Fatalf("override row wrong: %+v", item)
	}
}

func TestListFiltersOverridesByBrandAndCategory(t *testing.T) {
	store := memory.NewStore()
	store.SeedCanonical(entities.CanonicalProduct{ProductID: "p-1", Name: "Crisps", Brand: "Acme", Category: "snacks"})
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID:       "c-1",
		SourceProductID: "p-1",
		Name:            "Crisps",
		Brand:           "Orchard",
		Category:        "snacks",
		Status:          trustpolicy.StatusApproved,
	}); err != nil {
		t.Fatalf("seed shadow: %v", err)
	}
	uc := newListUseCase(store)

	byOldBrand, err := uc.List(context.Background(), ListCatalogQuery{Brand: "Acme"})
	if err != nil {
		t.Fatalf("list by old brand: %v", err)
	}
	if byOldBrand.Total != 0 {
		t.Fatalf("stale brand must not match, got %+v", byOldBrand.Items)
	}

	byNewBrand, err := uc.List(context.Background(), ListCatalogQuery{Brand: "orchard"})
	if err != nil {
		t.Fatalf("list by new brand: %v", err)
	}
	if byNewBrand.Total != 1 || byNewBrand.Items[0].ProductID != "p-1" {
		t.Fatalf("effective brand must match case-insensitively, got %+v", byNewBrand.Items)
	}
}

func TestListSortsByNameCaseInsensitive(t *testing.T) {
	store := memory.NewStore()
	seedCanonical(store, "p-1", "zebra snack")
	seedCanonical(store, "p-2", "Apple Chips")
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID: "c-1",
		Name:      "mango bites",
		Status:    trustpolicy.StatusApproved,
	}); err != nil {
		t.Fatalf("seed contributed: %v", err)
	}
	uc := newListUseCase(store)

	page, err := uc.List(context.Background(), ListCatalogQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{page.Items[0].Name, page.Items[1].Name, page.Items[2].Name}
	want := []string{"Apple Chips", "mango bites", "zebra snack"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestListSortsByRatingDescending(t *testing.T) {
	store := memory.NewStore()
	store.SeedCanonical(entities.CanonicalProduct{ProductID: "p-1", Name: "Mid", Rating: 3.5})
	store.SeedCanonical(entities.CanonicalProduct{ProductID: "p-2", Name: "Top", Rating: 4.8})
	store.SeedCanonical(entities.CanonicalProduct{ProductID: "p-3", Name: "Low", Rating: 2.1})
	uc := newListUseCase(store)

	page, err := uc.List(context.Background(), ListCatalogQuery{Sort: SortByRating})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Items[0].Name != "Top" || page.Items[2].Name != "Low" {
		t.Fatalf("rating order wrong: %+v", page.Items)
	}
}

func TestListHidesArchivedAndUnapproved(t *testing.T) {
	store := memory.NewStore()
	store.SeedCanonical(entities.CanonicalProduct{ProductID: "p-1", Name: "Live"})
	store.SeedCanonical(entities.CanonicalProduct{ProductID: "p-2", Name: "Retired", Archived: true})
	if err := store.CreateContributed(context.Background(), entities.ContributedProduct{
		ProductID: "c-1",
		Name:      "Pending",
		Status:    trustpolicy.StatusPending,
	}); err != nil {
		t.Fatalf("seed contributed: %v", err)
	}
	uc := newListUseCase(store)

	page, err := uc.List(context.Background(), ListCatalogQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || page.Items[0].ProductID != "p-1" {
		t.Fatalf("expected only the live canonical row, got %+v", page.Items)
	}

	privileged, err := uc.List(context.Background(), ListCatalogQuery{AllowArchived: true})
	if err != nil {
		t.Fatalf("privileged list: %v", err)
	}
	if privileged.Total != 2 {
		t.Fatalf("privileged listing must include archived rows, total %d", privileged.Total)
	}
}
