package services

import (
	"fmt"
	"testing"

	"stockist/contexts/catalog/store-directory-service/domain/entities"
)

func TestCheckDuplicatePhysicalMatchesByPlaceID(t *testing.T) {
	existing := []entities.DirectoryStore{
		{StoreID: "s-1", Name: "Corner Shop", Type: entities.StorePhysical, PlaceID: "place-123"},
	}
	candidate := entities.DirectoryStore{Name: "Totally Different Name", Type: entities.StorePhysical, PlaceID: "place-123"}

	report := CheckDuplicate(candidate, existing)
	if !report.HasExactMatch() {
		t.Fatal("expected exact match on place id")
	}
	if report.ExactMatch.StoreID != "s-1" {
		t.Fatalf("wrong conflicting record: %s", report.ExactMatch.StoreID)
	}
}

func TestCheckDuplicateOnlineMatchesNormalizedURL(t *testing.T) {
	existing := []entities.DirectoryStore{
		{StoreID: "s-1", Name: "Snack Shack", Type: entities.StoreOnline, WebsiteURL: "https://www.snackshack.example/shop/"},
	}
	candidate := entities.DirectoryStore{Name: "SNACK SHACK", Type: entities.StoreOnline, WebsiteURL: "HTTPS://snackshack.example/shop"}

	report := CheckDuplicate(candidate, existing)
	if !report.HasExactMatch() {
		t.Fatal("expected exact match after URL normalization")
	}
}

func TestCheckDuplicateOnlineDifferentURLIsAdvisoryOnly(t *testing.T) {
	existing := []entities.DirectoryStore{
		{StoreID: "s-1", Name: "Snack Shack", Type: entities.StoreOnline, WebsiteURL: "https://snackshack.example"},
	}
	candidate := entities.DirectoryStore{Name: "Snack Shack", Type: entities.StoreOnline, WebsiteURL: "https://other.example"}

	report := CheckDuplicate(candidate, existing)
	if report.HasExactMatch() {
		t.Fatal("different URL must not be an exact match")
	}
	if len(report.SimilarStores) != 1 {
		t.Fatalf("expected one advisory match, got %d", len(report.SimilarStores))
	}
}

func TestCheckDuplicateSimilarIgnoresOtherTypes(t *testing.T) {
	existing := []entities.DirectoryStore{
		{StoreID: "s-1", Name: "Snack Shack", Type: entities.StorePhysical, PlaceID: "place-1"},
	}
	candidate := entities.DirectoryStore{Name: "Snack Shack", Type: entities.StoreOnline, WebsiteURL: "https://snackshack.example"}

	report := CheckDuplicate(candidate, existing)
	if report.HasExactMatch() || len(report.SimilarStores) != 0 {
		t.Fatalf("cross-type records must not match: %+v", report)
	}
}

func TestCheckDuplicateSimilarListIsBounded(t *testing.T) {
	existing := make([]entities.DirectoryStore, 0, 8)
	for i := 0; i < 8; i++ {
		existing = append(existing, entities.DirectoryStore{
			StoreID:    fmt.Sprintf("s-%d", i),
			Name:       "Snack Shack",
			Type:       entities.StoreOnline,
			WebsiteURL: fmt.Sprintf("https://shack-%d.example", i),
		})
	}
	candidate := entities.DirectoryStore{Name: "Snack Shack", Type: entities.StoreOnline, WebsiteURL: "https://new.example"}

	report := CheckDuplicate(candidate, existing)
	if len(report.SimilarStores) != 5 {
		t.Fatalf("advisory list must be capped at 5, got %d", len(report.SimilarStores))
	}
}

func TestNormalizeWebsiteURL(t *testing.T) {
	cases := map[string]string{
		"https://www.Example.com/Shop/": "https://example.com/shop",
		"HTTP://EXAMPLE.COM":            "http://example.com",
		"www.example.com/":              "example.com",
		"":                              "",
	}
	for input, want := range cases {
		if got := NormalizeWebsiteURL(input); got != want {
			t.Fatalf("NormalizeWebsiteURL(%q) = %q, want %q", input, got, want)
		}
	}
}
