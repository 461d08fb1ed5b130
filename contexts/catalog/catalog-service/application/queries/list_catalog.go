package queries

import (
	"context"
	"sort"
	"strings"

	"stockist/contexts/catalog/catalog-service/domain/entities"
	"stockist/contexts/catalog/catalog-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100

	SortByName   = "name"
	SortByRating = "rating"
)

// ListCatalogQuery drives the merged listing. Sort accepts "name" (default,
// ascending) or "rating" (descending).
type ListCatalogQuery struct {
	Query         string
	Brand         string
	Category      string
	Sort          string
	Page          int
	Limit         int
	AllowArchived bool
}

type ListUseCase struct {
	Canonical   ports.CanonicalRepository
	Contributed ports.ContributedRepository
}

// List merges the canonical and contributed collections into one sequence.
// A canonical product with an eligible shadow appears once, as the override;
// the shadow row itself never appears as a separate item. Overrides are
// substituted before the filter so a query matches a product's effective
// values: a renamed product is findable by its new name and invisible under
// its old one. Ordering and pagination are applied to the merged result so a
// page boundary never duplicates or drops an id.
func (uc ListUseCase) List(ctx context.Context, query ListCatalogQuery) (ports.CatalogPage, error) {
	filter := ports.CatalogFilter{
		Query:    strings.TrimSpace(query.Query),
		Brand:    strings.TrimSpace(query.Brand),
		Category: strings.TrimSpace(query.Category),
	}

	canonical, err := uc.Canonical.ListCanonical(ctx, filter)
	if err != nil {
		return ports.CatalogPage{}, err
	}
	contributed, err := uc.Contributed.ListContributed(ctx, filter)
	if err != nil {
		return ports.CatalogPage{}, err
	}
	// Shadows come back unfiltered: whether a shadowed id appears is decided
	// by the override's values, which the repository filter never saw.
	shadowRows, err := uc.Contributed.ListShadows(ctx)
	if err != nil {
		return ports.CatalogPage{}, err
	}

	shadows := make(map[string]entities.ContributedProduct)
	for _, shadow := range shadowRows {
		if shadowEligible(shadow) {
			shadows[shadow.SourceProductID] = shadow
		}
	}

	entries := make([]entities.CatalogEntry, 0, len(canonical)+len(contributed))
	for sourceID := range shadows {
		shadow := shadows[sourceID]
		if !matchesCatalogFilter(shadow.Name, shadow.Brand, shadow.Category, filter) {
			continue
		}
		override := shadow
		entries = append(entries, entities.CatalogEntry{Source: entities.SourceOverride, Contributed: &override})
	}
	for i := range canonical {
		record := canonical[i]
		if _, shadowed := shadows[record.ProductID]; shadowed {
			// The override loop above already decided whether this logical
			// id appears; the canonical's own values no longer count.
			continue
		}
		if record.Archived && !query.AllowArchived {
			continue
		}
		entries = append(entries, entities.CatalogEntry{Source: entities.SourceCanonical, Canonical: &canonical[i]})
	}
	for i := range contributed {
		record := contributed[i]
		if record.IsShadow() {
			continue
		}
		if record.Status != trustpolicy.StatusApproved {
			continue
		}
		if record.Archived && !query.AllowArchived {
			continue
		}
		entries = append(entries, entities.CatalogEntry{Source: entities.SourceContributed, Contributed: &contributed[i]})
	}

	summaries := make([]entities.CatalogSummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, entry.Summary())
	}
	sortSummaries(summaries, query.Sort)

	page, limit := normalizePage(query.Page, query.Limit)
	total := len(summaries)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return ports.CatalogPage{
		Items: summaries[start:end],
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func sortSummaries(items []entities.CatalogSummary, sortBy string) {
	switch sortBy {
	case SortByRating:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Rating != items[j].Rating {
				return items[i].Rating > items[j].Rating
			}
			return items[i].ProductID < items[j].ProductID
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			left := strings.ToLower(items[i].Name)
			right := strings.ToLower(items[j].Name)
			if left != right {
				return left < right
			}
			return items[i].ProductID < items[j].ProductID
		})
	}
}

// matchesCatalogFilter mirrors the repositories' filter semantics for records
// whose effective values were substituted after the repository read.
func matchesCatalogFilter(name, brand, category string, filter ports.CatalogFilter) bool {
	if filter.Query != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(filter.Query)) {
		return false
	}
	if filter.Brand != "" && !strings.EqualFold(brand, filter.Brand) {
		return false
	}
	if filter.Category != "" && !strings.EqualFold(category, filter.Category) {
		return false
	}
	return true
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
