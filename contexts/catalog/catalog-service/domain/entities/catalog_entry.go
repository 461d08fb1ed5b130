package entities

// EntrySource tags where a resolved catalog entry came from.
type EntrySource string

const (
	// SourceCanonical is an imported product served as-is.
	SourceCanonical EntrySource = "canonical"
	// SourceOverride is a canonical product replaced by an approved shadow edit.
	SourceOverride EntrySource = "override"
	// SourceContributed is a user-originated product with no canonical counterpart.
	SourceContributed EntrySource = "contributed"
)

// CatalogEntry is the tagged result of a catalog resolution. Exactly one of
// Canonical or Contributed is populated depending on Source: Canonical for
// SourceCanonical, Contributed for SourceOverride and SourceContributed.
type CatalogEntry struct {
	Source      EntrySource
	Canonical   *CanonicalProduct
	Contributed *ContributedProduct
}

// LogicalID is the identifier callers asked for. For an override it is the
// canonical product id the shadow replaces, not the shadow's own row id.
func (e CatalogEntry) LogicalID() string {
	switch e.Source {
	case SourceCanonical:
		if e.Canonical != nil {
			return e.Canonical.ProductID
		}
	case SourceOverride:
		if e.Contributed != nil {
			return e.Contributed.SourceProductID
		}
	case SourceContributed:
		if e.Contributed != nil {
			return e.Contributed.ProductID
		}
	}
	return ""
}

// CatalogSummary is the flattened listing row derived from a CatalogEntry.
type CatalogSummary struct {
	ProductID string
	Name      string
	Brand     string
	Category  string
	ImageURL  string
	Rating    float64
	Source    EntrySource
}

func (e CatalogEntry) Summary() CatalogSummary {
	switch e.Source {
	case SourceCanonical:
		if e.Canonical == nil {
			return CatalogSummary{}
		}
		return CatalogSummary{
			ProductID: e.Canonical.ProductID,
			Name:      e.Canonical.Name,
			Brand:     e.Canonical.Brand,
			Category:  e.Canonical.Category,
			ImageURL:  e.Canonical.ImageURL,
			Rating:    e.Canonical.Rating,
			Source:    SourceCanonical,
		}
	default:
		if e.Contributed == nil {
			return CatalogSummary{}
		}
		return CatalogSummary{
			ProductID: e.LogicalID(),
			Name:      e.Contributed.Name,
			Brand:     e.Contributed.Brand,
			Category:  e.Contributed.Category,
			ImageURL:  e.Contributed.ImageURL,
			Rating:    e.Contributed.Rating,
			Source:    e.Source,
		}
	}
}
