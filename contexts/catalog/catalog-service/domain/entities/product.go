package entities

import (
	"strings"
	"time"

	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// CanonicalProduct is a catalog entry sourced from the bulk import pipeline.
// Canonical rows are immutable through this service; user corrections land as
// shadow overrides, never as in-place writes.
type CanonicalProduct struct {
	ProductID   string
	Name        string
	Brand       string
	Category    string
	Description string
	ImageURL    string
	WebsiteURL  string
	Rating      float64
	Archived    bool
	ImportedAt  time.Time
}

// ContributedProduct is a user-originated catalog record. When
// SourceProductID is set the record shadows a canonical product and overrides
// it at read time; otherwise it is a standalone product with no canonical
// counterpart.
type ContributedProduct struct {
	ProductID           string
	SourceProductID     string
	Name                string
	Brand               string
	Category            string
	Description         string
	ImageURL            string
	WebsiteURL          string
	Rating              float64
	Status              trustpolicy.ModerationStatus
	TrustedContribution bool
	NeedsReview         bool
	CreatedByUserID     string
	ReviewedByUserID    string
	ReviewedAt          *time.Time
	Archived            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (p ContributedProduct) IsShadow() bool {
	return strings.TrimSpace(p.SourceProductID) != ""
}

func (p ContributedProduct) ValidateCreate() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.CreatedByUserID) != ""
}
