package entities

import (
	"strings"
	"time"

	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// StoreType separates brick-and-mortar listings from online shops. The two
// kinds carry different identity rules for duplicate detection.
type StoreType string

const (
	StorePhysical StoreType = "physical"
	StoreOnline   StoreType = "online"
)

func ParseStoreType(raw string) (StoreType, bool) {
	switch StoreType(strings.ToLower(strings.TrimSpace(raw))) {
	case StorePhysical:
		return StorePhysical, true
	case StoreOnline:
		return StoreOnline, true
	default:
		return "", false
	}
}

// DirectoryStore is a contributed store listing. PlaceID holds the external
// place identifier for physical stores and is empty for online ones.
type DirectoryStore struct {
	StoreID             string
	Name                string
	Type                StoreType
	PlaceID             string
	WebsiteURL          string
	Address             string
	Phone               string
	OpeningHours        string
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

// IsVisible reports whether the listing shows up for unprivileged readers.
// Store listings go live at confirmed, not approved.
func (s DirectoryStore) IsVisible() bool {
	return s.Status == trustpolicy.StatusConfirmed && !s.Archived
}
