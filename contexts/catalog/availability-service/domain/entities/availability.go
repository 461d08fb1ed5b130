package entities

import (
	"strings"
	"time"

	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// AvailabilityRecord states that a product can be bought at a store. Status
// is a pointer on purpose: rows written before the moderation rollout carry
// no status at all, and absence normalizes to confirmed, never to pending.
type AvailabilityRecord struct {
	RecordID            string
	ProductID           string
	StoreID             string
	Status              *trustpolicy.ModerationStatus
	Source              string
	PriceRange          string
	LastConfirmedAt     time.Time
	TrustedContribution bool
	NeedsReview         bool
	CreatedByUserID     string
	ReviewedByUserID    string
	ReviewedAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EffectiveStatus normalizes the optional stored status through the shared
// rule: absence means confirmed.
func (r AvailabilityRecord) EffectiveStatus() trustpolicy.ModerationStatus {
	return trustpolicy.EffectiveStatus(trustpolicy.KindAvailability, r.Status)
}

// IsVisible applies the visibility predicate for availability facts:
// status == confirmed OR status absent. Never "not pending and not rejected".
func (r AvailabilityRecord) IsVisible() bool {
	return trustpolicy.IsLive(trustpolicy.KindAvailability, r.Status)
}

func (r AvailabilityRecord) PairKey() string {
	return strings.TrimSpace(r.ProductID) + "|" + strings.TrimSpace(r.StoreID)
}

// StatusCounts is the per-store rollup of availability records.
type StatusCounts struct {
	Confirmed int
	Pending   int
	Rejected  int
	Total     int
}
