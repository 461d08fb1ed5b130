package trustpolicy

type ModerationStatus string

const (
	StatusPending   ModerationStatus = "pending"
	StatusApproved  ModerationStatus = "approved"
	StatusConfirmed ModerationStatus = "confirmed"
	StatusRejected  ModerationStatus = "rejected"
)

type EntityKind string

const (
	KindProduct      EntityKind = "product"
	KindStore        EntityKind = "store"
	KindAvailability EntityKind = "availability"
	KindPage         EntityKind = "page"
	KindReview       EntityKind = "review"
	KindEdit         EntityKind = "edit"
)

// LiveStatus is the entity-kind-dependent label for publicly visible content.
// Store listings and availability facts are "confirmed"; everything else is
// "approved".
func LiveStatus(kind EntityKind) ModerationStatus {
	switch kind {
	case KindStore, KindAvailability:
		return StatusConfirmed
	default:
		return StatusApproved
	}
}

// EffectiveStatus normalizes an optional stored status. Rows written before
// the moderation rollout carry no status at all; absence maps to the kind's
// live label and never to pending or any open-ended "not rejected" reading.
func EffectiveStatus(kind EntityKind, status *ModerationStatus) ModerationStatus {
	if status == nil || *status == "" {
		return LiveStatus(kind)
	}
	return *status
}

// IsLive reports whether an optional stored status counts as publicly visible.
func IsLive(kind EntityKind, status *ModerationStatus) bool {
	return EffectiveStatus(kind, status) == LiveStatus(kind)
}

// Decision is the outcome of the moderation state machine for one submission.
// AutoApplied means the payload is already written to the target at creation
// time; NeedsReview marks live content awaiting administrator sign-off.
//
// NeedsReview is never combined with StatusPending: pending content reaches
// the review queue through its status, not through the flag.
type Decision struct {
	Status      ModerationStatus
	NeedsReview bool
	AutoApplied bool
}

// DecideNewEntity yields the initial moderation state for a brand-new
// contributed entity of the given kind.
func DecideNewEntity(tier TrustTier, kind EntityKind) Decision {
	switch tier {
	case TierFullyTrusted:
		return Decision{Status: LiveStatus(kind), NeedsReview: false, AutoApplied: true}
	case TierTrusted:
		return Decision{Status: LiveStatus(kind), NeedsReview: true, AutoApplied: true}
	default:
		return Decision{Status: StatusPending, NeedsReview: false, AutoApplied: false}
	}
}

// DecideEdit yields the state for an edit suggestion against existing
// content. The decision applies to the suggestion record; the target entity
// keeps its own independent needs-review flag.
func DecideEdit(tier TrustTier) Decision {
	switch tier {
	case TierFullyTrusted:
		return Decision{Status: StatusApproved, NeedsReview: false, AutoApplied: true}
	case TierTrusted:
		return Decision{Status: StatusApproved, NeedsReview: true, AutoApplied: true}
	default:
		return Decision{Status: StatusPending, NeedsReview: false, AutoApplied: false}
	}
}
