package entities

import (
	"strings"
	"time"

	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// TargetRef names the logical entity an edit suggestion points at.
type TargetRef struct {
	Kind trustpolicy.EntityKind
	ID   string
}

func (t TargetRef) Validate() bool {
	return strings.TrimSpace(string(t.Kind)) != "" && strings.TrimSpace(t.ID) != ""
}

// EditSuggestion is one immutable row of the content-edit ledger. Rows are
// appended on every submitEdit call and never deleted; superseded values stay
// on record. The target entity, not the ledger, is the source of truth for
// the current value.
type EditSuggestion struct {
	SuggestionID        string
	Target              TargetRef
	Field               string
	OriginalValue       string
	SuggestedValue      string
	Reason              string
	UserID              string
	Status              trustpolicy.ModerationStatus
	TrustedContribution bool
	AutoApplied         bool
	NeedsReview         bool
	ReviewedByUserID    string
	ReviewedAt          *time.Time
	CreatedAt           time.Time
}

func (s EditSuggestion) ValidateCreate() bool {
	return s.Target.Validate() &&
		strings.TrimSpace(s.Field) != "" &&
		strings.TrimSpace(s.UserID) != ""
}
