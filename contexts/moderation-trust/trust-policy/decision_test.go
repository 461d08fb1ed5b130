package trustpolicy

import "testing"

func TestDecideNewEntityRegularIsPending(t *testing.T) {
	decision := DecideNewEntity(TierRegular, KindProduct)
	if decision.Status != StatusPending {
		t.Fatalf("expected pending, got %s", decision.Status)
	}
	if decision.NeedsReview {
		t.Fatal("pending content must not carry the needs-review flag")
	}
	if decision.AutoApplied {
		t.Fatal("regular submissions are never auto-applied")
	}
}

func TestDecideNewEntityTrustedGoesLiveFlagged(t *testing.T) {
	decision := DecideNewEntity(TierTrusted, KindProduct)
	if decision.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", decision.Status)
	}
	if !decision.NeedsReview {
		t.Fatal("trusted auto-applied content must await review")
	}
	if !decision.AutoApplied {
		t.Fatal("trusted submissions are auto-applied")
	}
}

func TestDecideNewEntityFullyTrustedSkipsReview(t *testing.T) {
	decision := DecideNewEntity(TierFullyTrusted, KindStore)
	if decision.Status != StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", decision.Status)
	}
	if decision.NeedsReview {
		t.Fatal("fully trusted submissions never need review")
	}
}

func TestDecideNewEntityUsesKindLabel(t *testing.T) {
	if got := DecideNewEntity(TierTrusted, KindAvailability).Status; got != StatusConfirmed {
		t.Fatalf("availability live label should be confirmed, got %s", got)
	}
	if got := DecideNewEntity(TierTrusted, KindPage).Status; got != StatusApproved {
		t.Fatalf("page live label should be approved, got %s", got)
	}
}

func TestDecideEditOutcomes(t *testing.T) {
	regular := DecideEdit(TierRegular)
	if regular.Status != StatusPending || regular.AutoApplied || regular.NeedsReview {
		t.Fatalf("unexpected regular edit decision: %+v", regular)
	}

	trusted := DecideEdit(TierTrusted)
	if trusted.Status != StatusApproved || !trusted.AutoApplied || !trusted.NeedsReview {
		t.Fatalf("unexpected trusted edit decision: %+v", trusted)
	}

	fully := DecideEdit(TierFullyTrusted)
	if fully.Status != StatusApproved || !fully.AutoApplied || fully.NeedsReview {
		t.Fatalf("unexpected fully trusted edit decision: %+v", fully)
	}
}

func TestDecisionsNeverPairNeedsReviewWithPending(t *testing.T) {
	tiers := []TrustTier{TierRegular, TierTrusted, TierFullyTrusted}
	kinds := []EntityKind{KindProduct, KindStore, KindAvailability, KindPage, KindReview}
	for _, tier := range tiers {
		for _, kind := range kinds {
			decision := DecideNewEntity(tier, kind)
			if decision.Status == StatusPending && decision.NeedsReview {
				t.Fatalf("tier=%s kind=%s pairs pending with needs-review", tier, kind)
			}
		}
		if decision := DecideEdit(tier); decision.Status == StatusPending && decision.NeedsReview {
			t.Fatalf("tier=%s edit decision pairs pending with needs-review", tier)
		}
	}
}

func TestEffectiveStatusAbsentMapsToLiveLabel(t *testing.T) {
	if got := EffectiveStatus(KindAvailability, nil); got != StatusConfirmed {
		t.Fatalf("expected confirmed for absent availability status, got %s", got)
	}
	empty := ModerationStatus("")
	if got := EffectiveStatus(KindAvailability, &empty); got != StatusConfirmed {
		t.Fatalf("expected confirmed for empty availability status, got %s", got)
	}
	rejected := StatusRejected
	if got := EffectiveStatus(KindAvailability, &rejected); got != StatusRejected {
		t.Fatalf("expected rejected to survive normalization, got %s", got)
	}
}

func TestIsLiveNeverTreatsAbsenceAsNotRejected(t *testing.T) {
	pending := StatusPending
	if IsLive(KindAvailability, &pending) {
		t.Fatal("pending must not be visible")
	}
	rejected := StatusRejected
	if IsLive(KindAvailability, &rejected) {
		t.Fatal("rejected must not be visible")
	}
	if !IsLive(KindAvailability, nil) {
		t.Fatal("legacy rows with no status must be visible")
	}
}
