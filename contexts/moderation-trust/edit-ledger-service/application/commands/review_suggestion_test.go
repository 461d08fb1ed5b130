package commands

import (
	"context"
	"errors"
	"testing"

	"stockist/contexts/moderation-trust/edit-ledger-service/adapters/memory"
	domainerrors "stockist/contexts/moderation-trust/edit-ledger-service/domain/errors"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

func newReviewUseCase(store *memory.Store) ReviewSuggestionUseCase {
	return ReviewSuggestionUseCase{
		Ledger:       store,
		Targets:      store,
		Contributors: store,
		Clock:        store,
	}
}

func seedPendingSuggestion(t *testing.T, store *memory.Store) string {
	t.Helper()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "u-1", Role: trustpolicy.RoleUser})
	result, err := newSubmitUseCase(store).Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "New", ActorID: "u-1",
	})
	if err != nil {
		t.Fatalf("seed submit: %v", err)
	}
	return result.SuggestionID
}

func TestApproveSuggestionAppliesValue(t *testing.T) {
	store := memory.NewStore()
	suggestionID := seedPendingSuggestion(t, store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "adm-1", Role: trustpolicy.RoleAdmin})
	uc := newReviewUseCase(store)

	reviewed, err := uc.Approve(context.Background(), ReviewSuggestionCommand{
		SuggestionID: suggestionID,
		ActorID:      "adm-1",
	})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if reviewed.Status != trustpolicy.StatusApproved {
		t.Fatalf("expected approved, got %s", reviewed.Status)
	}
	if reviewed.ReviewedByUserID != "adm-1" || reviewed.ReviewedAt == nil {
		t.Fatalf("review metadata missing: %+v", reviewed)
	}
	if reviewed.NeedsReview {
		t.Fatal("admin-approved suggestion must not need review")
	}

	stored, _ := store.GetSuggestion(context.Background(), suggestionID)
	if stored.Status != trustpolicy.StatusApproved {
		t.Fatalf("ledger not updated: %s", stored.Status)
	}
	if value, _ := store.TargetField(stored.Target, "headline"); value != "New" {
		t.Fatalf("approved value not applied: %q", value)
	}
}

func TestRejectSuggestionLeavesTarget(t *testing.T) {
	store := memory.NewStore()
	suggestionID := seedPendingSuggestion(t, store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "adm-1", Role: trustpolicy.RoleAdmin})
	uc := newReviewUseCase(store)

	reviewed, err := uc.Reject(context.Background(), ReviewSuggestionCommand{
		SuggestionID: suggestionID,
		ActorID:      "adm-1",
	})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if reviewed.Status != trustpolicy.StatusRejected {
		t.Fatalf("expected rejected, got %s", reviewed.Status)
	}
	if value, _ := store.TargetField(reviewed.Target, "headline"); value != "Old" {
		t.Fatalf("rejected suggestion touched target: %q", value)
	}
}

func TestReviewRequiresFullyTrustedActor(t *testing.T) {
	store := memory.NewStore()
	suggestionID := seedPendingSuggestion(t, store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "mod-1", Role: trustpolicy.RoleModerator})
	uc := newReviewUseCase(store)

	_, err := uc.Approve(context.Background(), ReviewSuggestionCommand{
		SuggestionID: suggestionID,
		ActorID:      "mod-1",
	})
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("expected ErrUnauthorizedActor, got %v", err)
	}
}

func TestApproveTwiceIsInvalidTransition(t *testing.T) {
	store := memory.NewStore()
	suggestionID := seedPendingSuggestion(t, store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "adm-1", Role: trustpolicy.RoleAdmin})
	uc := newReviewUseCase(store)

	if _, err := uc.Approve(context.Background(), ReviewSuggestionCommand{SuggestionID: suggestionID, ActorID: "adm-1"}); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	_, err := uc.Approve(context.Background(), ReviewSuggestionCommand{SuggestionID: suggestionID, ActorID: "adm-1"})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestMarkReviewedClearsFlagOnly(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "mod-1", Role: trustpolicy.RoleModerator})
	store.RegisterContributor(trustpolicy.Contributor{UserID: "adm-1", Role: trustpolicy.RoleAdmin})

	result, err := newSubmitUseCase(store).Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "New", ActorID: "mod-1",
	})
	if err != nil {
		t.Fatalf("seed trusted submit: %v", err)
	}

	uc := newReviewUseCase(store)
	reviewed, err := uc.MarkReviewed(context.Background(), ReviewSuggestionCommand{
		SuggestionID: result.SuggestionID,
		ActorID:      "adm-1",
	})
	if err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}
	if reviewed.NeedsReview {
		t.Fatal("needs-review flag not cleared")
	}
	if reviewed.Status != trustpolicy.StatusApproved {
		t.Fatalf("status must stay approved, got %s", reviewed.Status)
	}
	if value, _ := store.TargetField(target, "headline"); value != "New" {
		t.Fatalf("mark-reviewed must not touch the target: %q", value)
	}
}

func TestMarkReviewedRejectsPendingSuggestion(t *testing.T) {
	store := memory.NewStore()
	suggestionID := seedPendingSuggestion(t, store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "adm-1", Role: trustpolicy.RoleAdmin})
	uc := newReviewUseCase(store)

	_, err := uc.MarkReviewed(context.Background(), ReviewSuggestionCommand{
		SuggestionID: suggestionID,
		ActorID:      "adm-1",
	})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
}
