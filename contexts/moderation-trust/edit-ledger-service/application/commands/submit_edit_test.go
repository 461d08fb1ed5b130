package commands

import (
	"context"
	"errors"
	"testing"

	"stockist/contexts/moderation-trust/edit-ledger-service/adapters/memory"
	"stockist/contexts/moderation-trust/edit-ledger-service/domain/entities"
	domainerrors "stockist/contexts/moderation-trust/edit-ledger-service/domain/errors"
	"stockist/contexts/moderation-trust/edit-ledger-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

func newSubmitUseCase(store *memory.Store) SubmitEditUseCase {
	return SubmitEditUseCase{
		Ledger:       store,
		Targets:      store,
		Contributors: store,
		Outbox:       store,
		Clock:        store,
		IDGen:        store,
	}
}

func seedCityPage(store *memory.Store) entities.TargetRef {
	target := entities.TargetRef{Kind: trustpolicy.KindPage, ID: "city-berlin"}
	store.RegisterTarget(target, map[string]string{"headline": "Old"})
	return target
}

func TestSubmitEditRegularLeavesTargetUntouched(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "u-1", Role: trustpolicy.RoleUser})
	uc := newSubmitUseCase(store)

	result, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target:         target,
		Field:          "headline",
		SuggestedValue: "New",
		ActorID:        "u-1",
	})
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if result.Applied {
		t.Fatal("regular edit must not be applied")
	}
	if result.Status != trustpolicy.StatusPending {
		t.Fatalf("expected pending, got %s", result.Status)
	}
	if value, _ := store.TargetField(target, "headline"); value != "Old" {
		t.Fatalf("target mutated by regular edit: %q", value)
	}

	suggestion, err := store.GetSuggestion(context.Background(), result.SuggestionID)
	if err != nil {
		t.Fatalf("ledger row missing: %v", err)
	}
	if suggestion.AutoApplied || suggestion.TrustedContribution || suggestion.NeedsReview {
		t.Fatalf("unexpected ledger flags: %+v", suggestion)
	}
	if suggestion.OriginalValue != "Old" || suggestion.SuggestedValue != "New" {
		t.Fatalf("ledger values wrong: %+v", suggestion)
	}
}

func TestSubmitEditRegularTwiceProducesTwoPendingRows(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "u-1", Role: trustpolicy.RoleUser})
	uc := newSubmitUseCase(store)

	first, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "New", ActorID: "u-1",
	})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "New", ActorID: "u-1",
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if first.SuggestionID == second.SuggestionID {
		t.Fatal("expected two independent ledger rows")
	}
	if value, _ := store.TargetField(target, "headline"); value != "Old" {
		t.Fatalf("target mutated: %q", value)
	}

	rows, err := store.ListSuggestions(context.Background(), ports.SuggestionFilter{
		TargetKind: target.Kind,
		TargetID:   target.ID,
		Status:     trustpolicy.StatusPending,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 pending rows, got %d", len(rows))
	}
}

func TestSubmitEditModeratorAppliesAndFlagsForReview(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "mod-1", Role: trustpolicy.RoleModerator})
	uc := newSubmitUseCase(store)

	result, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target:         target,
		Field:          "headline",
		SuggestedValue: "New",
		ActorID:        "mod-1",
	})
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if !result.Applied || !result.NeedsReview {
		t.Fatalf("expected applied+needs-review, got %+v", result)
	}
	if value, _ := store.TargetField(target, "headline"); value != "New" {
		t.Fatalf("target not mutated: %q", value)
	}

	suggestion, _ := store.GetSuggestion(context.Background(), result.SuggestionID)
	if suggestion.Status != trustpolicy.StatusApproved {
		t.Fatalf("expected approved, got %s", suggestion.Status)
	}
	if !suggestion.AutoApplied || !suggestion.TrustedContribution || !suggestion.NeedsReview {
		t.Fatalf("unexpected ledger flags: %+v", suggestion)
	}
}

func TestSubmitEditAdminAppliesWithoutReviewFlag(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "adm-1", Role: trustpolicy.RoleAdmin})
	uc := newSubmitUseCase(store)

	result, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target:         target,
		Field:          "headline",
		SuggestedValue: "New",
		ActorID:        "adm-1",
	})
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if !result.Applied || result.NeedsReview {
		t.Fatalf("expected applied without review, got %+v", result)
	}
	if value, _ := store.TargetField(target, "headline"); value != "New" {
		t.Fatalf("target not mutated: %q", value)
	}

	suggestion, _ := store.GetSuggestion(context.Background(), result.SuggestionID)
	if suggestion.NeedsReview {
		t.Fatal("admin edits never need review")
	}
}

func TestSubmitEditNoOpIsRejected(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "adm-1", Role: trustpolicy.RoleAdmin})
	uc := newSubmitUseCase(store)

	_, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "Old", ActorID: "adm-1",
	})
	if !errors.Is(err, domainerrors.ErrNoOpEdit) {
		t.Fatalf("expected ErrNoOpEdit, got %v", err)
	}

	// A second identical trusted edit is a no-op once the first applied.
	if _, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "New", ActorID: "adm-1",
	}); err != nil {
		t.Fatalf("first real edit: %v", err)
	}
	_, err = uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "New", ActorID: "adm-1",
	})
	if !errors.Is(err, domainerrors.ErrNoOpEdit) {
		t.Fatalf("expected ErrNoOpEdit on repeat, got %v", err)
	}
}

func TestSubmitEditExplicitClearIsAnEdit(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "adm-1", Role: trustpolicy.RoleAdmin})
	uc := newSubmitUseCase(store)

	result, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "", ActorID: "adm-1",
	})
	if err != nil {
		t.Fatalf("clearing edit returned error: %v", err)
	}
	if value, _ := store.TargetField(target, "headline"); value != "" {
		t.Fatalf("field not cleared: %q", value)
	}
	if !result.Applied {
		t.Fatal("clearing edit should apply for admin")
	}
}

func TestSubmitEditDisallowedField(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "u-1", Role: trustpolicy.RoleUser})
	uc := newSubmitUseCase(store)

	_, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "page_id", SuggestedValue: "x", ActorID: "u-1",
	})
	if !errors.Is(err, domainerrors.ErrFieldNotAllowed) {
		t.Fatalf("expected ErrFieldNotAllowed, got %v", err)
	}
}

func TestSubmitEditUnknownContributorFailsClosed(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	uc := newSubmitUseCase(store)

	result, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "New", ActorID: "ghost",
	})
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if result.Applied {
		t.Fatal("unknown contributor must be treated as regular")
	}
	if value, _ := store.TargetField(target, "headline"); value != "Old" {
		t.Fatalf("target mutated: %q", value)
	}
}

func TestSubmitEditMissingPageMaterializesLazily(t *testing.T) {
	store := memory.NewStore()
	store.RegisterContributor(trustpolicy.Contributor{UserID: "mod-1", Role: trustpolicy.RoleModerator})
	uc := newSubmitUseCase(store)
	target := entities.TargetRef{Kind: trustpolicy.KindPage, ID: "brand-acme"}

	result, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "Acme", ActorID: "mod-1",
	})
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if value, _ := store.TargetField(target, "headline"); value != "Acme" {
		t.Fatalf("page not materialized: %q", value)
	}
	suggestion, _ := store.GetSuggestion(context.Background(), result.SuggestionID)
	if suggestion.OriginalValue != "" {
		t.Fatalf("expected empty original for lazy page, got %q", suggestion.OriginalValue)
	}
}

func TestSubmitEditMissingProductDoesNotMaterialize(t *testing.T) {
	store := memory.NewStore()
	store.RegisterContributor(trustpolicy.Contributor{UserID: "mod-1", Role: trustpolicy.RoleModerator})
	uc := newSubmitUseCase(store)

	_, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target:         entities.TargetRef{Kind: trustpolicy.KindProduct, ID: "missing"},
		Field:          "name",
		SuggestedValue: "X",
		ActorID:        "mod-1",
	})
	if !errors.Is(err, domainerrors.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
}

type failingLedger struct {
	ports.LedgerStore
}

func (failingLedger) AppendSuggestion(context.Context, entities.EditSuggestion) error {
	return errors.New("ledger down")
}

func TestSubmitEditAppliedSurvivesLedgerFailure(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "adm-1", Role: trustpolicy.RoleAdmin})
	uc := newSubmitUseCase(store)
	uc.Ledger = failingLedger{LedgerStore: store}

	result, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "New", ActorID: "adm-1",
	})
	if err != nil {
		t.Fatalf("applied edit must not fail on ledger error, got %v", err)
	}
	if !result.Applied {
		t.Fatal("expected applied result")
	}
	if value, _ := store.TargetField(target, "headline"); value != "New" {
		t.Fatalf("target write lost: %q", value)
	}
}

func TestSubmitEditPendingFailsWhenLedgerDown(t *testing.T) {
	store := memory.NewStore()
	target := seedCityPage(store)
	store.RegisterContributor(trustpolicy.Contributor{UserID: "u-1", Role: trustpolicy.RoleUser})
	uc := newSubmitUseCase(store)
	uc.Ledger = failingLedger{LedgerStore: store}

	_, err := uc.Submit(context.Background(), SubmitEditCommand{
		Target: target, Field: "headline", SuggestedValue: "New", ActorID: "u-1",
	})
	if err == nil {
		t.Fatal("pending submission is the ledger row; its failure must surface")
	}
}
