package commands

import (
	"context"
	"log/slog"
	"strings"

	application "stockist/contexts/moderation-trust/edit-ledger-service/application"
	"stockist/contexts/moderation-trust/edit-ledger-service/domain/entities"
	domainerrors "stockist/contexts/moderation-trust/edit-ledger-service/domain/errors"
	"stockist/contexts/moderation-trust/edit-ledger-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type ReviewSuggestionCommand struct {
	SuggestionID string
	ActorID      string
}

type ReviewSuggestionUseCase struct {
	Ledger       ports.LedgerStore
	Targets      ports.TargetStore
	Contributors ports.ContributorDirectory
	Clock        ports.Clock
	Logger       *slog.Logger
}

// Approve applies a pending suggestion to its target and closes the row.
// The target may have moved since the suggestion was written; approval is
// last-write-wins, matching concurrent trusted edits.
func (uc ReviewSuggestionUseCase) Approve(ctx context.Context, cmd ReviewSuggestionCommand) (entities.EditSuggestion, error) {
	suggestion, err := uc.loadForReview(ctx, cmd)
	if err != nil {
		return entities.EditSuggestion{}, err
	}
	if suggestion.Status != trustpolicy.StatusPending {
		return entities.EditSuggestion{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	if err := uc.Targets.ApplyField(ctx, suggestion.Target, suggestion.Field, suggestion.SuggestedValue, now); err != nil {
		return entities.EditSuggestion{}, err
	}

	suggestion.Status = trustpolicy.StatusApproved
	suggestion.NeedsReview = false
	suggestion.ReviewedByUserID = strings.TrimSpace(cmd.ActorID)
	suggestion.ReviewedAt = &now
	if err := uc.Ledger.UpdateSuggestionReview(ctx, suggestion); err != nil {
		return entities.EditSuggestion{}, err
	}

	application.ResolveLogger(uc.Logger).Info("edit suggestion approved",
		"event", "edit_suggestion_approved",
		"module", "moderation-trust/edit-ledger-service",
		"layer", "application",
		"suggestion_id", suggestion.SuggestionID,
		"reviewed_by", suggestion.ReviewedByUserID,
	)
	return suggestion, nil
}

// Reject closes a pending suggestion without touching the target.
func (uc ReviewSuggestionUseCase) Reject(ctx context.Context, cmd ReviewSuggestionCommand) (entities.EditSuggestion, error) {
	suggestion, err := uc.loadForReview(ctx, cmd)
	if err != nil {
		return entities.EditSuggestion{}, err
	}
	if suggestion.Status != trustpolicy.StatusPending {
		return entities.EditSuggestion{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	suggestion.Status = trustpolicy.StatusRejected
	suggestion.NeedsReview = false
	suggestion.ReviewedByUserID = strings.TrimSpace(cmd.ActorID)
	suggestion.ReviewedAt = &now
	if err := uc.Ledger.UpdateSuggestionReview(ctx, suggestion); err != nil {
		return entities.EditSuggestion{}, err
	}

	application.ResolveLogger(uc.Logger).Info("edit suggestion rejected",
		"event", "edit_suggestion_rejected",
		"module", "moderation-trust/edit-ledger-service",
		"layer", "application",
		"suggestion_id", suggestion.SuggestionID,
		"reviewed_by", suggestion.ReviewedByUserID,
	)
	return suggestion, nil
}

// MarkReviewed signs off an auto-applied suggestion that was flagged for
// later human review. The applied value stays as-is.
func (uc ReviewSuggestionUseCase) MarkReviewed(ctx context.Context, cmd ReviewSuggestionCommand) (entities.EditSuggestion, error) {
	suggestion, err := uc.loadForReview(ctx, cmd)
	if err != nil {
		return entities.EditSuggestion{}, err
	}
	if suggestion.Status != trustpolicy.StatusApproved || !suggestion.NeedsReview {
		return entities.EditSuggestion{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	suggestion.NeedsReview = false
	suggestion.ReviewedByUserID = strings.TrimSpace(cmd.ActorID)
	suggestion.ReviewedAt = &now
	if err := uc.Ledger.UpdateSuggestionReview(ctx, suggestion); err != nil {
		return entities.EditSuggestion{}, err
	}
	return suggestion, nil
}

func (uc ReviewSuggestionUseCase) loadForReview(ctx context.Context, cmd ReviewSuggestionCommand) (entities.EditSuggestion, error) {
	cmd.SuggestionID = strings.TrimSpace(cmd.SuggestionID)
	cmd.ActorID = strings.TrimSpace(cmd.ActorID)
	if cmd.SuggestionID == "" || cmd.ActorID == "" {
		return entities.EditSuggestion{}, domainerrors.ErrInvalidRequest
	}

	contributor, found, err := uc.Contributors.ResolveContributor(ctx, cmd.ActorID)
	if err != nil {
		return entities.EditSuggestion{}, err
	}
	if !found || trustpolicy.Classify(contributor) != trustpolicy.TierFullyTrusted {
		return entities.EditSuggestion{}, domainerrors.ErrUnauthorizedActor
	}

	return uc.Ledger.GetSuggestion(ctx, cmd.SuggestionID)
}
