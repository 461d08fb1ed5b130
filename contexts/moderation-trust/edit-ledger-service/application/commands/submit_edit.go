package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "stockist/contexts/moderation-trust/edit-ledger-service/application"
	"stockist/contexts/moderation-trust/edit-ledger-service/domain/entities"
	domainerrors "stockist/contexts/moderation-trust/edit-ledger-service/domain/errors"
	domainservices "stockist/contexts/moderation-trust/edit-ledger-service/domain/services"
	"stockist/contexts/moderation-trust/edit-ledger-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type SubmitEditCommand struct {
	Target         entities.TargetRef
	Field          string
	SuggestedValue string
	Reason         string
	ActorID        string
}

type SubmitEditUseCase struct {
	Ledger       ports.LedgerStore
	Targets      ports.TargetStore
	Contributors ports.ContributorDirectory
	Outbox       ports.OutboxRepository
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

// Submit runs one edit suggestion through the trust-tier decision: read the
// current value, apply in place for trusted tiers, and append exactly one
// ledger row either way. An explicit empty SuggestedValue clears the field;
// there is no implicit fallback for cleared values.
func (uc SubmitEditUseCase) Submit(ctx context.Context, cmd SubmitEditCommand) (ports.EditResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	cmd.Target.ID = strings.TrimSpace(cmd.Target.ID)
	cmd.Field = strings.TrimSpace(cmd.Field)
	cmd.Reason = strings.TrimSpace(cmd.Reason)
	cmd.ActorID = strings.TrimSpace(cmd.ActorID)

	if !cmd.Target.Validate() || cmd.Field == "" || cmd.ActorID == "" {
		return ports.EditResult{}, domainerrors.ErrInvalidRequest
	}
	if !domainservices.FieldAllowed(cmd.Target.Kind, cmd.Field) {
		return ports.EditResult{}, domainerrors.ErrFieldNotAllowed
	}

	contributor, found, err := uc.Contributors.ResolveContributor(ctx, cmd.ActorID)
	if err != nil {
		return ports.EditResult{}, err
	}
	if !found {
		// Unresolved contributors fail closed to Regular.
		contributor = trustpolicy.Contributor{UserID: cmd.ActorID}
	}
	tier := trustpolicy.Classify(contributor)

	originalValue, err := uc.Targets.ReadField(ctx, cmd.Target, cmd.Field)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrTargetNotFound) || !domainservices.SupportsImplicitCreation(cmd.Target.Kind) {
			return ports.EditResult{}, err
		}
		originalValue = ""
	}
	if originalValue == cmd.SuggestedValue {
		return ports.EditResult{}, domainerrors.ErrNoOpEdit
	}

	decision := trustpolicy.DecideEdit(tier)
	now := uc.Clock.Now().UTC()

	if decision.AutoApplied {
		if err := uc.Targets.ApplyField(ctx, cmd.Target, cmd.Field, cmd.SuggestedValue, now); err != nil {
			return ports.EditResult{}, err
		}
	}

	suggestionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return ports.EditResult{}, err
	}
	suggestion := entities.EditSuggestion{
		SuggestionID:        suggestionID,
		Target:              cmd.Target,
		Field:               cmd.Field,
		OriginalValue:       originalValue,
		SuggestedValue:      cmd.SuggestedValue,
		Reason:              cmd.Reason,
		UserID:              cmd.ActorID,
		Status:              decision.Status,
		TrustedContribution: tier.AtLeastTrusted(),
		AutoApplied:         decision.AutoApplied,
		NeedsReview:         decision.NeedsReview,
		CreatedAt:           now,
	}

	if err := uc.Ledger.AppendSuggestion(ctx, suggestion); err != nil {
		if !decision.AutoApplied {
			return ports.EditResult{}, err
		}
		// The target write already succeeded and the user was told the edit
		// applied. The ledger is best-effort audit, so a missing row is a
		// data-quality gap, not a failed edit.
		logger.Warn("ledger append failed after target mutation",
			"event", "edit_ledger_partial_write",
			"module", "moderation-trust/edit-ledger-service",
			"layer", "application",
			"target_kind", string(cmd.Target.Kind),
			"target_id", cmd.Target.ID,
			"field", cmd.Field,
			"error", err.Error(),
		)
	} else {
		uc.appendOutbox(ctx, suggestion, now)
	}

	logger.Info("edit suggestion recorded",
		"event", "edit_suggestion_recorded",
		"module", "moderation-trust/edit-ledger-service",
		"layer", "application",
		"suggestion_id", suggestion.SuggestionID,
		"target_kind", string(cmd.Target.Kind),
		"target_id", cmd.Target.ID,
		"field", cmd.Field,
		"tier", string(tier),
		"auto_applied", decision.AutoApplied,
	)
	return ports.EditResult{
		SuggestionID: suggestion.SuggestionID,
		Status:       decision.Status,
		Applied:      decision.AutoApplied,
		NeedsReview:  decision.NeedsReview,
	}, nil
}

// appendOutbox records the contribution event for the worker relay. Event
// delivery is best-effort alongside the ledger; failures are logged only.
func (uc SubmitEditUseCase) appendOutbox(ctx context.Context, suggestion entities.EditSuggestion, now time.Time) {
	if uc.Outbox == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"suggestion_id": suggestion.SuggestionID,
		"target_kind":   string(suggestion.Target.Kind),
		"target_id":     suggestion.Target.ID,
		"field":         suggestion.Field,
		"status":        string(suggestion.Status),
		"auto_applied":  suggestion.AutoApplied,
		"needs_review":  suggestion.NeedsReview,
		"user_id":       suggestion.UserID,
	})
	if err != nil {
		return
	}
	if err := uc.Outbox.AppendOutbox(ctx, ports.OutboxMessage{
		ID:         suggestion.SuggestionID,
		EventType:  "edit_suggestion_recorded",
		EntityType: string(suggestion.Target.Kind),
		EntityID:   suggestion.Target.ID,
		Payload:    payload,
		Status:     "pending",
		CreatedAt:  now,
	}); err != nil {
		application.ResolveLogger(uc.Logger).Warn("outbox append failed",
			"event", "edit_ledger_outbox_append_failed",
			"module", "moderation-trust/edit-ledger-service",
			"layer", "application",
			"suggestion_id", suggestion.SuggestionID,
			"error", err.Error(),
		)
	}
}
