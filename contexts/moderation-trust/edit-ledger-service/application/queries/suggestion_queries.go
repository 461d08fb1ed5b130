package queries

import (
	"context"
	"log/slog"
	"strings"

	"stockist/contexts/moderation-trust/edit-ledger-service/domain/entities"
	domainerrors "stockist/contexts/moderation-trust/edit-ledger-service/domain/errors"
	"stockist/contexts/moderation-trust/edit-ledger-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type ListSuggestionsQuery struct {
	TargetKind  string
	TargetID    string
	UserID      string
	Status      string
	NeedsReview *bool
	Limit       int
	Offset      int
}

type QueryUseCase struct {
	Ledger ports.LedgerStore
	Logger *slog.Logger
}

func (uc QueryUseCase) GetSuggestion(ctx context.Context, suggestionID string) (entities.EditSuggestion, error) {
	suggestionID = strings.TrimSpace(suggestionID)
	if suggestionID == "" {
		return entities.EditSuggestion{}, domainerrors.ErrInvalidRequest
	}
	return uc.Ledger.GetSuggestion(ctx, suggestionID)
}

func (uc QueryUseCase) ListSuggestions(ctx context.Context, query ListSuggestionsQuery) ([]entities.EditSuggestion, error) {
	status := strings.TrimSpace(strings.ToLower(query.Status))
	if status != "" {
		switch status {
		case "pending", "approved", "rejected":
		default:
			return nil, domainerrors.ErrInvalidRequest
		}
	}
	if query.Offset < 0 {
		return nil, domainerrors.ErrInvalidRequest
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	return uc.Ledger.ListSuggestions(ctx, ports.SuggestionFilter{
		TargetKind:  trustpolicy.EntityKind(strings.TrimSpace(query.TargetKind)),
		TargetID:    strings.TrimSpace(query.TargetID),
		UserID:      strings.TrimSpace(query.UserID),
		Status:      trustpolicy.ModerationStatus(status),
		NeedsReview: query.NeedsReview,
		Limit:       query.Limit,
		Offset:      query.Offset,
	})
}

// FieldHistory returns the full audit trail for one field on one target,
// newest first, including rejected and superseded suggestions.
func (uc QueryUseCase) FieldHistory(ctx context.Context, target entities.TargetRef, field string) ([]entities.EditSuggestion, error) {
	field = strings.TrimSpace(field)
	if !target.Validate() || field == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	items, err := uc.Ledger.ListSuggestions(ctx, ports.SuggestionFilter{
		TargetKind: target.Kind,
		TargetID:   strings.TrimSpace(target.ID),
		Limit:      100,
	})
	if err != nil {
		return nil, err
	}
	history := make([]entities.EditSuggestion, 0, len(items))
	for _, item := range items {
		if item.Field == field {
			history = append(history, item)
		}
	}
	return history, nil
}
