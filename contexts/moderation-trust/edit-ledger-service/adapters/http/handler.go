package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"stockist/contexts/moderation-trust/edit-ledger-service/application/commands"
	"stockist/contexts/moderation-trust/edit-ledger-service/application/queries"
	"stockist/contexts/moderation-trust/edit-ledger-service/domain/entities"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
	httptransport "stockist/contexts/moderation-trust/edit-ledger-service/transport/http"
)

type Handler struct {
	SubmitEdit commands.SubmitEditUseCase
	Review     commands.ReviewSuggestionUseCase
	Queries    queries.QueryUseCase
	Logger     *slog.Logger
}

// SubmitEditHandler godoc
// @Summary Suggest a content edit
// @Description Records an edit suggestion; trusted tiers apply it in place.
// @Tags edit-ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Acting user id"
// @Param request body httptransport.SubmitEditRequest true "Edit suggestion"
// @Success 200 {object} httptransport.SubmitEditResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Failure 404 {object} httptransport.ErrorEnvelope
// @Router /catalog/edits [post]
func (h Handler) SubmitEditHandler(ctx context.Context, actorID string, req httptransport.SubmitEditRequest) (httptransport.SubmitEditResponse, error) {
	result, err := h.SubmitEdit.Submit(ctx, commands.SubmitEditCommand{
		Target: entities.TargetRef{
			Kind: trustpolicy.EntityKind(req.TargetKind),
			ID:   req.TargetID,
		},
		Field:          req.Field,
		SuggestedValue: req.SuggestedValue,
		Reason:         req.Reason,
		ActorID:        actorID,
	})
	if err != nil {
		return httptransport.SubmitEditResponse{}, err
	}

	resp := httptransport.SubmitEditResponse{Status: "success"}
	resp.Data.SuggestionID = result.SuggestionID
	resp.Data.EditStatus = string(result.Status)
	resp.Data.Applied = result.Applied
	resp.Data.NeedsReview = result.NeedsReview
	// Contributors are told exactly what happened: pending review for
	// regular tiers, live plus submitted-for-review for trusted ones.
	switch {
	case !result.Applied:
		resp.Data.Message = "Your edit was submitted and is pending review."
	case result.NeedsReview:
		resp.Data.Message = "Your edit is live and has been submitted for review."
	default:
		resp.Data.Message = "Your edit is live."
	}
	return resp, nil
}

// ListSuggestionsHandler godoc
// @Summary List edit suggestions
// @Tags edit-ledger
// @Produce json
// @Security BearerAuth
// @Param target_kind query string false "Target entity kind"
// @Param target_id query string false "Target entity id"
// @Param status query string false "pending, approved or rejected"
// @Param needs_review query bool false "Only auto-applied rows awaiting review"
// @Success 200 {object} httptransport.ListSuggestionsResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Router /catalog/edits [get]
func (h Handler) ListSuggestionsHandler(ctx context.Context, req queries.ListSuggestionsQuery) (httptransport.ListSuggestionsResponse, error) {
	items, err := h.Queries.ListSuggestions(ctx, req)
	if err != nil {
		return httptransport.ListSuggestionsResponse{}, err
	}
	resp := httptransport.ListSuggestionsResponse{Status: "success"}
	resp.Data.Suggestions = make([]httptransport.SuggestionDTO, 0, len(items))
	for _, item := range items {
		resp.Data.Suggestions = append(resp.Data.Suggestions, toSuggestionDTO(item))
	}
	return resp, nil
}

// GetSuggestionHandler godoc
// @Summary Get one edit suggestion
// @Tags edit-ledger
// @Produce json
// @Security BearerAuth
// @Param suggestion_id path string true "Suggestion id"
// @Success 200 {object} httptransport.GetSuggestionResponse
// @Failure 404 {object} httptransport.ErrorEnvelope
// @Router /catalog/edits/{suggestion_id} [get]
func (h Handler) GetSuggestionHandler(ctx context.Context, suggestionID string) (httptransport.GetSuggestionResponse, error) {
	item, err := h.Queries.GetSuggestion(ctx, suggestionID)
	if err != nil {
		return httptransport.GetSuggestionResponse{}, err
	}
	return httptransport.GetSuggestionResponse{Status: "success", Data: toSuggestionDTO(item)}, nil
}

// ApproveSuggestionHandler godoc
// @Summary Approve a pending edit suggestion
// @Tags edit-ledger
// @Produce json
// @Security BearerAuth
// @Param suggestion_id path string true "Suggestion id"
// @Success 200 {object} httptransport.ReviewSuggestionResponse
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /catalog/edits/{suggestion_id}/approve [post]
func (h Handler) ApproveSuggestionHandler(ctx context.Context, actorID string, suggestionID string) (httptransport.ReviewSuggestionResponse, error) {
	item, err := h.Review.Approve(ctx, commands.ReviewSuggestionCommand{
		SuggestionID: suggestionID,
		ActorID:      actorID,
	})
	if err != nil {
		return httptransport.ReviewSuggestionResponse{}, err
	}
	return httptransport.ReviewSuggestionResponse{Status: "success", Data: toSuggestionDTO(item)}, nil
}

// RejectSuggestionHandler godoc
// @Summary Reject a pending edit suggestion
// @Tags edit-ledger
// @Produce json
// @Security BearerAuth
// @Param suggestion_id path string true "Suggestion id"
// @Success 200 {object} httptransport.ReviewSuggestionResponse
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /catalog/edits/{suggestion_id}/reject [post]
func (h Handler) RejectSuggestionHandler(ctx context.Context, actorID string, suggestionID string) (httptransport.ReviewSuggestionResponse, error) {
	item, err := h.Review.Reject(ctx, commands.ReviewSuggestionCommand{
		SuggestionID: suggestionID,
		ActorID:      actorID,
	})
	if err != nil {
		return httptransport.ReviewSuggestionResponse{}, err
	}
	return httptransport.ReviewSuggestionResponse{Status: "success", Data: toSuggestionDTO(item)}, nil
}

// MarkSuggestionReviewedHandler godoc
// @Summary Sign off an auto-applied edit suggestion
// @Tags edit-ledger
// @Produce json
// @Security BearerAuth
// @Param suggestion_id path string true "Suggestion id"
// @Success 200 {object} httptransport.ReviewSuggestionResponse
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /catalog/edits/{suggestion_id}/mark-reviewed [post]
func (h Handler) MarkSuggestionReviewedHandler(ctx context.Context, actorID string, suggestionID string) (httptransport.ReviewSuggestionResponse, error) {
	item, err := h.Review.MarkReviewed(ctx, commands.ReviewSuggestionCommand{
		SuggestionID: suggestionID,
		ActorID:      actorID,
	})
	if err != nil {
		return httptransport.ReviewSuggestionResponse{}, err
	}
	return httptransport.ReviewSuggestionResponse{Status: "success", Data: toSuggestionDTO(item)}, nil
}

func toSuggestionDTO(item entities.EditSuggestion) httptransport.SuggestionDTO {
	dto := httptransport.SuggestionDTO{
		SuggestionID:        item.SuggestionID,
		TargetKind:          string(item.Target.Kind),
		TargetID:            item.Target.ID,
		Field:               item.Field,
		OriginalValue:       item.OriginalValue,
		SuggestedValue:      item.SuggestedValue,
		Reason:              item.Reason,
		UserID:              item.UserID,
		Status:              string(item.Status),
		TrustedContribution: item.TrustedContribution,
		AutoApplied:         item.AutoApplied,
		NeedsReview:         item.NeedsReview,
		ReviewedBy:          item.ReviewedByUserID,
		CreatedAt:           item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if item.ReviewedAt != nil {
		dto.ReviewedAt = item.ReviewedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
