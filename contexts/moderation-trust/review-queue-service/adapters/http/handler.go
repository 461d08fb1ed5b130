package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"stockist/contexts/moderation-trust/review-queue-service/application"
	"stockist/contexts/moderation-trust/review-queue-service/ports"
	httptransport "stockist/contexts/moderation-trust/review-queue-service/transport/http"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// ListQueueHandler godoc
// @Summary List entities awaiting review
// @Description Pending submissions plus auto-applied content still flagged needs-review, across all moderated kinds.
// @Tags review-queue
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Entity kind filter"
// @Param status query string false "pending, approved, confirmed or rejected"
// @Param needs_review query bool false "Only flagged live content"
// @Success 200 {object} httptransport.ListQueueResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Router /review/queue [get]
func (h Handler) ListQueueHandler(ctx context.Context, filter ports.QueueFilter) (httptransport.ListQueueResponse, error) {
	items, err := h.Service.ListQueue(ctx, filter)
	if err != nil {
		return httptransport.ListQueueResponse{}, err
	}
	resp := httptransport.ListQueueResponse{Status: "success"}
	resp.Data.Items = make([]httptransport.QueueItemDTO, 0, len(items))
	for _, item := range items {
		resp.Data.Items = append(resp.Data.Items, httptransport.QueueItemDTO{
			Kind:        string(item.Kind),
			EntityID:    item.EntityID,
			Summary:     item.Summary,
			EntryStatus: string(item.Status),
			NeedsReview: item.NeedsReview,
			CreatedBy:   item.CreatedBy,
			CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

// ApproveHandler godoc
// @Summary Approve a pending entity
// @Tags review-queue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Reviewing admin id"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body httptransport.ReviewActionRequest true "Review action"
// @Success 200 {object} httptransport.ReviewActionResponse
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /review/approve [post]
func (h Handler) ApproveHandler(ctx context.Context, idempotencyKey, reviewerID string, req httptransport.ReviewActionRequest) (httptransport.ReviewActionResponse, error) {
	record, err := h.Service.Approve(ctx, idempotencyKey, reviewerID, toActionInput(req))
	if err != nil {
		return httptransport.ReviewActionResponse{}, err
	}
	return httptransport.ReviewActionResponse{Status: "success", Data: toDecisionDTO(record)}, nil
}

// RejectHandler godoc
// @Summary Reject a pending entity
// @Tags review-queue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Reviewing admin id"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body httptransport.ReviewActionRequest true "Review action"
// @Success 200 {object} httptransport.ReviewActionResponse
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /review/reject [post]
func (h Handler) RejectHandler(ctx context.Context, idempotencyKey, reviewerID string, req httptransport.ReviewActionRequest) (httptransport.ReviewActionResponse, error) {
	record, err := h.Service.Reject(ctx, idempotencyKey, reviewerID, toActionInput(req))
	if err != nil {
		return httptransport.ReviewActionResponse{}, err
	}
	return httptransport.ReviewActionResponse{Status: "success", Data: toDecisionDTO(record)}, nil
}

// MarkReviewedHandler godoc
// @Summary Sign off auto-applied live content
// @Tags review-queue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Reviewing admin id"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body httptransport.ReviewActionRequest true "Review action"
// @Success 200 {object} httptransport.ReviewActionResponse
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /review/mark-reviewed [post]
func (h Handler) MarkReviewedHandler(ctx context.Context, idempotencyKey, reviewerID string, req httptransport.ReviewActionRequest) (httptransport.ReviewActionResponse, error) {
	record, err := h.Service.MarkReviewed(ctx, idempotencyKey, reviewerID, toActionInput(req))
	if err != nil {
		return httptransport.ReviewActionResponse{}, err
	}
	return httptransport.ReviewActionResponse{Status: "success", Data: toDecisionDTO(record)}, nil
}

func toActionInput(req httptransport.ReviewActionRequest) ports.ReviewActionInput {
	return ports.ReviewActionInput{
		Kind:     trustpolicy.EntityKind(req.Kind),
		EntityID: req.EntityID,
		Reason:   req.Reason,
		Notes:    req.Notes,
	}
}

func toDecisionDTO(record ports.DecisionRecord) httptransport.DecisionDTO {
	return httptransport.DecisionDTO{
		DecisionID: record.DecisionID,
		Kind:       string(record.Kind),
		EntityID:   record.EntityID,
		ReviewerID: record.ReviewerID,
		Action:     record.Action,
		Reason:     record.Reason,
		Notes:      record.Notes,
		CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339),
	}
}
