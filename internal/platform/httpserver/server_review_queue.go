package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	reviewerrors "stockist/contexts/moderation-trust/review-queue-service/domain/errors"
	reviewports "stockist/contexts/moderation-trust/review-queue-service/ports"
	reviewhttp "stockist/contexts/moderation-trust/review-queue-service/transport/http"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

func writeReviewError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, reviewhttp.ErrorEnvelope{
		Status: "error",
		Error: reviewhttp.ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

func writeReviewDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reviewerrors.ErrInvalidRequest):
		writeReviewError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, reviewerrors.ErrUnsupportedKind):
		writeReviewError(w, http.StatusBadRequest, "UNSUPPORTED_KIND", err.Error())
	case errors.Is(err, reviewerrors.ErrEntityNotFound):
		writeReviewError(w, http.StatusNotFound, "ENTITY_NOT_FOUND", err.Error())
	case errors.Is(err, reviewerrors.ErrUnauthorizedReviewer):
		writeReviewError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error())
	case errors.Is(err, reviewerrors.ErrInvalidStatusTransition):
		writeReviewError(w, http.StatusConflict, "INVALID_STATUS_TRANSITION", err.Error())
	case errors.Is(err, reviewerrors.ErrIdempotencyKeyRequired):
		writeReviewError(w, http.StatusBadRequest, "IDEMPOTENCY_KEY_REQUIRED", err.Error())
	case errors.Is(err, reviewerrors.ErrIdempotencyConflict):
		writeReviewError(w, http.StatusConflict, "IDEMPOTENCY_CONFLICT", err.Error())
	default:
		writeReviewError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func requireReviewUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeReviewError(w, http.StatusUnauthorized, "USER_REQUIRED", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := reviewports.QueueFilter{
		Kind:   trustpolicy.EntityKind(query.Get("kind")),
		Status: query.Get("status"),
	}

	if raw := query.Get("needs_review"); raw != "" {
		needsReview, err := strconv.ParseBool(raw)
		if err != nil {
			writeReviewError(w, http.StatusBadRequest, "INVALID_NEEDS_REVIEW", "needs_review must be a boolean")
			return
		}
		filter.NeedsReview = &needsReview
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeReviewError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
			return
		}
		filter.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			writeReviewError(w, http.StatusBadRequest, "INVALID_OFFSET", "offset must be an integer")
			return
		}
		filter.Offset = offset
	}

	resp, err := s.review.Handler.ListQueueHandler(r.Context(), filter)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type reviewAction func(w http.ResponseWriter, r *http.Request, idempotencyKey string, reviewerID string, req reviewhttp.ReviewActionRequest)

func (s *Server) handleReviewAction(w http.ResponseWriter, r *http.Request, action reviewAction) {
	reviewerID, ok := requireReviewUser(w, r)
	if !ok {
		return
	}

	var req reviewhttp.ReviewActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	action(w, r, idempotencyKey, reviewerID, req)
}

func (s *Server) handleReviewApprove(w http.ResponseWriter, r *http.Request) {
	s.handleReviewAction(w, r, func(w http.ResponseWriter, r *http.Request, key, reviewerID string, req reviewhttp.ReviewActionRequest) {
		resp, err := s.review.Handler.ApproveHandler(r.Context(), key, reviewerID, req)
		if err != nil {
			writeReviewDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func (s *Server) handleReviewReject(w http.ResponseWriter, r *http.Request) {
	s.handleReviewAction(w, r, func(w http.ResponseWriter, r *http.Request, key, reviewerID string, req reviewhttp.ReviewActionRequest) {
		resp, err := s.review.Handler.RejectHandler(r.Context(), key, reviewerID, req)
		if err != nil {
			writeReviewDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func (s *Server) handleReviewMarkReviewed(w http.ResponseWriter, r *http.Request) {
	s.handleReviewAction(w, r, func(w http.ResponseWriter, r *http.Request, key, reviewerID string, req reviewhttp.ReviewActionRequest) {
		resp, err := s.review.Handler.MarkReviewedHandler(r.Context(), key, reviewerID, req)
		if err != nil {
			writeReviewDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})
}
