package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	ledgerqueries "stockist/contexts/moderation-trust/edit-ledger-service/application/queries"
	ledgererrors "stockist/contexts/moderation-trust/edit-ledger-service/domain/errors"
	ledgerhttp "stockist/contexts/moderation-trust/edit-ledger-service/transport/http"
)

func writeEditLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorEnvelope{
		Status: "error",
		Error: ledgerhttp.ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

func writeEditLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrInvalidRequest):
		writeEditLedgerError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, ledgererrors.ErrTargetNotFound):
		writeEditLedgerError(w, http.StatusNotFound, "TARGET_NOT_FOUND", err.Error())
	case errors.Is(err, ledgererrors.ErrSuggestionNotFound):
		writeEditLedgerError(w, http.StatusNotFound, "SUGGESTION_NOT_FOUND", err.Error())
	case errors.Is(err, ledgererrors.ErrFieldNotAllowed):
		writeEditLedgerError(w, http.StatusUnprocessableEntity, "FIELD_NOT_ALLOWED", err.Error())
	case errors.Is(err, ledgererrors.ErrNoOpEdit):
		writeEditLedgerError(w, http.StatusConflict, "NO_OP_EDIT", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidStatusTransition):
		writeEditLedgerError(w, http.StatusConflict, "INVALID_STATUS_TRANSITION", err.Error())
	case errors.Is(err, ledgererrors.ErrUnauthorizedActor):
		writeEditLedgerError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error())
	default:
		writeEditLedgerError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func requireEditLedgerUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeEditLedgerError(w, http.StatusUnauthorized, "USER_REQUIRED", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleSubmitEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireEditLedgerUser(w, r)
	if !ok {
		return
	}

	var req ledgerhttp.SubmitEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEditLedgerError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}

	resp, err := s.editLedger.Handler.SubmitEditHandler(r.Context(), userID, req)
	if err != nil {
		writeEditLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEdits(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	listQuery := ledgerqueries.ListSuggestionsQuery{
		TargetKind: query.Get("target_kind"),
		TargetID:   query.Get("target_id"),
		UserID:     query.Get("user_id"),
		Status:     query.Get("status"),
	}

	if raw := query.Get("needs_review"); raw != "" {
		needsReview, err := strconv.ParseBool(raw)
		if err != nil {
			writeEditLedgerError(w, http.StatusBadRequest, "INVALID_NEEDS_REVIEW", "needs_review must be a boolean")
			return
		}
		listQuery.NeedsReview = &needsReview
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeEditLedgerError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
			return
		}
		listQuery.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			writeEditLedgerError(w, http.StatusBadRequest, "INVALID_OFFSET", "offset must be an integer")
			return
		}
		listQuery.Offset = offset
	}

	resp, err := s.editLedger.Handler.ListSuggestionsHandler(r.Context(), listQuery)
	if err != nil {
		writeEditLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetEdit(w http.ResponseWriter, r *http.Request) {
	resp, err := s.editLedger.Handler.GetSuggestionHandler(r.Context(), r.PathValue("suggestion_id"))
	if err != nil {
		writeEditLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireEditLedgerUser(w, r)
	if !ok {
		return
	}
	resp, err := s.editLedger.Handler.ApproveSuggestionHandler(r.Context(), userID, r.PathValue("suggestion_id"))
	if err != nil {
		writeEditLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireEditLedgerUser(w, r)
	if !ok {
		return
	}
	resp, err := s.editLedger.Handler.RejectSuggestionHandler(r.Context(), userID, r.PathValue("suggestion_id"))
	if err != nil {
		writeEditLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkEditReviewed(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireEditLedgerUser(w, r)
	if !ok {
		return
	}
	resp, err := s.editLedger.Handler.MarkSuggestionReviewedHandler(r.Context(), userID, r.PathValue("suggestion_id"))
	if err != nil {
		writeEditLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
