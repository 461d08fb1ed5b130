package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	availabilityerrors "stockist/contexts/catalog/availability-service/domain/errors"
	availabilityhttp "stockist/contexts/catalog/availability-service/transport/http"
)

func writeAvailabilityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, availabilityhttp.ErrorEnvelope{
		Status: "error",
		Error: availabilityhttp.ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

func writeAvailabilityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, availabilityerrors.ErrInvalidRequest):
		writeAvailabilityError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, availabilityerrors.ErrRecordNotFound):
		writeAvailabilityError(w, http.StatusNotFound, "RECORD_NOT_FOUND", err.Error())
	case errors.Is(err, availabilityerrors.ErrDuplicateAvailability):
		writeAvailabilityError(w, http.StatusConflict, "DUPLICATE_AVAILABILITY", err.Error())
	default:
		writeAvailabilityError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func requireAvailabilityUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeAvailabilityError(w, http.StatusUnauthorized, "USER_REQUIRED", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleReportAvailability(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAvailabilityUser(w, r)
	if !ok {
		return
	}

	var req availabilityhttp.ReportAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAvailabilityError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}

	resp, err := s.availability.Handler.ReportAvailabilityHandler(r.Context(), userID, req)
	if err != nil {
		writeAvailabilityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAvailabilityCounts(w http.ResponseWriter, r *http.Request) {
	storeIDs := r.URL.Query()["store_id"]
	if len(storeIDs) == 0 {
		writeAvailabilityError(w, http.StatusBadRequest, "STORE_ID_REQUIRED", "at least one store_id query parameter is required")
		return
	}

	resp, err := s.availability.Handler.CountsByStoreHandler(r.Context(), storeIDs)
	if err != nil {
		writeAvailabilityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStoreVisibleProducts(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("store_id")

	resp, err := s.availability.Handler.VisibleProductsHandler(r.Context(), storeID)
	if err != nil {
		writeAvailabilityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
