package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	directoryentities "stockist/contexts/catalog/store-directory-service/domain/entities"
	directoryerrors "stockist/contexts/catalog/store-directory-service/domain/errors"
	directoryports "stockist/contexts/catalog/store-directory-service/ports"
	directoryhttp "stockist/contexts/catalog/store-directory-service/transport/http"
)

func writeDirectoryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, directoryhttp.ErrorEnvelope{
		Status: "error",
		Error: directoryhttp.ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

func writeDirectoryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, directoryerrors.ErrInvalidRequest):
		writeDirectoryError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, directoryerrors.ErrStoreNotFound):
		writeDirectoryError(w, http.StatusNotFound, "STORE_NOT_FOUND", err.Error())
	case errors.Is(err, directoryerrors.ErrStoreHidden):
		writeDirectoryError(w, http.StatusForbidden, "STORE_NOT_VISIBLE", err.Error())
	case errors.Is(err, directoryerrors.ErrDuplicateStore):
		writeDirectoryError(w, http.StatusConflict, "DUPLICATE_STORE", err.Error())
	case errors.Is(err, directoryerrors.ErrSimilarStores):
		writeDirectoryError(w, http.StatusConflict, "SIMILAR_STORES", err.Error())
	case errors.Is(err, directoryerrors.ErrFieldNotEditable):
		writeDirectoryError(w, http.StatusUnprocessableEntity, "FIELD_NOT_EDITABLE", err.Error())
	default:
		writeDirectoryError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func requireDirectoryUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeDirectoryError(w, http.StatusUnauthorized, "USER_REQUIRED", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleSubmitStore(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireDirectoryUser(w, r)
	if !ok {
		return
	}

	var req directoryhttp.SubmitStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}

	resp, err := s.directory.Handler.SubmitStoreHandler(r.Context(), userID, req)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("store_id")
	allowHidden := s.privilegedViewer(r.Context(), r)

	resp, err := s.directory.Handler.GetStoreHandler(r.Context(), storeID, allowHidden)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := directoryports.StoreFilter{
		Query: query.Get("q"),
		Type:  directoryentities.StoreType(query.Get("type")),
	}
	allowHidden := s.privilegedViewer(r.Context(), r)

	resp, err := s.directory.Handler.ListStoresHandler(r.Context(), filter, allowHidden)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckStoreDuplicate(w http.ResponseWriter, r *http.Request) {
	var req directoryhttp.CheckDuplicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}

	resp, err := s.directory.Handler.CheckDuplicateHandler(r.Context(), req)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
