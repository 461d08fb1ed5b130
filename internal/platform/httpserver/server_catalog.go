package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	catalogqueries "stockist/contexts/catalog/catalog-service/application/queries"
	catalogerrors "stockist/contexts/catalog/catalog-service/domain/errors"
	cataloghttp "stockist/contexts/catalog/catalog-service/transport/http"
)

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cataloghttp.ErrorEnvelope{
		Status: "error",
		Error: cataloghttp.ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrInvalidRequest):
		writeCatalogError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, catalogerrors.ErrProductNotFound):
		writeCatalogError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error())
	case errors.Is(err, catalogerrors.ErrProductArchived):
		writeCatalogError(w, http.StatusForbidden, "PRODUCT_ARCHIVED", err.Error())
	case errors.Is(err, catalogerrors.ErrFieldNotEditable):
		writeCatalogError(w, http.StatusUnprocessableEntity, "FIELD_NOT_EDITABLE", err.Error())
	case errors.Is(err, catalogerrors.ErrDuplicateProduct):
		writeCatalogError(w, http.StatusConflict, "DUPLICATE_PRODUCT", err.Error())
	default:
		writeCatalogError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func requireCatalogUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeCatalogError(w, http.StatusUnauthorized, "USER_REQUIRED", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleSubmitProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireCatalogUser(w, r)
	if !ok {
		return
	}

	var req cataloghttp.SubmitProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}

	resp, err := s.catalog.Handler.SubmitProductHandler(r.Context(), userID, req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("product_id")
	allowArchived := s.privilegedViewer(r.Context(), r)

	resp, err := s.catalog.Handler.GetProductHandler(r.Context(), productID, allowArchived)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	listQuery := catalogqueries.ListCatalogQuery{
		Query:         query.Get("q"),
		Brand:         query.Get("brand"),
		Category:      query.Get("category"),
		Sort:          query.Get("sort"),
		AllowArchived: s.privilegedViewer(r.Context(), r),
	}

	if pageRaw := query.Get("page"); pageRaw != "" {
		page, err := strconv.Atoi(pageRaw)
		if err != nil {
			writeCatalogError(w, http.StatusBadRequest, "INVALID_PAGE", "page must be an integer")
			return
		}
		listQuery.Page = page
	}
	if limitRaw := query.Get("limit"); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeCatalogError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
			return
		}
		listQuery.Limit = limit
	}

	resp, err := s.catalog.Handler.ListProductsHandler(r.Context(), listQuery)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
