package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubmitEditRequiresUser(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/catalog/edits", bytes.NewReader([]byte(`{
		"target_kind":"product",
		"target_id":"prod-1",
		"field":"name",
		"suggested_value":"Better Name"
	}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetUnknownSuggestionReturns404(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/catalog/edits/missing", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestApproveEditRequiresUser(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/catalog/edits/sug-1/approve", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListEditsRejectsBadNeedsReviewFlag(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/catalog/edits?needs_review=sometimes", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}
