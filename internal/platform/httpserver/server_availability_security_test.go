package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReportAvailabilityRequiresUser(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/availability/reports", bytes.NewReader([]byte(`{
		"productId":"prod-1",
		"storeId":"store-1"
	}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReportAvailabilityDuplicatePairConflicts(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"productId":"prod-1","storeId":"store-1"}`)

	first := httptest.NewRequest(http.MethodPost, "/availability/reports", bytes.NewReader(body))
	first.Header.Set("X-User-Id", "user-1")
	first.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, first)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first report, got %d body=%s", rr.Code, rr.Body.String())
	}

	second := httptest.NewRequest(http.MethodPost, "/availability/reports", bytes.NewReader(body))
	second.Header.Set("X-User-Id", "user-2")
	second.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, second)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate pair, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAvailabilityCountsRequireStoreIDs(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/availability/counts", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAvailabilityCountsReturnPerStoreTallies(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/availability/counts?store_id=store-1&store_id=store-2", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data struct {
			Counts map[string]struct {
				Total int `json:"total"`
			} `json:"counts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Counts) != 2 {
		t.Fatalf("expected counts for both stores, got %d", len(resp.Data.Counts))
	}
}
