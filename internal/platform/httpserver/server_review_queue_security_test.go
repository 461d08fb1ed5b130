package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

func TestReviewApproveRequiresUser(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/review/approve", bytes.NewReader([]byte(`{
		"kind":"product",
		"entityId":"prod-1"
	}`)))
	req.Header.Set("Idempotency-Key", "approve-1")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReviewApproveRequiresIdempotencyKey(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/review/approve", bytes.NewReader([]byte(`{
		"kind":"product",
		"entityId":"prod-1"
	}`)))
	req.Header.Set("X-User-Id", "adm-1")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReviewRejectDeniesUnprivilegedUsers(t *testing.T) {
	server := newTestServer()
	server.review.Store.RegisterContributor(trustpolicy.Contributor{UserID: "user-1", Role: trustpolicy.RoleUser})

	req := httptest.NewRequest(http.MethodPost, "/review/reject", bytes.NewReader([]byte(`{
		"kind":"product",
		"entityId":"prod-1",
		"reason":"spam"
	}`)))
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("Idempotency-Key", "reject-1")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReviewQueueRejectsUnknownStatus(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/review/queue?status=weird", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}
