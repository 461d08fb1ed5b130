package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockist/contexts/catalog/store-directory-service/domain/entities"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

func TestSubmitStoreRequiresUser(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/directory/stores", bytes.NewReader([]byte(`{
		"name":"Corner Shop",
		"type":"physical",
		"placeId":"place-1"
	}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubmitStoreDuplicatePlaceIDConflicts(t *testing.T) {
	server := newTestServer()
	server.directory.Store.SeedStore(entities.DirectoryStore{
		StoreID: "store-1",
		Name:    "Corner Shop",
		Type:    entities.StorePhysical,
		PlaceID: "place-1",
		Status:  trustpolicy.StatusConfirmed,
	})

	req := httptest.NewRequest(http.MethodPost, "/directory/stores", bytes.NewReader([]byte(`{
		"name":"Corner Shop Again",
		"type":"physical",
		"placeId":"place-1"
	}`)))
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate place id, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestHiddenStoreForbiddenForPublicCallers(t *testing.T) {
	server := newTestServer()
	server.directory.Store.SeedStore(entities.DirectoryStore{
		StoreID: "store-1",
		Name:    "Pending Shop",
		Type:    entities.StoreOnline,
		Status:  trustpolicy.StatusPending,
	})

	req := httptest.NewRequest(http.MethodGet, "/directory/stores/store-1", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for hidden store, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUnknownStoreReturns404(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/directory/stores/missing", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCheckDuplicateIsOpenToAnonymousCallers(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/directory/stores/check-duplicate", bytes.NewReader([]byte(`{
		"name":"Corner Shop",
		"type":"physical",
		"placeId":"place-1"
	}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}
