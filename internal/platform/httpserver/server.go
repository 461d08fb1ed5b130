package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	availabilityservice "stockist/contexts/catalog/availability-service"
	catalogservice "stockist/contexts/catalog/catalog-service"
	storedirectoryservice "stockist/contexts/catalog/store-directory-service"
	editledgerservice "stockist/contexts/moderation-trust/edit-ledger-service"
	reviewqueueservice "stockist/contexts/moderation-trust/review-queue-service"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "stockist/internal/platform/httpserver/docs"
)

// ContributorResolver answers who a request's user is for visibility checks.
// The same directory backs the per-context submission paths.
type ContributorResolver interface {
	ResolveContributor(ctx context.Context, userID string) (trustpolicy.Contributor, bool, error)
}

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	catalog      catalogservice.Module
	directory    storedirectoryservice.Module
	availability availabilityservice.Module
	editLedger   editledgerservice.Module
	review       reviewqueueservice.Module
	contributors ContributorResolver
}

func New(
	catalog catalogservice.Module,
	directory storedirectoryservice.Module,
	availability availabilityservice.Module,
	editLedger editledgerservice.Module,
	review reviewqueueservice.Module,
	contributors ContributorResolver,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		catalog:      catalog,
		directory:    directory,
		availability: availability,
		editLedger:   editLedger,
		review:       review,
		contributors: contributors,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /catalog/products", s.handleSubmitProduct)
	s.mux.HandleFunc("GET /catalog/products", s.handleListProducts)
	s.mux.HandleFunc("GET /catalog/products/{product_id}", s.handleGetProduct)

	s.mux.HandleFunc("POST /directory/stores", s.handleSubmitStore)
	s.mux.HandleFunc("GET /directory/stores", s.handleListStores)
	s.mux.HandleFunc("GET /directory/stores/{store_id}", s.handleGetStore)
	s.mux.HandleFunc("POST /directory/stores/check-duplicate", s.handleCheckStoreDuplicate)

	s.mux.HandleFunc("POST /availability/reports", s.handleReportAvailability)
	s.mux.HandleFunc("GET /availability/counts", s.handleAvailabilityCounts)
	s.mux.HandleFunc("GET /availability/stores/{store_id}/products", s.handleStoreVisibleProducts)

	s.mux.HandleFunc("POST /catalog/edits", s.handleSubmitEdit)
	s.mux.HandleFunc("GET /catalog/edits", s.handleListEdits)
	s.mux.HandleFunc("GET /catalog/edits/{suggestion_id}", s.handleGetEdit)
	s.mux.HandleFunc("POST /catalog/edits/{suggestion_id}/approve", s.handleApproveEdit)
	s.mux.HandleFunc("POST /catalog/edits/{suggestion_id}/reject", s.handleRejectEdit)
	s.mux.HandleFunc("POST /catalog/edits/{suggestion_id}/mark-reviewed", s.handleMarkEditReviewed)

	s.mux.HandleFunc("GET /review/queue", s.handleReviewQueue)
	s.mux.HandleFunc("POST /review/approve", s.handleReviewApprove)
	s.mux.HandleFunc("POST /review/reject", s.handleReviewReject)
	s.mux.HandleFunc("POST /review/mark-reviewed", s.handleReviewMarkReviewed)
}

// privilegedViewer reports whether the request user may see archived and
// hidden records. Anonymous callers and plain contributors get the public
// view.
func (s *Server) privilegedViewer(ctx context.Context, r *http.Request) bool {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" || s.contributors == nil {
		return false
	}
	contributor, found, err := s.contributors.ResolveContributor(ctx, userID)
	if err != nil || !found {
		return false
	}
	return contributor.Role == trustpolicy.RoleModerator || contributor.Role == trustpolicy.RoleAdmin
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
