package httpserver

import (
	"io"
	"log/slog"

	availabilityservice "stockist/contexts/catalog/availability-service"
	catalogservice "stockist/contexts/catalog/catalog-service"
	storedirectoryservice "stockist/contexts/catalog/store-directory-service"
	editledgerservice "stockist/contexts/moderation-trust/edit-ledger-service"
	reviewqueueservice "stockist/contexts/moderation-trust/review-queue-service"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// newTestServer wires every module against in-memory stores. The catalog
// store doubles as the contributor directory for visibility checks.
func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := catalogservice.NewInMemoryModule(logger)
	directory := storedirectoryservice.NewInMemoryModule(logger)
	availability := availabilityservice.NewInMemoryModule(logger)
	editLedger := editledgerservice.NewInMemoryModule(logger)
	review := reviewqueueservice.NewInMemoryModule(logger)
	return New(catalog, directory, availability, editLedger, review, catalog.Store, logger, ":0")
}

func registerViewer(s *Server, userID string, role trustpolicy.Role) {
	s.catalog.Store.RegisterContributor(trustpolicy.Contributor{UserID: userID, Role: role})
}
