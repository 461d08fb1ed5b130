package reviewqueueservice

import (
	"log/slog"
	"time"

	httpadapter "stockist/contexts/moderation-trust/review-queue-service/adapters/http"
	"stockist/contexts/moderation-trust/review-queue-service/adapters/memory"
	"stockist/contexts/moderation-trust/review-queue-service/application"
	"stockist/contexts/moderation-trust/review-queue-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Clients        map[trustpolicy.EntityKind]ports.ModerationClient
	Decisions      ports.DecisionStore
	Idempotency    ports.IdempotencyStore
	Contributors   ports.ContributorDirectory
	Clock          ports.Clock
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Clients:        deps.Clients,
		Decisions:      deps.Decisions,
		Idempotency:    deps.Idempotency,
		Contributors:   deps.Contributors,
		Clock:          deps.Clock,
		IdempotencyTTL: deps.IdempotencyTTL,
		Logger:         deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	clients := map[trustpolicy.EntityKind]ports.ModerationClient{
		trustpolicy.KindProduct:      store.ClientFor(trustpolicy.KindProduct),
		trustpolicy.KindStore:        store.ClientFor(trustpolicy.KindStore),
		trustpolicy.KindAvailability: store.ClientFor(trustpolicy.KindAvailability),
	}
	module := NewModule(Dependencies{
		Clients:      clients,
		Decisions:    store,
		Idempotency:  store,
		Contributors: store,
		Clock:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
