package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	availabilityservice "stockist/contexts/catalog/availability-service"
	availabilitypg "stockist/contexts/catalog/availability-service/adapters/postgres"
	catalogservice "stockist/contexts/catalog/catalog-service"
	catalogpg "stockist/contexts/catalog/catalog-service/adapters/postgres"
	storedirectoryservice "stockist/contexts/catalog/store-directory-service"
	directorypg "stockist/contexts/catalog/store-directory-service/adapters/postgres"
	contributordirectory "stockist/contexts/moderation-trust/contributor-directory"
	editledgerservice "stockist/contexts/moderation-trust/edit-ledger-service"
	ledgerpg "stockist/contexts/moderation-trust/edit-ledger-service/adapters/postgres"
	ledgerworkers "stockist/contexts/moderation-trust/edit-ledger-service/application/workers"
	ledgerports "stockist/contexts/moderation-trust/edit-ledger-service/ports"
	reviewqueueservice "stockist/contexts/moderation-trust/review-queue-service"
	reviewpg "stockist/contexts/moderation-trust/review-queue-service/adapters/postgres"
	reviewports "stockist/contexts/moderation-trust/review-queue-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
	"stockist/internal/platform/config"
	"stockist/internal/platform/db"
	"stockist/internal/platform/httpserver"
	"stockist/internal/platform/messaging"
	"stockist/internal/shared/events"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres       *db.Postgres
	bus            *messaging.Kafka
	outboxRelay    ledgerworkers.OutboxRelay
	relayEnabled   bool
	consumeEnabled bool
	pollInterval   time.Duration
	logger         *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	contributors := contributordirectory.NewRepository(pg.DB, logger)

	catalogRepo := catalogpg.NewRepository(pg.DB, logger)
	catalogModule := catalogservice.NewModule(catalogservice.Dependencies{
		Canonical:    catalogRepo,
		Contributed:  catalogRepo,
		Contributors: contributors,
		Clock:        catalogpg.SystemClock{},
		IDGen:        catalogpg.UUIDGenerator{},
		Logger:       logger,
	})

	directoryRepo := directorypg.NewRepository(pg.DB, logger)
	directoryModule := storedirectoryservice.NewModule(storedirectoryservice.Dependencies{
		Stores:       directoryRepo,
		Contributors: contributors,
		Clock:        directorypg.SystemClock{},
		IDGen:        directorypg.UUIDGenerator{},
		Logger:       logger,
	})

	availabilityRepo := availabilitypg.NewRepository(pg.DB, logger)
	availabilityModule := availabilityservice.NewModule(availabilityservice.Dependencies{
		Records:      availabilityRepo,
		Contributors: contributors,
		Clock:        availabilitypg.SystemClock{},
		IDGen:        availabilitypg.UUIDGenerator{},
		Logger:       logger,
	})

	ledgerRepo := ledgerpg.NewRepository(pg.DB, logger)
	editLedgerModule := editledgerservice.NewModule(editledgerservice.Dependencies{
		Ledger: ledgerRepo,
		Targets: compositeTargetStore{
			Products: catalogModule.EditTarget,
			Stores:   directoryModule.EditTarget,
			Pages:    ledgerRepo,
		},
		Contributors: contributors,
		Outbox:       ledgerRepo,
		Clock:        ledgerpg.SystemClock{},
		IDGen:        ledgerpg.UUIDGenerator{},
		Logger:       logger,
	})

	reviewRepo := reviewpg.NewRepository(pg.DB, logger)
	reviewModule := reviewqueueservice.NewModule(reviewqueueservice.Dependencies{
		Clients: map[trustpolicy.EntityKind]reviewports.ModerationClient{
			trustpolicy.KindProduct:      productModerationClient{repo: catalogRepo},
			trustpolicy.KindStore:        storeModerationClient{repo: directoryRepo},
			trustpolicy.KindAvailability: availabilityModerationClient{repo: availabilityRepo},
		},
		Decisions:      reviewRepo,
		Idempotency:    reviewRepo,
		Contributors:   contributors,
		Clock:          reviewpg.SystemClock{},
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	})

	server := httpserver.New(
		catalogModule,
		directoryModule,
		availabilityModule,
		editLedgerModule,
		reviewModule,
		contributors,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	ledgerRepo := ledgerpg.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		bus:      kafka,
		outboxRelay: ledgerworkers.OutboxRelay{
			Outbox:    ledgerRepo,
			Publisher: editEventPublisher{bus: kafka},
			Clock:     ledgerpg.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		relayEnabled:   cfg.EnableEditOutboxRelay,
		consumeEnabled: cfg.EnableEditEventsConsumer,
		pollInterval:   2 * time.Second,
		logger:         logger,
	}, nil
}

// editEventPublisher bridges the ledger's outbox envelope onto the shared
// event contract carried by the bus.
type editEventPublisher struct {
	bus *messaging.Kafka
}

func (p editEventPublisher) Publish(ctx context.Context, topic string, event ledgerports.EventEnvelope) error {
	return p.bus.Publish(ctx, topic, events.Envelope{
		EventID:        event.EventID,
		EventType:      event.EventType,
		SourceService:  "edit-ledger-service",
		OccurredAtUTC:  event.OccurredAt,
		EntityType:     event.EntityType,
		EntityID:       event.EntityID,
		PayloadVersion: 1,
		Payload:        json.RawMessage(event.Payload),
	})
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.consumeEnabled {
		err := w.bus.Subscribe(ctx, "edit_suggestion_recorded", "edit-ledger-audit-cg", func(_ context.Context, event events.Envelope) error {
			w.logger.Info("edit suggestion event observed",
				"event", "edit_suggestion_event_observed",
				"module", "internal/app/bootstrap",
				"layer", "worker",
				"event_id", event.EventID,
				"entity_type", event.EntityType,
				"entity_id", event.EntityID,
			)
			return nil
		})
		if err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
