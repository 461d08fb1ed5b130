package workers

import (
	"context"
	"log/slog"
	"time"

	application "stockist/contexts/moderation-trust/edit-ledger-service/application"
	"stockist/contexts/moderation-trust/edit-ledger-service/ports"
)

// OutboxRelay publishes pending contribution-event rows to the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("edit ledger outbox list failed",
			"event", "edit_ledger_outbox_list_failed",
			"module", "moderation-trust/edit-ledger-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		event := ports.EventEnvelope{
			EventID:    row.ID,
			EventType:  row.EventType,
			EntityType: row.EntityType,
			EntityID:   row.EntityID,
			OccurredAt: row.CreatedAt,
			Payload:    row.Payload,
		}
		if err := r.Publisher.Publish(ctx, row.EventType, event); err != nil {
			logger.Error("edit ledger outbox publish failed",
				"event", "edit_ledger_outbox_publish_failed",
				"module", "moderation-trust/edit-ledger-service",
				"layer", "worker",
				"outbox_id", row.ID,
				"event_type", row.EventType,
				"error", err.Error(),
			)
			if markErr := r.Outbox.MarkOutboxFailed(ctx, row.ID); markErr != nil {
				return markErr
			}
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.ID, now); err != nil {
			logger.Error("edit ledger outbox mark published failed",
				"event", "edit_ledger_outbox_mark_published_failed",
				"module", "moderation-trust/edit-ledger-service",
				"layer", "worker",
				"outbox_id", row.ID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("edit ledger outbox relay cycle completed",
			"event", "edit_ledger_outbox_relay_completed",
			"module", "moderation-trust/edit-ledger-service",
			"layer", "worker",
			"published_count", len(pending),
		)
	}
	return nil
}
