package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stockist/contexts/moderation-trust/review-queue-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists review decisions and idempotency records. Queue
// contents live with the owning services; only the audit trail is stored
// here.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) RecordDecision(ctx context.Context, record ports.DecisionRecord, now time.Time) (ports.DecisionRecord, error) {
	record.DecisionID = uuid.NewString()
	record.CreatedAt = now.UTC()
	row := decisionModel{
		DecisionID: record.DecisionID,
		Kind:       string(record.Kind),
		EntityID:   strings.TrimSpace(record.EntityID),
		ReviewerID: strings.TrimSpace(record.ReviewerID),
		Action:     record.Action,
		Reason:     record.Reason,
		Notes:      record.Notes,
		CreatedAt:  record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.DecisionRecord{}, err
	}
	return record, nil
}

func (r *Repository) ListDecisions(ctx context.Context, kind trustpolicy.EntityKind, entityID string) ([]ports.DecisionRecord, error) {
	var rows []decisionModel
	err := r.db.WithContext(ctx).
		Where("kind = ? AND entity_id = ?", string(kind), strings.TrimSpace(entityID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.DecisionRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.DecisionRecord{
			DecisionID: row.DecisionID,
			Kind:       trustpolicy.EntityKind(row.Kind),
			EntityID:   row.EntityID,
			ReviewerID: row.ReviewerID,
			Action:     row.Action,
			Reason:     row.Reason,
			Notes:      row.Notes,
			CreatedAt:  row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) Get(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", strings.TrimSpace(key), now.UTC()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, err
	}
	return ports.IdempotencyRecord{
		Key:         row.Key,
		RequestHash: row.RequestHash,
		Payload:     row.Payload,
		ExpiresAt:   row.ExpiresAt,
	}, true, nil
}

func (r *Repository) Put(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:         strings.TrimSpace(record.Key),
		RequestHash: record.RequestHash,
		Payload:     record.Payload,
		ExpiresAt:   record.ExpiresAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"request_hash", "payload", "expires_at"}),
		}).
		Create(&row).
		Error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type decisionModel struct {
	DecisionID string    `gorm:"column:decision_id;primaryKey"`
	Kind       string    `gorm:"column:kind"`
	EntityID   string    `gorm:"column:entity_id"`
	ReviewerID string    `gorm:"column:reviewer_id"`
	Action     string    `gorm:"column:action"`
	Reason     string    `gorm:"column:reason"`
	Notes      string    `gorm:"column:notes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (decisionModel) TableName() string {
	return "review_decisions"
}

type idempotencyModel struct {
	Key         string    `gorm:"column:key;primaryKey"`
	RequestHash string    `gorm:"column:request_hash"`
	Payload     []byte    `gorm:"column:payload"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string {
	return "review_idempotency_keys"
}
