package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stockist/contexts/moderation-trust/edit-ledger-service/domain/entities"
	domainerrors "stockist/contexts/moderation-trust/edit-ledger-service/domain/errors"
	"stockist/contexts/moderation-trust/edit-ledger-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
	outboxStatusFailed    = "failed"
)

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

func (r *Repository) AppendSuggestion(ctx context.Context, suggestion entities.EditSuggestion) error {
	row := suggestionModelFromEntity(suggestion)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) GetSuggestion(ctx context.Context, suggestionID string) (entities.EditSuggestion, error) {
	var row suggestionModel
	err := r.db.WithContext(ctx).
		Where("suggestion_id = ?", strings.TrimSpace(suggestionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.EditSuggestion{}, domainerrors.ErrSuggestionNotFound
		}
		return entities.EditSuggestion{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListSuggestions(ctx context.Context, filter ports.SuggestionFilter) ([]entities.EditSuggestion, error) {
	tx := r.db.WithContext(ctx).Model(&suggestionModel{})
	if filter.TargetKind != "" {
		tx = tx.Where("target_kind = ?", string(filter.TargetKind))
	}
	if strings.TrimSpace(filter.TargetID) != "" {
		tx = tx.Where("target_id = ?", strings.TrimSpace(filter.TargetID))
	}
	if strings.TrimSpace(filter.UserID) != "" {
		tx = tx.Where("user_id = ?", strings.TrimSpace(filter.UserID))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.NeedsReview != nil {
		tx = tx.Where("needs_review = ?", *filter.NeedsReview)
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []suggestionModel
	if err := tx.Order("created_at DESC, suggestion_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.EditSuggestion, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateSuggestionReview(ctx context.Context, suggestion entities.EditSuggestion) error {
	result := r.db.WithContext(ctx).
		Model(&suggestionModel{}).
		Where("suggestion_id = ?", strings.TrimSpace(suggestion.SuggestionID)).
		Updates(map[string]any{
			"status":              string(suggestion.Status),
			"needs_review":        suggestion.NeedsReview,
			"reviewed_by_user_id": strings.TrimSpace(suggestion.ReviewedByUserID),
			"reviewed_at":         normalizeOptionalTime(suggestion.ReviewedAt),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSuggestionNotFound
	}
	return nil
}

// ReadField serves editorial pages from the service's own table. Pages
// materialize lazily, so a missing row still reports ErrTargetNotFound and
// the caller decides whether the kind tolerates it.
func (r *Repository) ReadField(ctx context.Context, target entities.TargetRef, field string) (string, error) {
	if target.Kind != trustpolicy.KindPage {
		return "", domainerrors.ErrTargetNotFound
	}
	var row pageModel
	err := r.db.WithContext(ctx).
		Where("page_id = ?", strings.TrimSpace(target.ID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrTargetNotFound
		}
		return "", err
	}
	switch field {
	case "headline":
		return row.Headline, nil
	case "summary":
		return row.Summary, nil
	case "body":
		return row.Body, nil
	default:
		return "", domainerrors.ErrFieldNotAllowed
	}
}

func (r *Repository) ApplyField(ctx context.Context, target entities.TargetRef, field string, value string, now time.Time) error {
	if target.Kind != trustpolicy.KindPage {
		return domainerrors.ErrTargetNotFound
	}
	switch field {
	case "headline", "summary", "body":
	default:
		return domainerrors.ErrFieldNotAllowed
	}

	row := pageModel{
		PageID:    strings.TrimSpace(target.ID),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "page_id"}},
			DoUpdates: clause.Assignments(map[string]any{field: value, "updated_at": now.UTC()}),
		}).
		Create(applyPageField(row, field, value)).
		Error
}

func applyPageField(row pageModel, field string, value string) *pageModel {
	switch field {
	case "headline":
		row.Headline = value
	case "summary":
		row.Summary = value
	case "body":
		row.Body = value
	}
	return &row
}

func (r *Repository) AppendOutbox(ctx context.Context, message ports.OutboxMessage) error {
	row := outboxModel{
		OutboxID:   strings.TrimSpace(message.ID),
		EventType:  strings.TrimSpace(message.EventType),
		EntityType: strings.TrimSpace(message.EntityType),
		EntityID:   strings.TrimSpace(message.EntityID),
		Payload:    message.Payload,
		Status:     outboxStatusPending,
		RetryCount: message.RetryCount,
		CreatedAt:  message.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	tx := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var rows []outboxModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			ID:         row.OutboxID,
			EventType:  row.EventType,
			EntityType: row.EntityType,
			EntityID:   row.EntityID,
			Payload:    row.Payload,
			Status:     row.Status,
			RetryCount: row.RetryCount,
			CreatedAt:  row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, id string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(id)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		}).
		Error
}

func (r *Repository) MarkOutboxFailed(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(id)).
		Updates(map[string]any{
			"status":      outboxStatusFailed,
			"retry_count": gorm.Expr("retry_count + 1"),
		}).
		Error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type suggestionModel struct {
	SuggestionID        string     `gorm:"column:suggestion_id;primaryKey"`
	TargetKind          string     `gorm:"column:target_kind"`
	TargetID            string     `gorm:"column:target_id"`
	Field               string     `gorm:"column:field"`
	OriginalValue       string     `gorm:"column:original_value"`
	SuggestedValue      string     `gorm:"column:suggested_value"`
	Reason              string     `gorm:"column:reason"`
	UserID              string     `gorm:"column:user_id"`
	Status              string     `gorm:"column:status"`
	TrustedContribution bool       `gorm:"column:trusted_contribution"`
	AutoApplied         bool       `gorm:"column:auto_applied"`
	NeedsReview         bool       `gorm:"column:needs_review"`
	ReviewedByUserID    string     `gorm:"column:reviewed_by_user_id"`
	ReviewedAt          *time.Time `gorm:"column:reviewed_at"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
}

func (suggestionModel) TableName() string {
	return "edit_suggestions"
}

func suggestionModelFromEntity(item entities.EditSuggestion) suggestionModel {
	return suggestionModel{
		SuggestionID:        strings.TrimSpace(item.SuggestionID),
		TargetKind:          string(item.Target.Kind),
		TargetID:            strings.TrimSpace(item.Target.ID),
		Field:               strings.TrimSpace(item.Field),
		OriginalValue:       item.OriginalValue,
		SuggestedValue:      item.SuggestedValue,
		Reason:              strings.TrimSpace(item.Reason),
		UserID:              strings.TrimSpace(item.UserID),
		Status:              string(item.Status),
		TrustedContribution: item.TrustedContribution,
		AutoApplied:         item.AutoApplied,
		NeedsReview:         item.NeedsReview,
		ReviewedByUserID:    strings.TrimSpace(item.ReviewedByUserID),
		ReviewedAt:          normalizeOptionalTime(item.ReviewedAt),
		CreatedAt:           item.CreatedAt.UTC(),
	}
}

func (m suggestionModel) toEntity() entities.EditSuggestion {
	return entities.EditSuggestion{
		SuggestionID: m.SuggestionID,
		Target: entities.TargetRef{
			Kind: trustpolicy.EntityKind(m.TargetKind),
			ID:   m.TargetID,
		},
		Field:               m.Field,
		OriginalValue:       m.OriginalValue,
		SuggestedValue:      m.SuggestedValue,
		Reason:              m.Reason,
		UserID:              m.UserID,
		Status:              trustpolicy.ModerationStatus(m.Status),
		TrustedContribution: m.TrustedContribution,
		AutoApplied:         m.AutoApplied,
		NeedsReview:         m.NeedsReview,
		ReviewedByUserID:    m.ReviewedByUserID,
		ReviewedAt:          m.ReviewedAt,
		CreatedAt:           m.CreatedAt,
	}
}

type pageModel struct {
	PageID    string    `gorm:"column:page_id;primaryKey"`
	Headline  string    `gorm:"column:headline"`
	Summary   string    `gorm:"column:summary"`
	Body      string    `gorm:"column:body"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (pageModel) TableName() string {
	return "editorial_pages"
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	EntityType  string     `gorm:"column:entity_type"`
	EntityID    string     `gorm:"column:entity_id"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	RetryCount  int        `gorm:"column:retry_count"`
	PublishedAt *time.Time `gorm:"column:published_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (outboxModel) TableName() string {
	return "edit_ledger_outbox"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
