package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stockist/contexts/catalog/availability-service/domain/entities"
	domainerrors "stockist/contexts/catalog/availability-service/domain/errors"
	"stockist/contexts/catalog/availability-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

func (r *Repository) GetRecord(ctx context.Context, recordID string) (entities.AvailabilityRecord, error) {
	var row availabilityModel
	err := r.db.WithContext(ctx).
		Where("record_id = ?", strings.TrimSpace(recordID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.AvailabilityRecord{}, domainerrors.ErrRecordNotFound
		}
		return entities.AvailabilityRecord{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByPair(ctx context.Context, productID, storeID string) (entities.AvailabilityRecord, bool, error) {
	var row availabilityModel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND store_id = ?", strings.TrimSpace(productID), strings.TrimSpace(storeID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.AvailabilityRecord{}, false, nil
		}
		return entities.AvailabilityRecord{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListByStore(ctx context.Context, storeID string) ([]entities.AvailabilityRecord, error) {
	var rows []availabilityModel
	err := r.db.WithContext(ctx).
		Where("store_id = ?", strings.TrimSpace(storeID)).
		Order("record_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.AvailabilityRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateRecord(ctx context.Context, record entities.AvailabilityRecord) error {
	row := availabilityModelFromEntity(record)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		// The unique index on (product_id, store_id) backs the one-record
		// rule under concurrent writes.
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateAvailability
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateRecord(ctx context.Context, record entities.AvailabilityRecord) error {
	row := availabilityModelFromEntity(record)
	result := r.db.WithContext(ctx).
		Model(&availabilityModel{}).
		Where("record_id = ?", row.RecordID).
		Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) SetModeration(ctx context.Context, recordID string, update ports.ModerationUpdate) error {
	reviewedAt := update.ReviewedAt.UTC()
	result := r.db.WithContext(ctx).
		Model(&availabilityModel{}).
		Where("record_id = ?", strings.TrimSpace(recordID)).
		Updates(map[string]any{
			"status":              string(update.Status),
			"needs_review":        update.NeedsReview,
			"reviewed_by_user_id": strings.TrimSpace(update.ReviewedByUserID),
			"reviewed_at":         reviewedAt,
			"updated_at":          reviewedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRecordNotFound
	}
	return nil
}

// ListOpenRecords feeds the review queue: pending reports plus live ones
// still flagged needs-review. Legacy rows with no status are live and never
// pending.
func (r *Repository) ListOpenRecords(ctx context.Context) ([]entities.AvailabilityRecord, error) {
	var rows []availabilityModel
	err := r.db.WithContext(ctx).
		Where("status = ? OR needs_review", string(trustpolicy.StatusPending)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.AvailabilityRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

type availabilityModel struct {
	RecordID            string     `gorm:"column:record_id;primaryKey"`
	ProductID           string     `gorm:"column:product_id"`
	StoreID             string     `gorm:"column:store_id"`
	Status              *string    `gorm:"column:status"`
	Source              string     `gorm:"column:source"`
	PriceRange          string     `gorm:"column:price_range"`
	LastConfirmedAt     time.Time  `gorm:"column:last_confirmed_at"`
	TrustedContribution bool       `gorm:"column:trusted_contribution"`
	NeedsReview         bool       `gorm:"column:needs_review"`
	CreatedByUserID     string     `gorm:"column:created_by_user_id"`
	ReviewedByUserID    string     `gorm:"column:reviewed_by_user_id"`
	ReviewedAt          *time.Time `gorm:"column:reviewed_at"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (availabilityModel) TableName() string {
	return "availability_records"
}

func availabilityModelFromEntity(item entities.AvailabilityRecord) availabilityModel {
	row := availabilityModel{
		RecordID:            strings.TrimSpace(item.RecordID),
		ProductID:           strings.TrimSpace(item.ProductID),
		StoreID:             strings.TrimSpace(item.StoreID),
		Source:              strings.TrimSpace(item.Source),
		PriceRange:          strings.TrimSpace(item.PriceRange),
		LastConfirmedAt:     item.LastConfirmedAt.UTC(),
		TrustedContribution: item.TrustedContribution,
		NeedsReview:         item.NeedsReview,
		CreatedByUserID:     strings.TrimSpace(item.CreatedByUserID),
		ReviewedByUserID:    strings.TrimSpace(item.ReviewedByUserID),
		ReviewedAt:          normalizeOptionalTime(item.ReviewedAt),
		CreatedAt:           item.CreatedAt.UTC(),
		UpdatedAt:           item.UpdatedAt.UTC(),
	}
	if item.Status != nil && *item.Status != "" {
		status := string(*item.Status)
		row.Status = &status
	}
	return row
}

func (m availabilityModel) toEntity() entities.AvailabilityRecord {
	item := entities.AvailabilityRecord{
		RecordID:            m.RecordID,
		ProductID:           m.ProductID,
		StoreID:             m.StoreID,
		Source:              m.Source,
		PriceRange:          m.PriceRange,
		LastConfirmedAt:     m.LastConfirmedAt,
		TrustedContribution: m.TrustedContribution,
		NeedsReview:         m.NeedsReview,
		CreatedByUserID:     m.CreatedByUserID,
		ReviewedByUserID:    m.ReviewedByUserID,
		ReviewedAt:          m.ReviewedAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.Status != nil && *m.Status != "" {
		status := trustpolicy.ModerationStatus(*m.Status)
		item.Status = &status
	}
	return item
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
