package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stockist/contexts/catalog/store-directory-service/domain/entities"
	domainerrors "stockist/contexts/catalog/store-directory-service/domain/errors"
	"stockist/contexts/catalog/store-directory-service/ports"
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

func (r *Repository) GetStore(ctx context.Context, storeID string) (entities.DirectoryStore, error) {
	var row storeModel
	err := r.db.WithContext(ctx).
		Where("store_id = ?", strings.TrimSpace(storeID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DirectoryStore{}, domainerrors.ErrStoreNotFound
		}
		return entities.DirectoryStore{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListStores(ctx context.Context, filter ports.StoreFilter) ([]entities.DirectoryStore, error) {
	tx := r.db.WithContext(ctx).Model(&storeModel{})
	if filter.Type != "" {
		tx = tx.Where("store_type = ?", string(filter.Type))
	}
	if strings.TrimSpace(filter.Query) != "" {
		tx = tx.Where("name ILIKE ?", "%"+strings.TrimSpace(filter.Query)+"%")
	}

	var rows []storeModel
	if err := tx.Order("store_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.DirectoryStore, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateStore(ctx context.Context, store entities.DirectoryStore) error {
	row := storeModelFromEntity(store)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateStore
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateStore(ctx context.Context, store entities.DirectoryStore) error {
	row := storeModelFromEntity(store)
	result := r.db.WithContext(ctx).
		Model(&storeModel{}).
		Where("store_id = ?", row.StoreID).
		Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStoreNotFound
	}
	return nil
}

func (r *Repository) SetModeration(ctx context.Context, storeID string, update ports.ModerationUpdate) error {
	reviewedAt := update.ReviewedAt.UTC()
	result := r.db.WithContext(ctx).
		Model(&storeModel{}).
		Where("store_id = ?", strings.TrimSpace(storeID)).
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
		return domainerrors.ErrStoreNotFound
	}
	return nil
}

// ListOpenStores feeds the review queue: pending listings plus live ones
// still flagged needs-review.
func (r *Repository) ListOpenStores(ctx context.Context) ([]entities.DirectoryStore, error) {
	var rows []storeModel
	err := r.db.WithContext(ctx).
		Where("status = ? OR needs_review", string(trustpolicy.StatusPending)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.DirectoryStore, 0, len(rows))
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

type storeModel struct {
	StoreID             string     `gorm:"column:store_id;primaryKey"`
	Name                string     `gorm:"column:name"`
	StoreType           string     `gorm:"column:store_type"`
	PlaceID             string     `gorm:"column:place_id"`
	WebsiteURL          string     `gorm:"column:website_url"`
	Address             string     `gorm:"column:address"`
	Phone               string     `gorm:"column:phone"`
	OpeningHours        string     `gorm:"column:opening_hours"`
	Status              string     `gorm:"column:status"`
	TrustedContribution bool       `gorm:"column:trusted_contribution"`
	NeedsReview         bool       `gorm:"column:needs_review"`
	CreatedByUserID     string     `gorm:"column:created_by_user_id"`
	ReviewedByUserID    string     `gorm:"column:reviewed_by_user_id"`
	ReviewedAt          *time.Time `gorm:"column:reviewed_at"`
	Archived            bool       `gorm:"column:archived"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (storeModel) TableName() string {
	return "directory_stores"
}

func storeModelFromEntity(item entities.DirectoryStore) storeModel {
	return storeModel{
		StoreID:             strings.TrimSpace(item.StoreID),
		Name:                item.Name,
		StoreType:           string(item.Type),
		PlaceID:             strings.TrimSpace(item.PlaceID),
		WebsiteURL:          strings.TrimSpace(item.WebsiteURL),
		Address:             item.Address,
		Phone:               item.Phone,
		OpeningHours:        item.OpeningHours,
		Status:              string(item.Status),
		TrustedContribution: item.TrustedContribution,
		NeedsReview:         item.NeedsReview,
		CreatedByUserID:     strings.TrimSpace(item.CreatedByUserID),
		ReviewedByUserID:    strings.TrimSpace(item.ReviewedByUserID),
		ReviewedAt:          normalizeOptionalTime(item.ReviewedAt),
		Archived:            item.Archived,
		CreatedAt:           item.CreatedAt.UTC(),
		UpdatedAt:           item.UpdatedAt.UTC(),
	}
}

func (m storeModel) toEntity() entities.DirectoryStore {
	return entities.DirectoryStore{
		StoreID:             m.StoreID,
		Name:                m.Name,
		Type:                entities.StoreType(m.StoreType),
		PlaceID:             m.PlaceID,
		WebsiteURL:          m.WebsiteURL,
		Address:             m.Address,
		Phone:               m.Phone,
		OpeningHours:        m.OpeningHours,
		Status:              trustpolicy.ModerationStatus(m.Status),
		TrustedContribution: m.TrustedContribution,
		NeedsReview:         m.NeedsReview,
		CreatedByUserID:     m.CreatedByUserID,
		ReviewedByUserID:    m.ReviewedByUserID,
		ReviewedAt:          m.ReviewedAt,
		Archived:            m.Archived,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
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
