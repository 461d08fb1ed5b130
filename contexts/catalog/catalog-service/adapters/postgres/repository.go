package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stockist/contexts/catalog/catalog-service/domain/entities"
	domainerrors "stockist/contexts/catalog/catalog-service/domain/errors"
	"stockist/contexts/catalog/catalog-service/ports"
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

func (r *Repository) GetCanonical(ctx context.Context, productID string) (entities.CanonicalProduct, error) {
	var row canonicalModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", strings.TrimSpace(productID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.CanonicalProduct{}, domainerrors.ErrProductNotFound
		}
		return entities.CanonicalProduct{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCanonical(ctx context.Context, filter ports.CatalogFilter) ([]entities.CanonicalProduct, error) {
	tx := applyCatalogFilter(r.db.WithContext(ctx).Model(&canonicalModel{}), filter)

	var rows []canonicalModel
	if err := tx.Order("product_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.CanonicalProduct, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetContributed(ctx context.Context, productID string) (entities.ContributedProduct, error) {
	var row contributedModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", strings.TrimSpace(productID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ContributedProduct{}, domainerrors.ErrProductNotFound
		}
		return entities.ContributedProduct{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetShadowFor(ctx context.Context, sourceProductID string) (entities.ContributedProduct, bool, error) {
	var row contributedModel
	err := r.db.WithContext(ctx).
		Where("source_product_id = ?", strings.TrimSpace(sourceProductID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ContributedProduct{}, false, nil
		}
		return entities.ContributedProduct{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListContributed(ctx context.Context, filter ports.CatalogFilter) ([]entities.ContributedProduct, error) {
	tx := applyCatalogFilter(r.db.WithContext(ctx).Model(&contributedModel{}), filter)

	var rows []contributedModel
	if err := tx.Order("product_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.ContributedProduct, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListShadows(ctx context.Context) ([]entities.ContributedProduct, error) {
	var rows []contributedModel
	err := r.db.WithContext(ctx).
		Where("source_product_id <> ''").
		Order("product_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.ContributedProduct, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateContributed(ctx context.Context, product entities.ContributedProduct) error {
	row := contributedModelFromEntity(product)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateProduct
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateContributed(ctx context.Context, product entities.ContributedProduct) error {
	row := contributedModelFromEntity(product)
	result := r.db.WithContext(ctx).
		Model(&contributedModel{}).
		Where("product_id = ?", row.ProductID).
		Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound
	}
	return nil
}

func (r *Repository) SetModeration(ctx context.Context, productID string, update ports.ModerationUpdate) error {
	reviewedAt := update.ReviewedAt.UTC()
	result := r.db.WithContext(ctx).
		Model(&contributedModel{}).
		Where("product_id = ?", strings.TrimSpace(productID)).
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
		return domainerrors.ErrProductNotFound
	}
	return nil
}

// ListOpenContributed feeds the review queue: pending submissions plus live
// rows still flagged needs-review.
func (r *Repository) ListOpenContributed(ctx context.Context) ([]entities.ContributedProduct, error) {
	var rows []contributedModel
	err := r.db.WithContext(ctx).
		Where("status = ? OR needs_review", string(trustpolicy.StatusPending)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.ContributedProduct, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func applyCatalogFilter(tx *gorm.DB, filter ports.CatalogFilter) *gorm.DB {
	if filter.Query != "" {
		tx = tx.Where("name ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.Brand != "" {
		tx = tx.Where("LOWER(brand) = LOWER(?)", filter.Brand)
	}
	if filter.Category != "" {
		tx = tx.Where("LOWER(category) = LOWER(?)", filter.Category)
	}
	return tx
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

type canonicalModel struct {
	ProductID   string    `gorm:"column:product_id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Brand       string    `gorm:"column:brand"`
	Category    string    `gorm:"column:category"`
	Description string    `gorm:"column:description"`
	ImageURL    string    `gorm:"column:image_url"`
	WebsiteURL  string    `gorm:"column:website_url"`
	Rating      float64   `gorm:"column:rating"`
	Archived    bool      `gorm:"column:archived"`
	ImportedAt  time.Time `gorm:"column:imported_at"`
}

func (canonicalModel) TableName() string {
	return "canonical_products"
}

func (m canonicalModel) toEntity() entities.CanonicalProduct {
	return entities.CanonicalProduct{
		ProductID:   m.ProductID,
		Name:        m.Name,
		Brand:       m.Brand,
		Category:    m.Category,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		WebsiteURL:  m.WebsiteURL,
		Rating:      m.Rating,
		Archived:    m.Archived,
		ImportedAt:  m.ImportedAt,
	}
}

type contributedModel struct {
	ProductID           string     `gorm:"column:product_id;primaryKey"`
	SourceProductID     string     `gorm:"column:source_product_id"`
	Name                string     `gorm:"column:name"`
	Brand               string     `gorm:"column:brand"`
	Category            string     `gorm:"column:category"`
	Description         string     `gorm:"column:description"`
	ImageURL            string     `gorm:"column:image_url"`
	WebsiteURL          string     `gorm:"column:website_url"`
	Rating              float64    `gorm:"column:rating"`
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

func (contributedModel) TableName() string {
	return "contributed_products"
}

func contributedModelFromEntity(item entities.ContributedProduct) contributedModel {
	return contributedModel{
		ProductID:           strings.TrimSpace(item.ProductID),
		SourceProductID:     strings.TrimSpace(item.SourceProductID),
		Name:                item.Name,
		Brand:               item.Brand,
		Category:            item.Category,
		Description:         item.Description,
		ImageURL:            item.ImageURL,
		WebsiteURL:          item.WebsiteURL,
		Rating:              item.Rating,
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

func (m contributedModel) toEntity() entities.ContributedProduct {
	return entities.ContributedProduct{
		ProductID:           m.ProductID,
		SourceProductID:     m.SourceProductID,
		Name:                m.Name,
		Brand:               m.Brand,
		Category:            m.Category,
		Description:         m.Description,
		ImageURL:            m.ImageURL,
		WebsiteURL:          m.WebsiteURL,
		Rating:              m.Rating,
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
