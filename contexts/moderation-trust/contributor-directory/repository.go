// Package contributordirectory is the persistence adapter behind the
// ContributorDirectory port every service declares. One table backs all of
// them; each context still depends only on its own port.
package contributordirectory

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	trustpolicy "stockist/contexts/moderation-trust/trust-policy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) ResolveContributor(ctx context.Context, userID string) (trustpolicy.Contributor, bool, error) {
	var row contributorModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return trustpolicy.Contributor{}, false, nil
		}
		return trustpolicy.Contributor{}, false, err
	}
	return trustpolicy.Contributor{
		UserID:             row.UserID,
		Role:               trustpolicy.Role(row.Role),
		TrustedContributor: row.TrustedContributor,
	}, true, nil
}

// UpsertContributor keeps the directory current when identity data changes.
func (r *Repository) UpsertContributor(ctx context.Context, contributor trustpolicy.Contributor, now time.Time) error {
	row := contributorModel{
		UserID:             strings.TrimSpace(contributor.UserID),
		Role:               string(contributor.Role),
		TrustedContributor: contributor.TrustedContributor,
		UpdatedAt:          now.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "trusted_contributor", "updated_at"}),
		}).
		Create(&row).
		Error
}

type contributorModel struct {
	UserID             string    `gorm:"column:user_id;primaryKey"`
	Role               string    `gorm:"column:role"`
	TrustedContributor bool      `gorm:"column:trusted_contributor"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (contributorModel) TableName() string {
	return "contributors"
}
