package postgres

import (
	"context"
	"errors"

	"github.com/okembo/profilehub/internal/models"
	"github.com/okembo/profilehub/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository is the store surface the workflow consumes: one row
// per owner id, fetched and upserted by that key.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).
		Select(models.ProfileColumns).
		Where("user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Upsert(ctx context.Context, p *models.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "last_name", "date_of_birth", "country",
				"religion", "blood_group", "marital_status", "institution",
				"hobbies", "avatar_url", "updated_at",
			}),
		}).
		Create(p).Error
}
