//go:generate mockery --name ProfileRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Profile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *model.Profile) error
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.Profile
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding profile in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormProfileRepository.FindByUser: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormProfileRepository) Upsert(ctx context.Context, tx *gorm.DB, profile *model.Profile) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"grading_scale", "updated_at"}),
	}).Create(profile)
	if result.Error != nil {
		logger.Error("Error upserting profile in DB",
			"error", result.Error,
			"user_id", profile.UserID.String(),
			"grading_scale", profile.GradingScale,
		)
		return fmt.Errorf("gormProfileRepository.Upsert: %w", result.Error)
	}
	return nil
}
