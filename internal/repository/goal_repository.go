//go:generate mockery --name GoalRepository --output ./mocks --outpkg mocks --case=underscore
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

// GoalRepository はユーザーごとに1行の目標を扱います。
type GoalRepository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Goal, error)
	Upsert(ctx context.Context, tx *gorm.DB, goal *model.Goal) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type gormGoalRepository struct{}

func NewGormGoalRepository() GoalRepository {
	return &gormGoalRepository{}
}

func (r *gormGoalRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Goal, error) {
	logger := middleware.GetLogger(ctx)
	var goal model.Goal
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&goal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding goal in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormGoalRepository.FindByUser: %w", result.Error)
	}
	return &goal, nil
}

// Upsert は user_id をキーに作成または上書きします。重複行は作られません。
func (r *gormGoalRepository) Upsert(ctx context.Context, tx *gorm.DB, goal *model.Goal) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"target_cgpa", "updated_at"}),
	}).Create(goal)
	if result.Error != nil {
		logger.Error("Error upserting goal in DB",
			"error", result.Error,
			"user_id", goal.UserID.String(),
			"target_cgpa", goal.TargetCGPA,
		)
		return fmt.Errorf("gormGoalRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormGoalRepository) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Goal{})
	if result.Error != nil {
		logger.Error("Error deleting goal in DB", "error", result.Error, "user_id", userID.String())
		return fmt.Errorf("gormGoalRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		logger.Warn("Goal not found for deletion (idempotent)", "user_id", userID.String())
	}
	return nil
}
