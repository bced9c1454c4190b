//go:generate mockery --name SuggestionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuggestionRepository interface {
	Create(ctx context.Context, db *gorm.DB, suggestion *model.Suggestion) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]*model.Suggestion, error)
}

type gormSuggestionRepository struct{}

func NewGormSuggestionRepository() SuggestionRepository {
	return &gormSuggestionRepository{}
}

func (r *gormSuggestionRepository) Create(ctx context.Context, db *gorm.DB, suggestion *model.Suggestion) error {
	if err := db.WithContext(ctx).Create(suggestion).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error creating suggestion in DB", "error", err, "user_id", suggestion.UserID.String())
		return fmt.Errorf("gormSuggestionRepository.Create: %w", err)
	}
	return nil
}

func (r *gormSuggestionRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]*model.Suggestion, error) {
	suggestions := []*model.Suggestion{}
	q := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&suggestions).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error finding suggestions in DB", "error", err, "user_id", userID.String())
		return nil, fmt.Errorf("gormSuggestionRepository.FindByUser: %w", err)
	}
	return suggestions, nil
}
