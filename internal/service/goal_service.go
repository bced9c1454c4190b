//go:generate mockery --name GoalService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.Goal, error)
	Put(ctx context.Context, userID uuid.UUID, req *model.PutGoalRequest) (*model.Goal, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type goalService struct {
	db          *gorm.DB
	goalRepo    repository.GoalRepository
	profileRepo repository.ProfileRepository
}

func NewGoalService(db *gorm.DB, goalRepo repository.GoalRepository, profileRepo repository.ProfileRepository) GoalService {
	return &goalService{db: db, goalRepo: goalRepo, profileRepo: profileRepo}
}

func (s *goalService) Get(ctx context.Context, userID uuid.UUID) (*model.Goal, error) {
	goal, err := s.goalRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("GOAL_NOT_FOUND", "目標が設定されていません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "目標の取得に失敗しました。", "", err)
	}
	return goal, nil
}

// Put は目標累積GPAを作成または上書きします。上限は現在の評価尺度の最高ポイントです。
func (s *goalService) Put(ctx context.Context, userID uuid.UUID, req *model.PutGoalRequest) (*model.Goal, error) {
	logger := middleware.GetLogger(ctx)
	if req.TargetCGPA == nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "目標累積GPAは必須です。", "target_cgpa", model.ErrInvalidInput)
	}
	target := *req.TargetCGPA

	scale, err := resolveScale(ctx, s.db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	if maxPoints := gpa.MaxPoints(scale); target < 0 || target > maxPoints {
		logger.Warn("Goal target out of range", "target_cgpa", target, "max_points", maxPoints)
		return nil, model.NewAppError("INVALID_TARGET",
			fmt.Sprintf("目標累積GPAは0以上%s以下で入力してください。", gpa.Format1(maxPoints)),
			"target_cgpa", model.ErrInvalidInput)
	}

	now := time.Now()
	goal := &model.Goal{UserID: userID, TargetCGPA: target, CreatedAt: now, UpdatedAt: now}
	if err := s.goalRepo.Upsert(ctx, s.db, goal); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "目標の保存に失敗しました。", "", err)
	}

	logger.Info("Goal saved", "target_cgpa", target)
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.goalRepo.Delete(ctx, s.db, userID); err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "目標の削除に失敗しました。", "", err)
	}
	middleware.GetLogger(ctx).Info("Goal deleted")
	return nil
}
