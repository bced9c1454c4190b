//go:generate mockery --name SettingsService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.SettingsResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *model.UpdateSettingsRequest) (*model.SettingsResponse, error)
	Scales() []model.ScaleInfo
}

type settingsService struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
}

func NewSettingsService(db *gorm.DB, profileRepo repository.ProfileRepository) SettingsService {
	return &settingsService{db: db, profileRepo: profileRepo}
}

func (s *settingsService) Get(ctx context.Context, userID uuid.UUID) (*model.SettingsResponse, error) {
	scale, err := resolveScale(ctx, s.db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return model.NewSettingsResponse(scale), nil
}

// Update は評価尺度を保存します。既存の科目の成績記号は変換しません。
func (s *settingsService) Update(ctx context.Context, userID uuid.UUID, req *model.UpdateSettingsRequest) (*model.SettingsResponse, error) {
	logger := middleware.GetLogger(ctx)

	scale, err := gpa.ParseScale(req.GradingScale)
	if err != nil {
		logger.Warn("Unknown grading scale requested", "grading_scale", req.GradingScale)
		return nil, model.NewAppError("INVALID_SCALE", "評価尺度が不正です。", "grading_scale", model.ErrInvalidInput)
	}

	profile := &model.Profile{UserID: userID, GradingScale: string(scale)}
	if err := s.profileRepo.Upsert(ctx, s.db, profile); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "設定の保存に失敗しました。", "", err)
	}

	logger.Info("Grading scale updated", "grading_scale", scale)
	return model.NewSettingsResponse(scale), nil
}

// Scales はすべての評価尺度の表を定義順に返します
func (s *settingsService) Scales() []model.ScaleInfo {
	scales := gpa.Scales()
	out := make([]model.ScaleInfo, 0, len(scales))
	for _, sc := range scales {
		out = append(out, model.ScaleInfo{
			Name:      sc,
			MaxPoints: gpa.MaxPoints(sc),
			Grades:    gpa.Definitions(sc),
		})
	}
	return out
}

// resolveScale はユーザーの評価尺度を返します。未設定や不明な値は DEFAULT になります。
func resolveScale(ctx context.Context, db *gorm.DB, profiles repository.ProfileRepository, userID uuid.UUID) (gpa.Scale, error) {
	profile, err := profiles.FindByUser(ctx, db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return gpa.ScaleDefault, nil
		}
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "設定の取得に失敗しました。", "", err)
	}
	scale := gpa.ScaleOrDefault(profile.GradingScale)
	if string(scale) != profile.GradingScale {
		middleware.GetLogger(ctx).Warn("Stored grading scale is unknown, using default", "stored", profile.GradingScale)
	}
	return scale, nil
}
