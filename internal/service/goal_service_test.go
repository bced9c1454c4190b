package service_test

import (
	"context"
	"testing"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository/mocks"
	"go_gpa_keep/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGoalService(t *testing.T) {
	userID := uuid.New()

	newSvc := func(t *testing.T, scale gpa.Scale) (service.GoalService, *mocks.GoalRepository) {
		goals := mocks.NewGoalRepository(t)
		profiles := mocks.NewProfileRepository(t)
		profiles.On("FindByUser", mock.Anything, mock.Anything, userID).
			Return(&model.Profile{UserID: userID, GradingScale: string(scale)}, nil).Maybe()
		return service.NewGoalService(setupTestDB(t), goals, profiles), goals
	}

	tests := []struct {
		name    string
		scale   gpa.Scale
		target  *float64
		upsert  bool
		wantErr string
	}{
		{name: "5.0尺度で4.5", scale: gpa.ScaleDefault, target: ptr(4.5), upsert: true},
		{name: "上限ちょうど", scale: gpa.ScaleNUCReform, target: ptr(4.0), upsert: true},
		{name: "0は許可", scale: gpa.ScaleDefault, target: ptr(0.0), upsert: true},
		{name: "4.0尺度で4.5は不可", scale: gpa.ScaleUSStandard, target: ptr(4.5), wantErr: "INVALID_TARGET"},
		{name: "負の値は不可", scale: gpa.ScaleDefault, target: ptr(-0.1), wantErr: "INVALID_TARGET"},
		{name: "未指定", scale: gpa.ScaleDefault, target: nil, wantErr: "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, goals := newSvc(t, tt.scale)
			if tt.upsert {
				goals.On("Upsert", mock.Anything, mock.Anything, mock.MatchedBy(func(g *model.Goal) bool {
					return g.UserID == userID && g.TargetCGPA == *tt.target
				})).Return(nil).Once()
			}

			goal, err := svc.Put(context.Background(), userID, &model.PutGoalRequest{TargetCGPA: tt.target})
			if tt.wantErr != "" {
				requireAppError(t, err, tt.wantErr, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tt.target, goal.TargetCGPA)
		})
	}

	t.Run("未設定の取得は404", func(t *testing.T) {
		svc, goals := newSvc(t, gpa.ScaleDefault)
		goals.On("FindByUser", mock.Anything, mock.Anything, userID).Return(nil, model.ErrNotFound).Once()

		_, err := svc.Get(context.Background(), userID)
		requireAppError(t, err, "GOAL_NOT_FOUND", model.ErrNotFound)
	})

	t.Run("削除", func(t *testing.T) {
		svc, goals := newSvc(t, gpa.ScaleDefault)
		goals.On("Delete", mock.Anything, mock.Anything, userID).Return(nil).Once()
		require.NoError(t, svc.Delete(context.Background(), userID))
	})
}

func TestSettingsService(t *testing.T) {
	userID := uuid.New()

	t.Run("保存されていなければDEFAULT", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		profiles.On("FindByUser", mock.Anything, mock.Anything, userID).Return(nil, model.ErrNotFound).Once()
		svc := service.NewSettingsService(setupTestDB(t), profiles)

		got, err := svc.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, gpa.ScaleDefault, got.GradingScale)
		assert.Equal(t, 5.0, got.MaxPoints)
		assert.Len(t, got.Grades, 5)
	})

	t.Run("不明な保存値はDEFAULTとして読む", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		profiles.On("FindByUser", mock.Anything, mock.Anything, userID).
			Return(&model.Profile{UserID: userID, GradingScale: "LEGACY_7_0"}, nil).Once()
		svc := service.NewSettingsService(setupTestDB(t), profiles)

		got, err := svc.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, gpa.ScaleDefault, got.GradingScale)
	})

	t.Run("更新はupsert", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		profiles.On("Upsert", mock.Anything, mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
			return p.UserID == userID && p.GradingScale == "US_STANDARD_4_0"
		})).Return(nil).Once()
		svc := service.NewSettingsService(setupTestDB(t), profiles)

		got, err := svc.Update(context.Background(), userID, &model.UpdateSettingsRequest{GradingScale: "US_STANDARD_4_0"})
		require.NoError(t, err)
		assert.Equal(t, 4.0, got.MaxPoints)
		assert.Len(t, got.Grades, 11)
	})

	t.Run("不明な尺度への更新は不可", func(t *testing.T) {
		svc := service.NewSettingsService(setupTestDB(t), mocks.NewProfileRepository(t))
		_, err := svc.Update(context.Background(), userID, &model.UpdateSettingsRequest{GradingScale: "nope"})
		requireAppError(t, err, "INVALID_SCALE", model.ErrInvalidInput)
	})

	t.Run("尺度一覧は定義順", func(t *testing.T) {
		svc := service.NewSettingsService(setupTestDB(t), mocks.NewProfileRepository(t))
		scales := svc.Scales()
		require.Len(t, scales, len(gpa.Scales()))
		assert.Equal(t, gpa.ScaleDefault, scales[0].Name)
		for _, sc := range scales {
			assert.Equal(t, gpa.MaxPoints(sc.Name), sc.MaxPoints)
		}
	})
}
