package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_GetDashboard(t *testing.T) {
	userID := uuid.New()
	server, m := newTestServer(t)
	m.dashboard.On("Get", mock.Anything, userID).Return(&model.DashboardResponse{
		GradingScale:      gpa.ScaleDefault,
		CGPA:              35.0 / 9.0,
		CGPADisplay:       "3.89",
		TotalCredits:      9,
		Semesters:         []model.SemesterSummary{},
		Goal:              model.NewGoalProgressResponse(gpa.GoalProgress(35.0/9.0, 4.5)),
		MismatchedCourses: []model.MismatchedCourse{},
	}, nil).Once()

	_, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/dashboard", UserID: userID}, http.StatusOK)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "3.89", got["cgpa_display"])
	goal, ok := got["goal"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "86.42", goal["percent_display"])
}

func TestDashboardHandler_PostWhatIf(t *testing.T) {
	userID := uuid.New()

	t.Run("計算結果を返す", func(t *testing.T) {
		server, m := newTestServer(t)
		m.whatIf.On("Project", mock.Anything, userID, mock.MatchedBy(func(r *model.WhatIfRequest) bool {
			return *r.CurrentCGPA == 3.0 && len(r.Courses) == 1 && r.Courses[0].Grade == gpa.GradeA
		})).Return(&model.WhatIfResponse{ProjectedCGPA: 45.0 / 13.0, ProjectedDisplay: "3.462"}, nil).Once()

		_, body := sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPost, Path: "/api/v1/whatif", UserID: userID,
			Body: `{"current_cgpa":3.0,"current_credits":10,"courses":[{"name":"Stats","credit_hours":3,"grade":"A"}]}`,
		}, http.StatusOK)
		var got model.WhatIfResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "3.462", got.ProjectedDisplay)
	})

	t.Run("負の取得単位数は400", func(t *testing.T) {
		server, _ := newTestServer(t)
		_, body := sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPost, Path: "/api/v1/whatif", UserID: userID,
			Body: `{"current_cgpa":3.0,"current_credits":-1,"courses":[]}`,
		}, http.StatusBadRequest)
		detail := verifyErrorCode(t, body, "VALIDATION_ERROR")
		assert.Equal(t, "current_credits", detail.Field)
	})
}

func TestDashboardHandler_GetTranscript(t *testing.T) {
	userID := uuid.New()
	server, m := newTestServer(t)
	m.transcript.On("Export", mock.Anything, userID).Return([]byte("PK\x03\x04fake"), nil).Once()

	resp, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/transcript.xlsx", UserID: userID}, http.StatusOK)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "transcript.xlsx")
	assert.Equal(t, "PK\x03\x04fake", string(body))
}

func TestGoalHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("未設定は404", func(t *testing.T) {
		server, m := newTestServer(t)
		m.goal.On("Get", mock.Anything, userID).Return(nil, model.NewAppError("GOAL_NOT_FOUND", "x", "", model.ErrNotFound)).Once()
		_, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/goal", UserID: userID}, http.StatusNotFound)
		verifyErrorCode(t, body, "GOAL_NOT_FOUND")
	})

	t.Run("保存", func(t *testing.T) {
		server, m := newTestServer(t)
		m.goal.On("Put", mock.Anything, userID, mock.MatchedBy(func(r *model.PutGoalRequest) bool {
			return r.TargetCGPA != nil && *r.TargetCGPA == 4.5
		})).Return(&model.Goal{UserID: userID, TargetCGPA: 4.5}, nil).Once()

		_, body := sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPut, Path: "/api/v1/goal", UserID: userID, Body: `{"target_cgpa":4.5}`,
		}, http.StatusOK)
		assert.Contains(t, string(body), `"target_cgpa":4.5`)
	})

	t.Run("目標値なしは400", func(t *testing.T) {
		server, _ := newTestServer(t)
		_, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/goal", UserID: userID, Body: `{}`}, http.StatusBadRequest)
		verifyErrorCode(t, body, "VALIDATION_ERROR")
	})

	t.Run("削除", func(t *testing.T) {
		server, m := newTestServer(t)
		m.goal.On("Delete", mock.Anything, userID).Return(nil).Once()
		sendRequest(t, server, httpRequestDetails{Method: http.MethodDelete, Path: "/api/v1/goal", UserID: userID}, http.StatusNoContent)
	})
}

func TestSettingsHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("尺度一覧は認証不要", func(t *testing.T) {
		server, m := newTestServer(t)
		m.settings.On("Scales").Return([]model.ScaleInfo{{Name: gpa.ScaleDefault, MaxPoints: 5}}).Once()
		_, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/scales"}, http.StatusOK)
		assert.Contains(t, string(body), "DEFAULT")
	})

	t.Run("尺度の変更", func(t *testing.T) {
		server, m := newTestServer(t)
		m.settings.On("Update", mock.Anything, userID, &model.UpdateSettingsRequest{GradingScale: "NUC_REFORM_4_0"}).
			Return(model.NewSettingsResponse(gpa.ScaleNUCReform), nil).Once()
		_, body := sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPut, Path: "/api/v1/settings", UserID: userID, Body: model.UpdateSettingsRequest{GradingScale: "NUC_REFORM_4_0"},
		}, http.StatusOK)
		var got model.SettingsResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, 4.0, got.MaxPoints)
	})

	t.Run("未知の尺度は400", func(t *testing.T) {
		server, _ := newTestServer(t)
		_, body := sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPut, Path: "/api/v1/settings", UserID: userID, Body: model.UpdateSettingsRequest{GradingScale: "GPA_10"},
		}, http.StatusBadRequest)
		detail := verifyErrorCode(t, body, "VALIDATION_ERROR")
		assert.Equal(t, "grading_scale", detail.Field)
	})

	t.Run("取得", func(t *testing.T) {
		server, m := newTestServer(t)
		m.settings.On("Get", mock.Anything, userID).Return(model.NewSettingsResponse(gpa.ScaleDefault), nil).Once()
		sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/settings", UserID: userID}, http.StatusOK)
	})
}
