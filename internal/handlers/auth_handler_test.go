package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go_gpa_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		setup      func(m *serviceMocks)
		wantStatus int
		wantCode   string
	}{
		{
			name: "正常系",
			body: model.RegisterRequest{Username: "hanako", Email: "hanako@example.com", Password: "password123"},
			setup: func(m *serviceMocks) {
				m.auth.On("Register", mock.Anything, mock.MatchedBy(func(r *model.RegisterRequest) bool {
					return r.Email == "hanako@example.com"
				})).Return(&model.User{UserID: uuid.New()}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "異常系: メール形式",
			body:       model.RegisterRequest{Username: "hanako", Email: "not-an-email", Password: "password123"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "異常系: 壊れたJSON",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST_BODY",
		},
		{
			name: "異常系: 登録済み",
			body: model.RegisterRequest{Username: "hanako", Email: "hanako@example.com", Password: "password123"},
			setup: func(m *serviceMocks) {
				m.auth.On("Register", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("DUPLICATE_EMAIL", "x", "email", model.ErrConflict)).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_EMAIL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, m := newTestServer(t)
			if tt.setup != nil {
				tt.setup(m)
			}
			_, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/auth/register", Body: tt.body}, tt.wantStatus)
			if tt.wantCode != "" {
				verifyErrorCode(t, body, tt.wantCode)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	server, m := newTestServer(t)
	m.auth.On("Login", mock.Anything, mock.MatchedBy(func(r *model.LoginRequest) bool {
		return r.Email == "hanako@example.com" && r.Password == "password123"
	})).Return(&model.LoginResponse{AccessToken: "jwt", ExpiresIn: 3600}, nil).Once()

	_, body := sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/auth/login",
		Body: model.LoginRequest{Email: "hanako@example.com", Password: "password123"},
	}, http.StatusOK)

	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "jwt", resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestAuthHandler_VerifyAccount(t *testing.T) {
	t.Run("トークンなし", func(t *testing.T) {
		server, _ := newTestServer(t)
		_, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/auth/verify"}, http.StatusBadRequest)
		verifyErrorCode(t, body, "INVALID_REQUEST")
	})

	t.Run("有効化", func(t *testing.T) {
		server, m := newTestServer(t)
		m.auth.On("VerifyAccount", mock.Anything, "abc123").Return(nil).Once()
		sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/auth/verify?token=abc123"}, http.StatusOK)
	})
}

func TestAuthHandler_ProtectedRoutes(t *testing.T) {
	userID := uuid.New()

	t.Run("認証ヘッダーなしは401", func(t *testing.T) {
		server, _ := newTestServer(t)
		_, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/me"}, http.StatusUnauthorized)
		verifyErrorCode(t, body, "UNAUTHORIZED")
	})

	t.Run("自分の情報", func(t *testing.T) {
		server, m := newTestServer(t)
		m.auth.On("GetMe", mock.Anything, userID).
			Return(&model.UserResponse{UserID: userID, Username: "hanako", GradingScale: "DEFAULT"}, nil).Once()

		_, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/me", UserID: userID}, http.StatusOK)
		var me model.UserResponse
		require.NoError(t, json.Unmarshal(body, &me))
		assert.Equal(t, userID, me.UserID)
		assert.Equal(t, "DEFAULT", me.GradingScale)
	})

	t.Run("パスワード変更は新旧が同じだと不可", func(t *testing.T) {
		server, _ := newTestServer(t)
		_, body := sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPut, Path: "/api/v1/auth/password", UserID: userID,
			Body: model.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"},
		}, http.StatusBadRequest)
		detail := verifyErrorCode(t, body, "VALIDATION_ERROR")
		assert.Equal(t, "new_password", detail.Field)
	})

	t.Run("パスワード変更", func(t *testing.T) {
		server, m := newTestServer(t)
		m.auth.On("ChangePassword", mock.Anything, userID, mock.Anything).Return(nil).Once()
		sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPut, Path: "/api/v1/auth/password", UserID: userID,
			Body: model.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"},
		}, http.StatusOK)
	})
}

func TestAuthHandler_PasswordReset(t *testing.T) {
	server, m := newTestServer(t)
	m.auth.On("RequestPasswordReset", mock.Anything, "hanako@example.com").Return(nil).Once()
	m.auth.On("ResetPassword", mock.Anything, "tok", "newpassword1").
		Return(model.NewAppError("INVALID_TOKEN", "x", "token", model.ErrInvalidInput)).Once()

	sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/auth/forgot-password",
		Body: model.ForgotPasswordRequest{Email: "hanako@example.com"},
	}, http.StatusOK)

	_, body := sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/auth/reset-password",
		Body: model.ResetPasswordRequest{Token: "tok", Password: "newpassword1"},
	}, http.StatusBadRequest)
	verifyErrorCode(t, body, "INVALID_TOKEN")
}
