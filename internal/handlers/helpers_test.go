package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_gpa_keep/internal/config"
	"go_gpa_keep/internal/handlers"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// serviceMocks はハンドラが依存する全サービスのモックです
type serviceMocks struct {
	auth       *mocks.AuthService
	semester   *mocks.SemesterService
	course     *mocks.CourseService
	goal       *mocks.GoalService
	settings   *mocks.SettingsService
	dashboard  *mocks.DashboardService
	whatIf     *mocks.WhatIfService
	transcript *mocks.TranscriptService
	scan       *mocks.ScanService
	feedback   *mocks.FeedbackService
}

// newTestServer はモックのサービスでAPIを組み立て、X-User-ID で認証するテストサーバーを起動します
func newTestServer(t *testing.T) (*httptest.Server, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		auth:       mocks.NewAuthService(t),
		semester:   mocks.NewSemesterService(t),
		course:     mocks.NewCourseService(t),
		goal:       mocks.NewGoalService(t),
		settings:   mocks.NewSettingsService(t),
		dashboard:  mocks.NewDashboardService(t),
		whatIf:     mocks.NewWhatIfService(t),
		transcript: mocks.NewTranscriptService(t),
		scan:       mocks.NewScanService(t),
		feedback:   mocks.NewFeedbackService(t),
	}
	scanCfg := &config.ScanConfig{SoftLimitBytes: 4 << 20, HardLimitBytes: 5 << 20}

	h := &handlers.Handlers{
		Auth:      handlers.NewAuthHandler(m.auth),
		Semester:  handlers.NewSemesterHandler(m.semester),
		Course:    handlers.NewCourseHandler(m.course),
		Goal:      handlers.NewGoalHandler(m.goal),
		Settings:  handlers.NewSettingsHandler(m.settings),
		Dashboard: handlers.NewDashboardHandler(m.dashboard, m.whatIf, m.transcript),
		Scan:      handlers.NewScanHandler(m.scan, scanCfg),
		Feedback:  handlers.NewFeedbackHandler(m.feedback),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.LoggingMiddleware(discardLogger))
	r.Route("/api/v1", func(r chi.Router) {
		h.Routes(r, middleware.DevUserContextMiddleware)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, m
}

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	UserID  uuid.UUID
	Headers map[string]string
}

// sendRequest はHTTPリクエストを送信し、ステータスコードを検証してボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectedCode int) (*http.Response, []byte) {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")

	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if details.UserID != uuid.Nil {
		req.Header.Set("X-User-ID", details.UserID.String())
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	assert.Equal(t, expectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBodyBytes))

	return resp, respBodyBytes
}

// verifyErrorCode はエラーレスポンスのコードを検証します。
func verifyErrorCode(t *testing.T, bodyBytes []byte, expectedCode string) model.ErrorDetail {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &errResp), "raw body: %s", string(bodyBytes))
	assert.Equal(t, expectedCode, errResp.Error.Code)
	return errResp.Error
}
