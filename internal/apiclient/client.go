// Package apiclient は /api/v1 のHTTPクライアントです。workspace.DataStore を実装します。
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"

	"github.com/google/uuid"
)

const apiPrefix = "/api/v1"

// Client はログイン中のユーザーとしてAPIを呼び出します。
// token が設定されていれば Bearer 認証、なければ開発用の X-User-ID ヘッダーを使います。
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	token  string
	userID uuid.UUID
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithDevUser は認証を無効にしたサーバー向けです
func WithDevUser(userID uuid.UUID) Option {
	return func(c *Client) { c.userID = userID }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken はログイン後に取得したアクセストークンを設定します
func (c *Client) SetToken(token string) {
	c.token = token
}

// statusSentinels はHTTPステータスから model の根本エラーへの対応です
var statusSentinels = map[int]error{
	http.StatusNotFound:              model.ErrNotFound,
	http.StatusBadRequest:            model.ErrInvalidInput,
	http.StatusConflict:              model.ErrConflict,
	http.StatusUnauthorized:          model.ErrUnauthorized,
	http.StatusForbidden:             model.ErrForbidden,
	http.StatusTooManyRequests:       model.ErrTooManyRequests,
	http.StatusRequestEntityTooLarge: model.ErrPayloadTooLarge,
	http.StatusBadGateway:            model.ErrUpstream,
}

// decodeError はエラーレスポンスを AppError に戻します。errors.Is で根本エラーを判定できます。
func decodeError(resp *http.Response, body []byte) error {
	sentinel, ok := statusSentinels[resp.StatusCode]
	if !ok {
		sentinel = model.ErrInternalServer
	}
	var apiErr model.APIErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Code == "" {
		return model.NewAppError("HTTP_"+fmt.Sprint(resp.StatusCode), http.StatusText(resp.StatusCode), "", sentinel)
	}
	return &model.AppError{Detail: apiErr.Error, Err: sentinel}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	switch {
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	case c.userID != uuid.Nil:
		req.Header.Set("X-User-ID", c.userID.String())
	}
	return req, nil
}

// do はリクエストを送り、2xx ならボディを out にデコードします。out が nil ならボディは捨てます。
func (c *Client) do(req *http.Request, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("apiclient: read response: %w", err)
	}
	c.logger.Debug("API call",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if w, ok := out.(io.Writer); ok {
		_, err := w.Write(body)
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("apiclient: decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// --- auth ---

func (c *Client) Register(ctx context.Context, req *model.RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", req, nil)
}

// Login は認証に成功するとトークンを保持し、以降の呼び出しに使います
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", &model.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*model.UserResponse, error) {
	var me model.UserResponse
	if err := c.doJSON(ctx, http.MethodGet, "/me", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// --- semesters / courses ---

func (c *Client) ListSemesters(ctx context.Context) ([]*model.Semester, error) {
	var semesters []*model.Semester
	if err := c.doJSON(ctx, http.MethodGet, "/semesters", nil, &semesters); err != nil {
		return nil, err
	}
	return semesters, nil
}

func (c *Client) CreateSemester(ctx context.Context, req *model.CreateSemesterRequest) (*model.Semester, error) {
	var sem model.Semester
	if err := c.doJSON(ctx, http.MethodPost, "/semesters", req, &sem); err != nil {
		return nil, err
	}
	return &sem, nil
}

func (c *Client) RenameSemester(ctx context.Context, semesterID uuid.UUID, name string) (*model.Semester, error) {
	var sem model.Semester
	if err := c.doJSON(ctx, http.MethodPatch, "/semesters/"+semesterID.String(), &model.UpdateSemesterRequest{Name: name}, &sem); err != nil {
		return nil, err
	}
	return &sem, nil
}

func (c *Client) DeleteSemester(ctx context.Context, semesterID uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "/semesters/"+semesterID.String(), nil, nil)
}

func (c *Client) CreateCourse(ctx context.Context, semesterID uuid.UUID, req *model.CreateCourseRequest) (*model.Course, error) {
	var course model.Course
	if err := c.doJSON(ctx, http.MethodPost, "/semesters/"+semesterID.String()+"/courses", req, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	var course model.Course
	if err := c.doJSON(ctx, http.MethodPatch, "/courses/"+courseID.String(), req, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "/courses/"+courseID.String(), nil, nil)
}

// --- goal / settings ---

// GetGoal は目標が未設定（404）なら nil, nil を返します
func (c *Client) GetGoal(ctx context.Context) (*model.Goal, error) {
	var goal model.Goal
	err := c.doJSON(ctx, http.MethodGet, "/goal", nil, &goal)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (c *Client) PutGoal(ctx context.Context, target float64) (*model.Goal, error) {
	var goal model.Goal
	if err := c.doJSON(ctx, http.MethodPut, "/goal", &model.PutGoalRequest{TargetCGPA: &target}, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (c *Client) DeleteGoal(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/goal", nil, nil)
}

func (c *Client) GetSettings(ctx context.Context) (*model.SettingsResponse, error) {
	var settings model.SettingsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *Client) UpdateScale(ctx context.Context, scale gpa.Scale) (*model.SettingsResponse, error) {
	var settings model.SettingsResponse
	if err := c.doJSON(ctx, http.MethodPut, "/settings", &model.UpdateSettingsRequest{GradingScale: string(scale)}, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *Client) Scales(ctx context.Context) ([]model.ScaleInfo, error) {
	var scales []model.ScaleInfo
	if err := c.doJSON(ctx, http.MethodGet, "/scales", nil, &scales); err != nil {
		return nil, err
	}
	return scales, nil
}

// --- dashboard / what-if / transcript ---

func (c *Client) Dashboard(ctx context.Context) (*model.DashboardResponse, error) {
	var dash model.DashboardResponse
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard", nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

func (c *Client) WhatIf(ctx context.Context, req *model.WhatIfRequest) (*model.WhatIfResponse, error) {
	var resp model.WhatIfResponse
	if err := c.doJSON(ctx, http.MethodPost, "/whatif", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Transcript は成績表のExcelファイルを w に書き出します
func (c *Client) Transcript(ctx context.Context, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/transcript.xlsx", nil)
	if err != nil {
		return err
	}
	return c.do(req, w)
}

// --- scan / feedback ---

// Scan は画像を multipart で送信し、読み取れた科目を返します
func (c *Client) Scan(ctx context.Context, filename string, image []byte) (*model.ScanResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build multipart: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("apiclient: build multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("apiclient: build multipart: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/scan", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp model.ScanResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SubmitFeedback(ctx context.Context, subject, suggestion string) (*model.Suggestion, error) {
	var s model.Suggestion
	if err := c.doJSON(ctx, http.MethodPost, "/feedback", &model.FeedbackRequest{Subject: subject, Suggestion: suggestion}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// VerifyAccount はメールで届いたトークンでアカウントを有効化します
func (c *Client) VerifyAccount(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodGet, "/auth/verify?token="+url.QueryEscape(token), nil, nil)
}
