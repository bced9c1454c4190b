package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go_gpa_keep/internal/config"
	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
)

// maxExtractorResponseBytes は推論エンドポイントの応答として読む上限です
const maxExtractorResponseBytes = 1 << 20

var errExtractorNotConfigured = errors.New("scan endpoint is not configured")

// HTTPCourseExtractor は画像をJSONで推論エンドポイントへ送り、科目一覧を受け取ります
type HTTPCourseExtractor struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

func NewHTTPCourseExtractor(cfg *config.ScanConfig) *HTTPCourseExtractor {
	return &HTTPCourseExtractor{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
	}
}

type extractRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
}

type extractedCourse struct {
	Name        string   `json:"name"`
	CreditHours *float64 `json:"creditHours"`
	Grade       string   `json:"grade"`
}

type extractResponse struct {
	Courses json.RawMessage `json:"courses"`
	Error   string          `json:"error"`
}

func (e *HTTPCourseExtractor) Extract(ctx context.Context, image []byte, mimeType string) ([]*model.ScannedCourse, error) {
	logger := middleware.GetLogger(ctx)
	if e.endpoint == "" {
		return nil, model.NewAppError("SCAN_UNAVAILABLE", "画像読み取り機能は現在利用できません。", "", errors.Join(model.ErrUpstream, errExtractorNotConfigured))
	}

	payload, err := json.Marshal(extractRequest{
		Image:    "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image),
		MimeType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("HTTPCourseExtractor.Extract: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("HTTPCourseExtractor.Extract: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	res, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPCourseExtractor.Extract: request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxExtractorResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("HTTPCourseExtractor.Extract: read body: %w", err)
	}

	var out extractResponse
	decodeErr := json.Unmarshal(body, &out)

	if res.StatusCode != http.StatusOK {
		logger.Warn("Scan endpoint returned an error", "status", res.StatusCode, "error", out.Error)
		msg := "画像の読み取りに失敗しました。もう一度お試しください。"
		if decodeErr == nil && out.Error != "" {
			msg = out.Error
		}
		return nil, model.NewAppError("SCAN_FAILED", msg, "", fmt.Errorf("%w: scan endpoint status %d", model.ErrUpstream, res.StatusCode))
	}
	if decodeErr != nil {
		return nil, invalidScanResponse(decodeErr)
	}

	raw := bytes.TrimSpace(out.Courses)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, invalidScanResponse(errors.New("courses is not an array"))
	}
	var items []extractedCourse
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, invalidScanResponse(err)
	}

	courses := make([]*model.ScannedCourse, 0, len(items))
	for _, it := range items {
		courses = append(courses, &model.ScannedCourse{
			Name:        strings.TrimSpace(it.Name),
			CreditHours: it.CreditHours,
			Grade:       gpa.Grade(strings.ToUpper(strings.TrimSpace(it.Grade))),
		})
	}
	return courses, nil
}

func invalidScanResponse(err error) error {
	return model.NewAppError("INVALID_SCAN_RESPONSE", "画像読み取りサービスから不正な応答がありました。", "", fmt.Errorf("%w: %v", model.ErrUpstream, err))
}
