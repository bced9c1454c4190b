//go:generate mockery --name ScanService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go_gpa_keep/internal/config"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"

	"github.com/gabriel-vasile/mimetype"
)

// ScanService は成績表の画像から科目の候補を読み取ります。結果は保存されません。
type ScanService interface {
	Scan(ctx context.Context, image []byte) (*model.ScanResponse, error)
}

// CourseExtractor は画像から科目一覧を抽出する外部サービスです
type CourseExtractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) ([]*model.ScannedCourse, error)
}

type scanService struct {
	extractor CourseExtractor
	cfg       *config.ScanConfig
}

func NewScanService(extractor CourseExtractor, cfg *config.ScanConfig) ScanService {
	return &scanService{extractor: extractor, cfg: cfg}
}

func (s *scanService) Scan(ctx context.Context, image []byte) (*model.ScanResponse, error) {
	logger := middleware.GetLogger(ctx)

	if len(image) == 0 {
		return nil, model.NewAppError("IMAGE_REQUIRED", "画像ファイルを選択してください。", "image", model.ErrInvalidInput)
	}
	if int64(len(image)) > s.cfg.HardLimitBytes {
		logger.Warn("Scan image exceeds hard limit", "size", len(image), "limit", s.cfg.HardLimitBytes)
		return nil, model.NewAppError("IMAGE_TOO_LARGE",
			fmt.Sprintf("画像サイズは%dMB未満にしてください。", s.cfg.HardLimitBytes>>20),
			"image", model.ErrPayloadTooLarge)
	}
	if int64(len(image)) > s.cfg.SoftLimitBytes {
		logger.Warn("Scan image exceeds soft limit", "size", len(image), "limit", s.cfg.SoftLimitBytes)
		return nil, model.NewAppError("IMAGE_TOO_LARGE",
			fmt.Sprintf("画像が大きすぎます。%dMB以下の画像を使用してください。", s.cfg.SoftLimitBytes>>20),
			"image", model.ErrInvalidInput)
	}

	mt := mimetype.Detect(image)
	if !strings.HasPrefix(mt.String(), "image/") {
		logger.Warn("Scan upload is not an image", "detected", mt.String())
		return nil, model.NewAppError("UNSUPPORTED_MEDIA_TYPE", "画像ファイル（PNG、JPGなど）をアップロードしてください。", "image", model.ErrInvalidInput)
	}

	courses, err := s.extractor.Extract(ctx, image, mt.String())
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Course extraction failed", "error", err)
		return nil, model.NewAppError("SCAN_FAILED", "画像の読み取りに失敗しました。もう一度お試しください。", "", errors.Join(model.ErrUpstream, err))
	}
	if len(courses) == 0 {
		logger.Info("No courses found in scanned image")
		return nil, model.NewAppError("NO_COURSES_FOUND", "画像から科目が見つかりませんでした。より鮮明な画像でお試しください。", "image", model.ErrInvalidInput)
	}

	logger.Info("Scanned image", "mime_type", mt.String(), "courses", len(courses))
	return &model.ScanResponse{Courses: courses}, nil
}
