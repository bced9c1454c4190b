package handlers

import (
	"errors"
	"io"
	"net/http"

	"go_gpa_keep/internal/config"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/service"
	"go_gpa_keep/internal/webutil"
)

// multipartOverhead はファイル以外のマルチパート部分として許容するバイト数です
const multipartOverhead = 64 << 10

type ScanHandler struct {
	service service.ScanService
	cfg     *config.ScanConfig
}

func NewScanHandler(s service.ScanService, cfg *config.ScanConfig) *ScanHandler {
	return &ScanHandler{service: s, cfg: cfg}
}

// PostScan はマルチパートの image フィールドを読み取り、科目の候補を返します
func (h *ScanHandler) PostScan(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	if _, ok := currentUser(w, r, logger); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.HardLimitBytes+multipartOverhead)
	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			logger.Warn("Scan upload exceeds request limit", "limit", maxErr.Limit)
			webutil.HandleError(w, logger, model.NewAppError("IMAGE_TOO_LARGE", "画像サイズが上限を超えています。", "image", model.ErrPayloadTooLarge))
		case errors.Is(err, http.ErrMissingFile):
			webutil.HandleError(w, logger, model.NewAppError("IMAGE_REQUIRED", "画像ファイルを選択してください。", "image", model.ErrInvalidInput))
		default:
			logger.Warn("Failed to parse multipart form", "error", err)
			webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "マルチパート形式で画像を送信してください。", "image", model.ErrInvalidInput))
		}
		return
	}
	defer file.Close()

	// 上限を1バイト超えて読めばサイズ超過を判定できる
	image, err := io.ReadAll(io.LimitReader(file, h.cfg.HardLimitBytes+1))
	if err != nil {
		logger.Error("Failed to read uploaded image", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With("filename", header.Filename, "size", len(image))

	result, err := h.service.Scan(r.Context(), image)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
