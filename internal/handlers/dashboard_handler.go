package handlers

import (
	"net/http"
	"strconv"

	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/service"
	"go_gpa_keep/internal/webutil"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler は集計系のエンドポイント（ダッシュボード、what-if、成績表出力）をまとめます
type DashboardHandler struct {
	dashboard  service.DashboardService
	whatIf     service.WhatIfService
	transcript service.TranscriptService
}

func NewDashboardHandler(dashboard service.DashboardService, whatIf service.WhatIfService, transcript service.TranscriptService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, whatIf: whatIf, transcript: transcript}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	summary, err := h.dashboard.Get(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

// PostWhatIf は仮の科目を加えた場合の累積GPAを計算します。何も保存しません。
func (h *DashboardHandler) PostWhatIf(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	var req model.WhatIfRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	projection, err := h.whatIf.Project(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, projection, logger)
}

func (h *DashboardHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	data, err := h.transcript.Export(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="transcript.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Warn("Failed to write transcript", "error", err)
	}
}
