package handlers

import (
	"net/http"

	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/service"
	"go_gpa_keep/internal/webutil"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(s service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: s}
}

// ListScales は選択できる評価尺度と成績表を返します。認証は不要です。
func (h *SettingsHandler) ListScales(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	webutil.RespondWithJSON(w, http.StatusOK, h.service.Scales(), logger)
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	settings, err := h.service.Get(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, settings, logger)
}

// PutSettings は評価尺度を変更します。保存済みの成績は変換されません。
func (h *SettingsHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	var req model.UpdateSettingsRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	settings, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Grading scale updated", "scale", settings.GradingScale)
	webutil.RespondWithJSON(w, http.StatusOK, settings, logger)
}
