package handlers

import (
	"net/http"

	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/service"
	"go_gpa_keep/internal/webutil"
)

type FeedbackHandler struct {
	service service.FeedbackService
}

func NewFeedbackHandler(s service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: s}
}

// PostFeedback は要望を受け付けます。送信間隔の制限を超えると429とRetry-Afterを返します。
func (h *FeedbackHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	var req model.FeedbackRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	suggestion, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, suggestion, logger)
}

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	list, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if list == nil {
		list = []*model.Suggestion{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, list, logger)
}
