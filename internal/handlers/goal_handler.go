package handlers

import (
	"net/http"

	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/service"
	"go_gpa_keep/internal/webutil"
)

type GoalHandler struct {
	service service.GoalService
}

func NewGoalHandler(s service.GoalService) *GoalHandler {
	return &GoalHandler{service: s}
}

// GetGoal は目標CGPAを返します。未設定なら404です。
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	goal, err := h.service.Get(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, goal, logger)
}

// PutGoal は目標CGPAを作成または上書きします
func (h *GoalHandler) PutGoal(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	var req model.PutGoalRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	goal, err := h.service.Put(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Goal saved", "target_cgpa", goal.TargetCGPA)
	webutil.RespondWithJSON(w, http.StatusOK, goal, logger)
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
