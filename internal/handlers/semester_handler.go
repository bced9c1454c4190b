package handlers

import (
	"net/http"

	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/service"
	"go_gpa_keep/internal/webutil"
)

type SemesterHandler struct {
	service service.SemesterService
}

func NewSemesterHandler(s service.SemesterService) *SemesterHandler {
	return &SemesterHandler{service: s}
}

// ListSemesters は学期の一覧を新しい順に返します。各学期のGPAは現在の尺度で再計算されます。
func (h *SemesterHandler) ListSemesters(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	semesters, err := h.service.List(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing semesters in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}
	if semesters == nil {
		semesters = []*model.Semester{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, semesters, logger)
}

func (h *SemesterHandler) GetSemester(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	semesterID, ok := pathUUID(w, r, logger, "semester_id")
	if !ok {
		return
	}

	semester, err := h.service.Get(r.Context(), userID, semesterID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, semester, logger)
}

// PostSemester は学期を作成します。読み取り結果の科目があれば同じトランザクションで登録します。
func (h *SemesterHandler) PostSemester(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	var req model.CreateSemesterRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	semester, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating semester in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Semester created", "semester_id", semester.SemesterID.String(), "courses", len(semester.Courses))
	webutil.RespondWithJSON(w, http.StatusCreated, semester, logger)
}

func (h *SemesterHandler) PatchSemester(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	semesterID, ok := pathUUID(w, r, logger, "semester_id")
	if !ok {
		return
	}

	var req model.UpdateSemesterRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	semester, err := h.service.Rename(r.Context(), userID, semesterID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, semester, logger)
}

// DeleteSemester は学期とその科目を削除します
func (h *SemesterHandler) DeleteSemester(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	semesterID, ok := pathUUID(w, r, logger, "semester_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, semesterID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Semester deleted", "semester_id", semesterID.String())
	w.WriteHeader(http.StatusNoContent)
}
