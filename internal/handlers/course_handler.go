package handlers

import (
	"net/http"

	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/service"
	"go_gpa_keep/internal/webutil"
)

type CourseHandler struct {
	service service.CourseService
}

func NewCourseHandler(s service.CourseService) *CourseHandler {
	return &CourseHandler{service: s}
}

func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	semesterID, ok := pathUUID(w, r, logger, "semester_id")
	if !ok {
		return
	}

	courses, err := h.service.ListBySemester(r.Context(), userID, semesterID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if courses == nil {
		courses = []*model.Course{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, courses, logger)
}

func (h *CourseHandler) PostCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	semesterID, ok := pathUUID(w, r, logger, "semester_id")
	if !ok {
		return
	}

	var req model.CreateCourseRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	course, err := h.service.Create(r.Context(), userID, semesterID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course created", "course_id", course.CourseID.String())
	webutil.RespondWithJSON(w, http.StatusCreated, course, logger)
}

// PatchCourse は指定されたフィールドだけを更新します
func (h *CourseHandler) PatchCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	courseID, ok := pathUUID(w, r, logger, "course_id")
	if !ok {
		return
	}

	var req model.UpdateCourseRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	course, err := h.service.Update(r.Context(), userID, courseID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	courseID, ok := pathUUID(w, r, logger, "course_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, courseID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course deleted", "course_id", courseID.String())
	w.WriteHeader(http.StatusNoContent)
}
