package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers はAPIの全ハンドラをまとめたものです
type Handlers struct {
	Auth      *AuthHandler
	Semester  *SemesterHandler
	Course    *CourseHandler
	Goal      *GoalHandler
	Settings  *SettingsHandler
	Dashboard *DashboardHandler
	Scan      *ScanHandler
	Feedback  *FeedbackHandler
}

// Routes は /api/v1 配下のルートを登録します。auth は保護されたルートにだけ適用されます。
func (h *Handlers) Routes(r chi.Router, auth func(http.Handler) http.Handler) {
	// --- Public routes ---
	r.Get("/scales", h.Settings.ListScales)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Get("/verify", h.Auth.VerifyAccount)
		r.Post("/login", h.Auth.Login)
		r.Post("/forgot-password", h.Auth.RequestPasswordReset)
		r.Post("/reset-password", h.Auth.ResetPassword)
	})

	// --- Protected routes ---
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Put("/auth/password", h.Auth.ChangePassword)
		r.Get("/me", h.Auth.GetMe)

		r.Route("/semesters", func(r chi.Router) {
			r.Get("/", h.Semester.ListSemesters)
			r.Post("/", h.Semester.PostSemester)
			r.Get("/{semester_id}", h.Semester.GetSemester)
			r.Patch("/{semester_id}", h.Semester.PatchSemester)
			r.Delete("/{semester_id}", h.Semester.DeleteSemester)
			r.Get("/{semester_id}/courses", h.Course.ListCourses)
			r.Post("/{semester_id}/courses", h.Course.PostCourse)
		})
		r.Route("/courses", func(r chi.Router) {
			r.Patch("/{course_id}", h.Course.PatchCourse)
			r.Delete("/{course_id}", h.Course.DeleteCourse)
		})

		r.Get("/goal", h.Goal.GetGoal)
		r.Put("/goal", h.Goal.PutGoal)
		r.Delete("/goal", h.Goal.DeleteGoal)

		r.Get("/settings", h.Settings.GetSettings)
		r.Put("/settings", h.Settings.PutSettings)

		r.Get("/dashboard", h.Dashboard.GetDashboard)
		r.Post("/whatif", h.Dashboard.PostWhatIf)
		r.Get("/transcript.xlsx", h.Dashboard.GetTranscript)

		r.Post("/scan", h.Scan.PostScan)

		r.Get("/feedback", h.Feedback.ListFeedback)
		r.Post("/feedback", h.Feedback.PostFeedback)
	})
}
