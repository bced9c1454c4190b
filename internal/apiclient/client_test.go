package apiclient_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_gpa_keep/internal/apiclient"
	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/workspace"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ workspace.DataStore = (*apiclient.Client)(nil)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail model.ErrorDetail) {
	writeJSON(w, code, model.APIErrorResponse{Error: detail})
}

func newServer(t *testing.T, routes func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/api/v1", routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_AuthHeaders(t *testing.T) {
	userID := uuid.New()
	var gotAuth, gotUser string
	srv := newServer(t, func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var req model.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "taro@example.com", req.Email)
			writeJSON(w, http.StatusOK, model.LoginResponse{AccessToken: "jwt-token", ExpiresIn: 3600})
		})
		r.Get("/settings", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotUser = r.Header.Get("X-User-ID")
			writeJSON(w, http.StatusOK, model.NewSettingsResponse(gpa.ScaleNUCReform))
		})
	})

	dev := apiclient.New(srv.URL+"/", apiclient.WithDevUser(userID))
	settings, err := dev.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, gpa.ScaleNUCReform, settings.GradingScale)
	assert.Empty(t, gotAuth)
	assert.Equal(t, userID.String(), gotUser)

	c := apiclient.New(srv.URL, apiclient.WithDevUser(userID))
	_, err = c.Login(context.Background(), "taro@example.com", "password123")
	require.NoError(t, err)
	_, err = c.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-token", gotAuth)
	assert.Empty(t, gotUser, "トークンがあれば X-User-ID は送らない")
}

func TestClient_ErrorMapping(t *testing.T) {
	srv := newServer(t, func(r chi.Router) {
		r.Get("/goal", func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, model.ErrorDetail{Code: "GOAL_NOT_FOUND", Message: "目標が設定されていません。"})
		})
		r.Post("/feedback", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "13")
			writeError(w, http.StatusTooManyRequests, model.ErrorDetail{Code: "TOO_MANY_REQUESTS", Message: "しばらくお待ちください。", RetryAfter: 13})
		})
		r.Put("/settings", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
	})
	c := apiclient.New(srv.URL)
	ctx := context.Background()

	goal, err := c.GetGoal(ctx)
	require.NoError(t, err, "未設定の目標はエラーではない")
	assert.Nil(t, goal)

	_, err = c.SubmitFeedback(ctx, "件名", "本文")
	require.ErrorIs(t, err, model.ErrTooManyRequests)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 13, appErr.Detail.RetryAfter)

	_, err = c.UpdateScale(ctx, gpa.ScaleDefault)
	require.ErrorIs(t, err, model.ErrInternalServer)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "HTTP_500", appErr.Detail.Code)
}

func TestClient_SemesterAndCourseCalls(t *testing.T) {
	semID := uuid.New()
	courseID := uuid.New()
	var calls []string
	srv := newServer(t, func(r chi.Router) {
		r.Get("/semesters", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []*model.Semester{{SemesterID: semID, Name: "1年前期", Courses: []*model.Course{}}})
		})
		r.Patch("/semesters/{id}", func(w http.ResponseWriter, r *http.Request) {
			var req model.UpdateSemesterRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			calls = append(calls, "rename:"+chi.URLParam(r, "id")+":"+req.Name)
			writeJSON(w, http.StatusOK, model.Semester{SemesterID: semID, Name: req.Name})
		})
		r.Post("/semesters/{id}/courses", func(w http.ResponseWriter, r *http.Request) {
			var req model.CreateCourseRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			calls = append(calls, "course:"+req.Name)
			writeJSON(w, http.StatusCreated, model.Course{CourseID: courseID, SemesterID: semID, Name: req.Name, CreditHours: req.CreditHours, Grade: req.Grade})
		})
		r.Patch("/courses/{id}", func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"grade":"B"}`, string(body), "nil のフィールドは送らない")
			calls = append(calls, "update:"+chi.URLParam(r, "id"))
			writeJSON(w, http.StatusOK, model.Course{CourseID: courseID, Grade: gpa.GradeB})
		})
		r.Delete("/courses/{id}", func(w http.ResponseWriter, r *http.Request) {
			calls = append(calls, "delete:"+chi.URLParam(r, "id"))
			w.WriteHeader(http.StatusNoContent)
		})
	})
	c := apiclient.New(srv.URL)
	ctx := context.Background()

	list, err := c.ListSemesters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = c.RenameSemester(ctx, semID, "1年後期")
	require.NoError(t, err)
	course, err := c.CreateCourse(ctx, semID, &model.CreateCourseRequest{Name: "Math", CreditHours: 3, Grade: gpa.GradeA})
	require.NoError(t, err)
	assert.Equal(t, courseID, course.CourseID)
	grade := gpa.GradeB
	_, err = c.UpdateCourse(ctx, courseID, &model.UpdateCourseRequest{Grade: &grade})
	require.NoError(t, err)
	require.NoError(t, c.DeleteCourse(ctx, courseID))

	assert.Equal(t, []string{
		"rename:" + semID.String() + ":1年後期",
		"course:Math",
		"update:" + courseID.String(),
		"delete:" + courseID.String(),
	}, calls)
}

func TestClient_ScanAndTranscript(t *testing.T) {
	image := []byte("\x89PNG\r\n\x1a\nfake")
	workbook := []byte("PK\x03\x04xlsx-bytes")
	srv := newServer(t, func(r chi.Router) {
		r.Post("/scan", func(w http.ResponseWriter, r *http.Request) {
			file, header, err := r.FormFile("image")
			require.NoError(t, err)
			defer file.Close()
			got, _ := io.ReadAll(file)
			assert.Equal(t, image, got)
			assert.Equal(t, "courses.png", header.Filename)
			credits := 3.0
			writeJSON(w, http.StatusOK, model.ScanResponse{Courses: []*model.ScannedCourse{{Name: "Math", CreditHours: &credits, Grade: gpa.GradeA}}})
		})
		r.Get("/transcript.xlsx", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Write(workbook)
		})
	})
	c := apiclient.New(srv.URL)
	ctx := context.Background()

	res, err := c.Scan(ctx, "courses.png", image)
	require.NoError(t, err)
	require.Len(t, res.Courses, 1)
	assert.Equal(t, "Math", res.Courses[0].Name)

	var buf bytes.Buffer
	require.NoError(t, c.Transcript(ctx, &buf))
	assert.Equal(t, workbook, buf.Bytes())
}

// Workspace と組み合わせ、失敗した書き込みが巻き戻ることを確認する
func TestClient_WithWorkspace(t *testing.T) {
	semID := uuid.New()
	courseID := uuid.New()
	srv := newServer(t, func(r chi.Router) {
		r.Get("/settings", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, model.NewSettingsResponse(gpa.ScaleDefault))
		})
		r.Get("/semesters", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []*model.Semester{{SemesterID: semID, Name: "1年前期", Courses: []*model.Course{
				{CourseID: courseID, SemesterID: semID, Name: "Math", CreditHours: 3, Grade: gpa.GradeA},
			}}})
		})
		r.Get("/goal", func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, model.ErrorDetail{Code: "GOAL_NOT_FOUND", Message: "x"})
		})
		r.Delete("/courses/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusBadGateway, model.ErrorDetail{Code: "UPSTREAM", Message: "x"})
		})
	})

	ws := workspace.New(apiclient.New(srv.URL), nil)
	ctx := context.Background()
	require.NoError(t, ws.Load(ctx))
	assert.InDelta(t, 5.0, ws.Summary().CGPA, 1e-9)

	err := ws.DeleteCourse(ctx, courseID, true)
	require.ErrorIs(t, err, model.ErrUpstream)
	sem, ok := ws.Semester(semID)
	require.True(t, ok)
	assert.Len(t, sem.Courses, 1)
}
