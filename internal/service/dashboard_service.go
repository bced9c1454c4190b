//go:generate mockery --name DashboardService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DashboardService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.DashboardResponse, error)
}

type dashboardService struct {
	db           *gorm.DB
	semesterRepo repository.SemesterRepository
	goalRepo     repository.GoalRepository
	profileRepo  repository.ProfileRepository
}

func NewDashboardService(db *gorm.DB, semesterRepo repository.SemesterRepository, goalRepo repository.GoalRepository, profileRepo repository.ProfileRepository) DashboardService {
	return &dashboardService{
		db:           db,
		semesterRepo: semesterRepo,
		goalRepo:     goalRepo,
		profileRepo:  profileRepo,
	}
}

// academicRecord はユーザーの全学期と評価尺度をまとめたものです
type academicRecord struct {
	scale     gpa.Scale
	table     gpa.PointTable
	semesters []*model.Semester
}

func loadAcademicRecord(ctx context.Context, db *gorm.DB, semesterRepo repository.SemesterRepository, profileRepo repository.ProfileRepository, userID uuid.UUID) (*academicRecord, error) {
	scale, err := resolveScale(ctx, db, profileRepo, userID)
	if err != nil {
		return nil, err
	}
	semesters, err := semesterRepo.FindByUser(ctx, db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学期一覧の取得に失敗しました。", "", err)
	}
	rec := &academicRecord{scale: scale, table: gpa.Points(scale), semesters: semesters}
	for _, sem := range semesters {
		sem.RecomputeGPA(rec.table)
	}
	return rec, nil
}

func (r *academicRecord) cgpa() float64 {
	return gpa.CGPA(model.SemesterEntries(r.semesters), r.table)
}

func (r *academicRecord) totalCredits() float64 {
	return gpa.TotalCredits(model.SemesterEntries(r.semesters))
}

func (s *dashboardService) Get(ctx context.Context, userID uuid.UUID) (*model.DashboardResponse, error) {
	logger := middleware.GetLogger(ctx)

	rec, err := loadAcademicRecord(ctx, s.db, s.semesterRepo, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	goal, err := s.goalRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "目標の取得に失敗しました。", "", err)
		}
		goal = nil
	}

	resp := model.Summarize(rec.semesters, goal, rec.scale)
	if n := len(resp.MismatchedCourses); n > 0 {
		logger.Warn("Courses with grades outside the active scale are counted as 0 points",
			"grading_scale", rec.scale,
			"count", n,
		)
	}
	return resp, nil
}
