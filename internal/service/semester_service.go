//go:generate mockery --name SemesterService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxCreditHours は1科目あたりの単位数の上限です
const maxCreditHours = 6.0

type SemesterService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*model.Semester, error)
	Get(ctx context.Context, userID, semesterID uuid.UUID) (*model.Semester, error)
	Create(ctx context.Context, userID uuid.UUID, req *model.CreateSemesterRequest) (*model.Semester, error)
	Rename(ctx context.Context, userID, semesterID uuid.UUID, req *model.UpdateSemesterRequest) (*model.Semester, error)
	Delete(ctx context.Context, userID, semesterID uuid.UUID) error
}

type semesterService struct {
	db           *gorm.DB
	semesterRepo repository.SemesterRepository
	courseRepo   repository.CourseRepository
	profileRepo  repository.ProfileRepository
}

func NewSemesterService(db *gorm.DB, semesterRepo repository.SemesterRepository, courseRepo repository.CourseRepository, profileRepo repository.ProfileRepository) SemesterService {
	return &semesterService{
		db:           db,
		semesterRepo: semesterRepo,
		courseRepo:   courseRepo,
		profileRepo:  profileRepo,
	}
}

// List は学期を新しい順に返します。GPAは現在の評価尺度で再計算されます。
func (s *semesterService) List(ctx context.Context, userID uuid.UUID) ([]*model.Semester, error) {
	scale, err := resolveScale(ctx, s.db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	semesters, err := s.semesterRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学期一覧の取得に失敗しました。", "", err)
	}
	table := gpa.Points(scale)
	for _, sem := range semesters {
		sem.RecomputeGPA(table)
	}
	return semesters, nil
}

func (s *semesterService) Get(ctx context.Context, userID, semesterID uuid.UUID) (*model.Semester, error) {
	scale, err := resolveScale(ctx, s.db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	sem, err := s.findSemester(ctx, s.db, userID, semesterID)
	if err != nil {
		return nil, err
	}
	sem.RecomputeGPA(gpa.Points(scale))
	return sem, nil
}

// Create は学期を作成します。読み取り結果の科目は、登録可能なものだけを同じトランザクションで作成します。
func (s *semesterService) Create(ctx context.Context, userID uuid.UUID, req *model.CreateSemesterRequest) (*model.Semester, error) {
	logger := middleware.GetLogger(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "学期名は必須です。", "name", model.ErrInvalidInput)
	}

	scale, err := resolveScale(ctx, s.db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	table := gpa.Points(scale)

	now := time.Now()
	semester := &model.Semester{
		SemesterID: uuid.New(),
		UserID:     userID,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	courses := importableCourses(ctx, semester.SemesterID, req.Courses, table, now)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.semesterRepo.Create(ctx, tx, semester); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学期の作成に失敗しました。", "", err)
		}
		if err := s.courseRepo.CreateMany(ctx, tx, courses); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "科目の登録に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	semester.Courses = courses
	semester.RecomputeGPA(table)
	logger.Info("Semester created",
		"semester_id", semester.SemesterID,
		"imported_courses", len(courses),
		"skipped_courses", len(req.Courses)-len(courses),
	)
	return semester, nil
}

func (s *semesterService) Rename(ctx context.Context, userID, semesterID uuid.UUID, req *model.UpdateSemesterRequest) (*model.Semester, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "学期名は必須です。", "name", model.ErrInvalidInput)
	}

	if err := s.semesterRepo.UpdateName(ctx, s.db, userID, semesterID, name); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, semesterNotFound()
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学期の更新に失敗しました。", "", err)
	}
	middleware.GetLogger(ctx).Info("Semester renamed", "semester_id", semesterID)
	return s.Get(ctx, userID, semesterID)
}

// Delete は学期とその科目をまとめて削除します
func (s *semesterService) Delete(ctx context.Context, userID, semesterID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.semesterRepo.Delete(ctx, tx, userID, semesterID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return semesterNotFound()
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学期の削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	middleware.GetLogger(ctx).Info("Semester deleted", "semester_id", semesterID)
	return nil
}

func (s *semesterService) findSemester(ctx context.Context, db *gorm.DB, userID, semesterID uuid.UUID) (*model.Semester, error) {
	sem, err := s.semesterRepo.FindByID(ctx, db, userID, semesterID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			middleware.GetLogger(ctx).Warn("Semester not found", "semester_id", semesterID)
			return nil, semesterNotFound()
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学期の取得に失敗しました。", "", err)
	}
	return sem, nil
}

func semesterNotFound() error {
	return model.NewAppError("SEMESTER_NOT_FOUND", "学期が見つかりません。", "semester_id", model.ErrNotFound)
}

// importableCourses は名前・単位数・成績が揃い、単位数と成績が有効な読み取り結果だけを科目に変換します
func importableCourses(ctx context.Context, semesterID uuid.UUID, scanned []*model.ScannedCourse, table gpa.PointTable, now time.Time) []*model.Course {
	logger := middleware.GetLogger(ctx)
	courses := make([]*model.Course, 0, len(scanned))
	for i, sc := range scanned {
		if sc == nil || !sc.Complete() {
			logger.Debug("Skipping incomplete scanned course", "index", i)
			continue
		}
		if *sc.CreditHours > maxCreditHours || !table.Has(sc.Grade) {
			logger.Debug("Skipping scanned course out of range", "index", i, "grade", sc.Grade, "credit_hours", *sc.CreditHours)
			continue
		}
		courses = append(courses, &model.Course{
			CourseID:    uuid.New(),
			SemesterID:  semesterID,
			Name:        strings.TrimSpace(sc.Name),
			CreditHours: *sc.CreditHours,
			Grade:       sc.Grade,
			// 読み取り順を保つために作成時刻をずらす
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
			UpdatedAt: now,
		})
	}
	return courses
}
