//go:generate mockery --name CourseService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseService interface {
	ListBySemester(ctx context.Context, userID, semesterID uuid.UUID) ([]*model.Course, error)
	Create(ctx context.Context, userID, semesterID uuid.UUID, req *model.CreateCourseRequest) (*model.Course, error)
	Update(ctx context.Context, userID, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error)
	Delete(ctx context.Context, userID, courseID uuid.UUID) error
}

type courseService struct {
	db           *gorm.DB
	semesterRepo repository.SemesterRepository
	courseRepo   repository.CourseRepository
	profileRepo  repository.ProfileRepository
}

func NewCourseService(db *gorm.DB, semesterRepo repository.SemesterRepository, courseRepo repository.CourseRepository, profileRepo repository.ProfileRepository) CourseService {
	return &courseService{
		db:           db,
		semesterRepo: semesterRepo,
		courseRepo:   courseRepo,
		profileRepo:  profileRepo,
	}
}

func (s *courseService) ListBySemester(ctx context.Context, userID, semesterID uuid.UUID) ([]*model.Course, error) {
	if err := s.ensureSemester(ctx, s.db, userID, semesterID); err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.FindBySemester(ctx, s.db, userID, semesterID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "科目一覧の取得に失敗しました。", "", err)
	}
	return courses, nil
}

func (s *courseService) Create(ctx context.Context, userID, semesterID uuid.UUID, req *model.CreateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "科目名は必須です。", "name", model.ErrInvalidInput)
	}
	if err := validateCreditHours(req.CreditHours); err != nil {
		return nil, err
	}
	if err := s.validateGrade(ctx, userID, req.Grade); err != nil {
		return nil, err
	}

	now := time.Now()
	course := &model.Course{
		CourseID:    uuid.New(),
		SemesterID:  semesterID,
		Name:        name,
		CreditHours: req.CreditHours,
		Grade:       req.Grade,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureSemester(ctx, tx, userID, semesterID); err != nil {
			return err
		}
		if err := s.courseRepo.Create(ctx, tx, course); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "科目の作成に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Course created", "course_id", course.CourseID, "semester_id", semesterID)
	return course, nil
}

// Update は指定されたフィールドだけを更新し、更新後の科目を返します
func (s *courseService) Update(ctx context.Context, userID, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	if req.IsEmpty() {
		return nil, model.NewAppError("NO_FIELDS_TO_UPDATE", "更新する項目がありません。", "", model.ErrInvalidInput)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, model.NewAppError("VALIDATION_ERROR", "科目名は必須です。", "name", model.ErrInvalidInput)
		}
		updates["name"] = name
	}
	if req.CreditHours != nil {
		if err := validateCreditHours(*req.CreditHours); err != nil {
			return nil, err
		}
		updates["credit_hours"] = *req.CreditHours
	}
	if req.Grade != nil {
		if err := s.validateGrade(ctx, userID, *req.Grade); err != nil {
			return nil, err
		}
		updates["grade"] = string(*req.Grade)
	}
	updates["updated_at"] = time.Now()

	var updated *model.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.courseRepo.Update(ctx, tx, userID, courseID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return courseNotFound()
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "科目の更新に失敗しました。", "", err)
		}
		c, err := s.courseRepo.FindByID(ctx, tx, userID, courseID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "科目の取得に失敗しました。", "", err)
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Course updated", "course_id", courseID, "fields", len(updates)-1)
	return updated, nil
}

func (s *courseService) Delete(ctx context.Context, userID, courseID uuid.UUID) error {
	if err := s.courseRepo.Delete(ctx, s.db, userID, courseID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return courseNotFound()
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "科目の削除に失敗しました。", "", err)
	}
	middleware.GetLogger(ctx).Info("Course deleted", "course_id", courseID)
	return nil
}

func (s *courseService) ensureSemester(ctx context.Context, db *gorm.DB, userID, semesterID uuid.UUID) error {
	if _, err := s.semesterRepo.FindByID(ctx, db, userID, semesterID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			middleware.GetLogger(ctx).Warn("Semester not found", "semester_id", semesterID)
			return semesterNotFound()
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "学期の取得に失敗しました。", "", err)
	}
	return nil
}

// validateGrade は成績記号が現在の評価尺度に含まれるかを確認します
func (s *courseService) validateGrade(ctx context.Context, userID uuid.UUID, grade gpa.Grade) error {
	scale, err := resolveScale(ctx, s.db, s.profileRepo, userID)
	if err != nil {
		return err
	}
	if !gpa.Points(scale).Has(grade) {
		middleware.GetLogger(ctx).Warn("Grade not in active scale", "grade", grade, "grading_scale", scale)
		return model.NewAppError("GRADE_NOT_IN_SCALE",
			fmt.Sprintf("成績「%s」は現在の評価尺度（%s）では使用できません。", grade, scale),
			"grade", model.ErrInvalidInput)
	}
	return nil
}

func validateCreditHours(v float64) error {
	if v <= 0 || v > maxCreditHours {
		return model.NewAppError("INVALID_CREDIT_HOURS", "単位数は0より大きく6以下で入力してください。", "credit_hours", model.ErrInvalidInput)
	}
	return nil
}

func courseNotFound() error {
	return model.NewAppError("COURSE_NOT_FOUND", "科目が見つかりません。", "course_id", model.ErrNotFound)
}
