//go:generate mockery --name CourseRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseRepository は科目の永続化を行います。所有者の確認は学期の user_id を経由します。
type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *model.Course) error
	CreateMany(ctx context.Context, tx *gorm.DB, courses []*model.Course) error
	FindByID(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.Course, error)
	FindBySemester(ctx context.Context, db *gorm.DB, userID, semesterID uuid.UUID) ([]*model.Course, error)
	FindBySemesterIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID, semesterIDs []uuid.UUID) ([]*model.Course, error)
	Update(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) error
}

type gormCourseRepository struct{}

func NewGormCourseRepository() CourseRepository {
	return &gormCourseRepository{}
}

// ownedSemesterIDs はユーザーが所有する学期IDのサブクエリです。
func ownedSemesterIDs(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).Model(&model.Semester{}).
		Select("semester_id").
		Where("user_id = ?", userID)
}

func (r *gormCourseRepository) Create(ctx context.Context, tx *gorm.DB, course *model.Course) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(course)
	if result.Error != nil {
		logger.Error("Error creating course in DB",
			"error", result.Error,
			"semester_id", course.SemesterID.String(),
			"name", course.Name,
		)
		return fmt.Errorf("gormCourseRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCourseRepository) CreateMany(ctx context.Context, tx *gorm.DB, courses []*model.Course) error {
	if len(courses) == 0 {
		return nil
	}
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).CreateInBatches(courses, 100)
	if result.Error != nil {
		logger.Error("Error creating courses in DB", "error", result.Error, "count", len(courses))
		return fmt.Errorf("gormCourseRepository.CreateMany: %w", result.Error)
	}
	return nil
}

func (r *gormCourseRepository) FindByID(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var course model.Course
	result := db.WithContext(ctx).
		Where("course_id = ? AND semester_id IN (?)", courseID, ownedSemesterIDs(db, userID)).
		First(&course)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"course_id", courseID.String(),
		)
		return nil, fmt.Errorf("gormCourseRepository.FindByID: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) FindBySemester(ctx context.Context, db *gorm.DB, userID, semesterID uuid.UUID) ([]*model.Course, error) {
	return r.FindBySemesterIDs(ctx, db, userID, []uuid.UUID{semesterID})
}

// FindBySemesterIDs は複数学期の科目を1クエリで取得します。他ユーザーの学期IDは無視されます。
func (r *gormCourseRepository) FindBySemesterIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID, semesterIDs []uuid.UUID) ([]*model.Course, error) {
	courses := []*model.Course{}
	if len(semesterIDs) == 0 {
		return courses, nil
	}
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).
		Where("semester_id IN ? AND semester_id IN (?)", semesterIDs, ownedSemesterIDs(db, userID)).
		Order("created_at ASC").
		Find(&courses)
	if result.Error != nil {
		logger.Error("Error finding courses by semesters in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"semester_count", len(semesterIDs),
		)
		return nil, fmt.Errorf("gormCourseRepository.FindBySemesterIDs: %w", result.Error)
	}
	return courses, nil
}

func (r *gormCourseRepository) Update(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Course{}).
		Where("course_id = ? AND semester_id IN (?)", courseID, ownedSemesterIDs(tx, userID)).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating course in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"course_id", courseID.String(),
		)
		return fmt.Errorf("gormCourseRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) Delete(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("course_id = ? AND semester_id IN (?)", courseID, ownedSemesterIDs(tx, userID)).
		Delete(&model.Course{})
	if result.Error != nil {
		logger.Error("Error deleting course in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"course_id", courseID.String(),
		)
		return fmt.Errorf("gormCourseRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
