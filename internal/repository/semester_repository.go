//go:generate mockery --name SemesterRepository --output ./mocks --outpkg mocks --case=underscore
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

// SemesterRepository は学期の永続化を行います。すべての操作はユーザーIDで絞り込まれます。
type SemesterRepository interface {
	Create(ctx context.Context, tx *gorm.DB, semester *model.Semester) error
	FindByID(ctx context.Context, db *gorm.DB, userID, semesterID uuid.UUID) (*model.Semester, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Semester, error)
	UpdateName(ctx context.Context, tx *gorm.DB, userID, semesterID uuid.UUID, name string) error
	Delete(ctx context.Context, tx *gorm.DB, userID, semesterID uuid.UUID) error
}

type gormSemesterRepository struct{}

func NewGormSemesterRepository() SemesterRepository {
	return &gormSemesterRepository{}
}

// 科目は作成順に並べる
func orderCourses(db *gorm.DB) *gorm.DB {
	return db.Order("courses.created_at ASC")
}

func (r *gormSemesterRepository) Create(ctx context.Context, tx *gorm.DB, semester *model.Semester) error {
	logger := middleware.GetLogger(ctx)
	// 科目は CourseRepository 側で作成する
	result := tx.WithContext(ctx).Omit("Courses").Create(semester)
	if result.Error != nil {
		logger.Error("Error creating semester in DB",
			"error", result.Error,
			"user_id", semester.UserID.String(),
			"name", semester.Name,
		)
		return fmt.Errorf("gormSemesterRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormSemesterRepository) FindByID(ctx context.Context, db *gorm.DB, userID, semesterID uuid.UUID) (*model.Semester, error) {
	logger := middleware.GetLogger(ctx)
	var semester model.Semester
	result := db.WithContext(ctx).
		Preload("Courses", orderCourses).
		Where("user_id = ? AND semester_id = ?", userID, semesterID).
		First(&semester)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding semester by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"semester_id", semesterID.String(),
		)
		return nil, fmt.Errorf("gormSemesterRepository.FindByID: %w", result.Error)
	}
	return &semester, nil
}

// FindByUser は新しい学期を先頭に返します。各学期の科目も一括で読み込みます。
func (r *gormSemesterRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Semester, error) {
	logger := middleware.GetLogger(ctx)
	var semesters []*model.Semester
	result := db.WithContext(ctx).
		Preload("Courses", orderCourses).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&semesters)
	if result.Error != nil {
		logger.Error("Error finding semesters by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormSemesterRepository.FindByUser: %w", result.Error)
	}
	return semesters, nil
}

func (r *gormSemesterRepository) UpdateName(ctx context.Context, tx *gorm.DB, userID, semesterID uuid.UUID, name string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Semester{}).
		Where("user_id = ? AND semester_id = ?", userID, semesterID).
		Update("name", name)
	if result.Error != nil {
		logger.Error("Error updating semester in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"semester_id", semesterID.String(),
		)
		return fmt.Errorf("gormSemesterRepository.UpdateName: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete は学期とその科目を削除します。呼び出し側のトランザクション内で実行してください。
func (r *gormSemesterRepository) Delete(ctx context.Context, tx *gorm.DB, userID, semesterID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "semester_id", semesterID.String())

	owned := tx.Session(&gorm.Session{NewDB: true}).Model(&model.Semester{}).
		Select("semester_id").
		Where("user_id = ? AND semester_id = ?", userID, semesterID)

	courses := tx.WithContext(ctx).Where("semester_id IN (?)", owned).Delete(&model.Course{})
	if courses.Error != nil {
		logger.Error("Error deleting courses of semester in DB", "error", courses.Error)
		return fmt.Errorf("gormSemesterRepository.Delete: %w", courses.Error)
	}

	result := tx.WithContext(ctx).Where("user_id = ? AND semester_id = ?", userID, semesterID).Delete(&model.Semester{})
	if result.Error != nil {
		logger.Error("Error deleting semester in DB", "error", result.Error)
		return fmt.Errorf("gormSemesterRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	logger.Debug("Semester deleted", "courses_deleted", courses.RowsAffected)
	return nil
}
