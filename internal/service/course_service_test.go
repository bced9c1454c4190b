package service_test

import (
	"context"
	"testing"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository/mocks"
	"go_gpa_keep/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type courseFixture struct {
	semesters *mocks.SemesterRepository
	courses   *mocks.CourseRepository
	profiles  *mocks.ProfileRepository
	svc       service.CourseService
}

func newCourseFixture(t *testing.T, userID uuid.UUID, scale gpa.Scale) *courseFixture {
	f := &courseFixture{
		semesters: mocks.NewSemesterRepository(t),
		courses:   mocks.NewCourseRepository(t),
		profiles:  mocks.NewProfileRepository(t),
	}
	f.profiles.On("FindByUser", mock.Anything, mock.Anything, userID).
		Return(&model.Profile{UserID: userID, GradingScale: string(scale)}, nil).Maybe()
	f.svc = service.NewCourseService(setupTestDB(t), f.semesters, f.courses, f.profiles)
	return f
}

func TestCourseService_Create(t *testing.T) {
	userID := uuid.New()
	semesterID := uuid.New()

	t.Run("作成できる", func(t *testing.T) {
		f := newCourseFixture(t, userID, gpa.ScaleUSStandard)
		f.semesters.On("FindByID", mock.Anything, mock.Anything, userID, semesterID).Return(&model.Semester{SemesterID: semesterID}, nil).Once()
		f.courses.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(c *model.Course) bool {
			return c.SemesterID == semesterID && c.Grade == gpa.GradeAMinus && c.CreditHours == 3
		})).Return(nil).Once()

		c, err := f.svc.Create(context.Background(), userID, semesterID, &model.CreateCourseRequest{Name: "Calculus", CreditHours: 3, Grade: gpa.GradeAMinus})
		require.NoError(t, err)
		assert.Equal(t, "Calculus", c.Name)
	})

	t.Run("現在の尺度にない成績は不可", func(t *testing.T) {
		f := newCourseFixture(t, userID, gpa.ScaleDefault)
		_, err := f.svc.Create(context.Background(), userID, semesterID, &model.CreateCourseRequest{Name: "Calculus", CreditHours: 3, Grade: gpa.GradeAMinus})
		appErr := requireAppError(t, err, "GRADE_NOT_IN_SCALE", model.ErrInvalidInput)
		assert.Equal(t, "grade", appErr.Detail.Field)
	})

	t.Run("単位数の範囲", func(t *testing.T) {
		f := newCourseFixture(t, userID, gpa.ScaleDefault)
		for _, credits := range []float64{0, -1, 6.5} {
			_, err := f.svc.Create(context.Background(), userID, semesterID, &model.CreateCourseRequest{Name: "x", CreditHours: credits, Grade: gpa.GradeA})
			requireAppError(t, err, "INVALID_CREDIT_HOURS", model.ErrInvalidInput)
		}
	})

	t.Run("他人の学期には追加できない", func(t *testing.T) {
		f := newCourseFixture(t, userID, gpa.ScaleDefault)
		f.semesters.On("FindByID", mock.Anything, mock.Anything, userID, semesterID).Return(nil, model.ErrNotFound).Once()

		_, err := f.svc.Create(context.Background(), userID, semesterID, &model.CreateCourseRequest{Name: "x", CreditHours: 3, Grade: gpa.GradeA})
		requireAppError(t, err, "SEMESTER_NOT_FOUND", model.ErrNotFound)
	})
}

func TestCourseService_Update(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()

	t.Run("指定したフィールドだけ更新する", func(t *testing.T) {
		f := newCourseFixture(t, userID, gpa.ScaleDefault)
		f.courses.On("Update", mock.Anything, mock.Anything, userID, courseID, mock.MatchedBy(func(u map[string]interface{}) bool {
			_, hasName := u["name"]
			return u["grade"] == "B" && u["credit_hours"] == 4.0 && !hasName
		})).Return(nil).Once()
		f.courses.On("FindByID", mock.Anything, mock.Anything, userID, courseID).
			Return(&model.Course{CourseID: courseID, Name: "Math", CreditHours: 4, Grade: gpa.GradeB}, nil).Once()

		c, err := f.svc.Update(context.Background(), userID, courseID, &model.UpdateCourseRequest{
			CreditHours: ptr(4.0),
			Grade:       ptr(gpa.GradeB),
		})
		require.NoError(t, err)
		assert.Equal(t, gpa.GradeB, c.Grade)
	})

	t.Run("更新項目なし", func(t *testing.T) {
		f := newCourseFixture(t, userID, gpa.ScaleDefault)
		_, err := f.svc.Update(context.Background(), userID, courseID, &model.UpdateCourseRequest{})
		requireAppError(t, err, "NO_FIELDS_TO_UPDATE", model.ErrInvalidInput)
	})

	t.Run("存在しない科目", func(t *testing.T) {
		f := newCourseFixture(t, userID, gpa.ScaleDefault)
		f.courses.On("Update", mock.Anything, mock.Anything, userID, courseID, mock.Anything).Return(model.ErrNotFound).Once()

		_, err := f.svc.Update(context.Background(), userID, courseID, &model.UpdateCourseRequest{Name: ptr("Algebra")})
		requireAppError(t, err, "COURSE_NOT_FOUND", model.ErrNotFound)
	})

	t.Run("尺度にない成績への変更は不可", func(t *testing.T) {
		f := newCourseFixture(t, userID, gpa.ScaleNUCReform)
		_, err := f.svc.Update(context.Background(), userID, courseID, &model.UpdateCourseRequest{Grade: ptr(gpa.GradeE)})
		requireAppError(t, err, "GRADE_NOT_IN_SCALE", model.ErrInvalidInput)
	})
}

func TestCourseService_ListAndDelete(t *testing.T) {
	userID := uuid.New()
	semesterID := uuid.New()
	courseID := uuid.New()

	f := newCourseFixture(t, userID, gpa.ScaleDefault)
	f.semesters.On("FindByID", mock.Anything, mock.Anything, userID, semesterID).Return(&model.Semester{SemesterID: semesterID}, nil).Once()
	f.courses.On("FindBySemester", mock.Anything, mock.Anything, userID, semesterID).Return([]*model.Course{{CourseID: courseID}}, nil).Once()
	f.courses.On("Delete", mock.Anything, mock.Anything, userID, courseID).Return(nil).Once()
	f.courses.On("Delete", mock.Anything, mock.Anything, userID, courseID).Return(model.ErrNotFound).Once()

	list, err := f.svc.ListBySemester(context.Background(), userID, semesterID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.svc.Delete(context.Background(), userID, courseID))
	requireAppError(t, f.svc.Delete(context.Background(), userID, courseID), "COURSE_NOT_FOUND", model.ErrNotFound)
}
