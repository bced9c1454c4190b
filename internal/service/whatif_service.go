//go:generate mockery --name WhatIfService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"
	"math"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WhatIfService は仮の科目を加えた場合の累積GPAを計算します。結果は保存されません。
type WhatIfService interface {
	Project(ctx context.Context, userID uuid.UUID, req *model.WhatIfRequest) (*model.WhatIfResponse, error)
}

type whatIfService struct {
	db           *gorm.DB
	semesterRepo repository.SemesterRepository
	profileRepo  repository.ProfileRepository
}

func NewWhatIfService(db *gorm.DB, semesterRepo repository.SemesterRepository, profileRepo repository.ProfileRepository) WhatIfService {
	return &whatIfService{db: db, semesterRepo: semesterRepo, profileRepo: profileRepo}
}

func (s *whatIfService) Project(ctx context.Context, userID uuid.UUID, req *model.WhatIfRequest) (*model.WhatIfResponse, error) {
	logger := middleware.GetLogger(ctx)

	var (
		scale          gpa.Scale
		currentCGPA    float64
		currentCredits float64
	)
	// 現在値が両方与えられていれば保存済みの記録は読まない
	if req.CurrentCGPA != nil && req.CurrentCredits != nil {
		sc, err := resolveScale(ctx, s.db, s.profileRepo, userID)
		if err != nil {
			return nil, err
		}
		scale = sc
		currentCGPA, currentCredits = *req.CurrentCGPA, *req.CurrentCredits
	} else {
		rec, err := loadAcademicRecord(ctx, s.db, s.semesterRepo, s.profileRepo, userID)
		if err != nil {
			return nil, err
		}
		scale = rec.scale
		currentCGPA, currentCredits = rec.cgpa(), rec.totalCredits()
		if req.CurrentCGPA != nil {
			currentCGPA = *req.CurrentCGPA
		}
		if req.CurrentCredits != nil {
			currentCredits = *req.CurrentCredits
		}
	}

	if maxPoints := gpa.MaxPoints(scale); currentCGPA < 0 || currentCGPA > maxPoints {
		return nil, model.NewAppError("INVALID_CURRENT_CGPA",
			fmt.Sprintf("現在の累積GPAは0以上%s以下で入力してください。", gpa.Format1(maxPoints)),
			"current_cgpa", model.ErrInvalidInput)
	}
	if currentCredits < 0 {
		return nil, model.NewAppError("INVALID_CURRENT_CREDITS", "現在の取得単位数は0以上で入力してください。", "current_credits", model.ErrInvalidInput)
	}

	table := gpa.Points(scale)
	var newCredits float64
	for i, c := range req.Courses {
		if math.IsNaN(c.CreditHours) || math.IsInf(c.CreditHours, 0) {
			return nil, model.NewAppError("INVALID_CREDIT_HOURS", "単位数が不正です。", fmt.Sprintf("courses[%d].credit_hours", i), model.ErrInvalidInput)
		}
		if !table.Has(c.Grade) {
			return nil, model.NewAppError("GRADE_NOT_IN_SCALE",
				fmt.Sprintf("成績「%s」は現在の評価尺度（%s）では使用できません。", c.Grade, scale),
				fmt.Sprintf("courses[%d].grade", i), model.ErrInvalidInput)
		}
		newCredits += c.CreditHours
	}

	projected := gpa.ProjectedCGPA(currentCGPA, currentCredits, model.HypotheticalEntries(req.Courses), table)
	change := projected - currentCGPA

	logger.Debug("What-if projection computed",
		"grading_scale", scale,
		"hypothetical_courses", len(req.Courses),
		"projected_cgpa", projected,
	)
	return &model.WhatIfResponse{
		GradingScale:      scale,
		CurrentCGPA:       currentCGPA,
		CurrentCredits:    currentCredits,
		ProjectedCGPA:     projected,
		ProjectedDisplay:  gpa.Format3(projected),
		NewCredits:        newCredits,
		TotalCreditsAfter: currentCredits + newCredits,
		Change:            change,
		ChangeDisplay:     gpa.Format2(change),
	}, nil
}
