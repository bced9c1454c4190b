package model

import (
	"go_gpa_keep/internal/gpa"

	"github.com/google/uuid"
)

// SemesterSummary はダッシュボードに表示する学期ごとの集計です。
type SemesterSummary struct {
	SemesterID  uuid.UUID `json:"semester_id"`
	Name        string    `json:"name"`
	GPA         float64   `json:"gpa"`
	GPADisplay  string    `json:"gpa_display"`
	Credits     float64   `json:"credits"`
	CourseCount int       `json:"course_count"`
}

type GoalProgressResponse struct {
	gpa.Progress
	DifferenceDisplay string `json:"difference_display"`
	PercentDisplay    string `json:"percent_display"`
}

// MismatchedCourse は現在の尺度に存在しない成績記号を持つ科目です（計算上は0ポイント）。
type MismatchedCourse struct {
	CourseID   uuid.UUID `json:"course_id"`
	SemesterID uuid.UUID `json:"semester_id"`
	Name       string    `json:"name"`
	Grade      gpa.Grade `json:"grade"`
}

type DashboardResponse struct {
	GradingScale        gpa.Scale             `json:"grading_scale"`
	CGPA                float64               `json:"cgpa"`
	CGPADisplay         string                `json:"cgpa_display"`
	TotalCredits        float64               `json:"total_credits"`
	TotalCreditsDisplay string                `json:"total_credits_display"`
	Semesters           []SemesterSummary     `json:"semesters"`
	Goal                *GoalProgressResponse `json:"goal,omitempty"`
	MismatchedCourses   []MismatchedCourse    `json:"mismatched_courses"`
}

// NewGoalProgressResponse は表示用の文字列を添えて進捗を返します。
func NewGoalProgressResponse(p gpa.Progress) *GoalProgressResponse {
	return &GoalProgressResponse{
		Progress:          p,
		DifferenceDisplay: gpa.Format2(p.Difference),
		PercentDisplay:    gpa.Format2(p.Percent),
	}
}

// HypotheticalCourse は what-if 計算専用の科目で、保存されません。
type HypotheticalCourse struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	CreditHours float64   `json:"credit_hours"`
	Grade       gpa.Grade `json:"grade" validate:"required,grade"`
}

type WhatIfRequest struct {
	CurrentCGPA    *float64              `json:"current_cgpa,omitempty" validate:"omitempty,gte=0"`
	CurrentCredits *float64              `json:"current_credits,omitempty" validate:"omitempty,gte=0"`
	Courses        []*HypotheticalCourse `json:"courses" validate:"dive,required"`
}

type WhatIfResponse struct {
	GradingScale      gpa.Scale `json:"grading_scale"`
	CurrentCGPA       float64   `json:"current_cgpa"`
	CurrentCredits    float64   `json:"current_credits"`
	ProjectedCGPA     float64   `json:"projected_cgpa"`
	ProjectedDisplay  string    `json:"projected_display"`
	NewCredits        float64   `json:"new_credits"`
	TotalCreditsAfter float64   `json:"total_credits_after"`
	Change            float64   `json:"change"`
	ChangeDisplay     string    `json:"change_display"`
}

// HypotheticalEntries は仮の科目を計算用のエントリに変換します。
func HypotheticalEntries(courses []*HypotheticalCourse) []gpa.Entry {
	out := make([]gpa.Entry, 0, len(courses))
	for _, c := range courses {
		out = append(out, gpa.Entry{Grade: c.Grade, CreditHours: c.CreditHours})
	}
	return out
}

// Summarize は学期・目標・評価尺度から集計を作ります。尺度は引数で明示し、学期の GPA フィールドは参照しません。
// 現在の尺度にない成績記号は0ポイントとして数え、MismatchedCourses に列挙します。
func Summarize(semesters []*Semester, goal *Goal, scale gpa.Scale) *DashboardResponse {
	table := gpa.Points(scale)
	entries := SemesterEntries(semesters)
	cgpa := gpa.CGPA(entries, table)
	total := gpa.TotalCredits(entries)

	resp := &DashboardResponse{
		GradingScale:        scale,
		CGPA:                cgpa,
		CGPADisplay:         gpa.Format2(cgpa),
		TotalCredits:        total,
		TotalCreditsDisplay: gpa.Format2(total),
		Semesters:           make([]SemesterSummary, 0, len(semesters)),
		MismatchedCourses:   []MismatchedCourse{},
	}
	for i, sem := range semesters {
		semGPA := gpa.SemesterGPA(entries[i], table)
		resp.Semesters = append(resp.Semesters, SemesterSummary{
			SemesterID:  sem.SemesterID,
			Name:        sem.Name,
			GPA:         semGPA,
			GPADisplay:  gpa.Format2(semGPA),
			Credits:     gpa.TotalCredits(entries[i:i+1]),
			CourseCount: len(sem.Courses),
		})
		for _, j := range gpa.UnknownGrades(entries[i], table) {
			c := sem.Courses[j]
			resp.MismatchedCourses = append(resp.MismatchedCourses, MismatchedCourse{
				CourseID:   c.CourseID,
				SemesterID: sem.SemesterID,
				Name:       c.Name,
				Grade:      c.Grade,
			})
		}
	}
	if goal != nil {
		resp.Goal = NewGoalProgressResponse(gpa.GoalProgress(cgpa, goal.TargetCGPA))
	}
	return resp
}
