package model

import (
	"strings"
	"time"

	"go_gpa_keep/internal/gpa"

	"github.com/google/uuid"
)

// Semester は学期です。科目の一覧を所有し、削除時は科目も一緒に削除されます。
type Semester struct {
	SemesterID uuid.UUID `gorm:"type:uuid;primaryKey" json:"semester_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name       string    `gorm:"not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Courses []*Course `gorm:"foreignKey:SemesterID;constraint:OnDelete:CASCADE" json:"courses"`

	// GPA は読み出しのたびに科目から再計算される派生値で、保存されません。
	GPA float64 `gorm:"-" json:"gpa"`
}

func (Semester) TableName() string {
	return "semesters"
}

// Course は学期に属する1科目です。
type Course struct {
	CourseID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"course_id"`
	SemesterID  uuid.UUID `gorm:"type:uuid;not null;index" json:"semester_id"`
	Name        string    `gorm:"not null;default:''" json:"name"`
	CreditHours float64   `gorm:"not null" json:"credit_hours"`
	Grade       gpa.Grade `gorm:"type:varchar(2);not null" json:"grade"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

// Entries は科目一覧を計算用のエントリに変換します。
func Entries(courses []*Course) []gpa.Entry {
	out := make([]gpa.Entry, 0, len(courses))
	for _, c := range courses {
		out = append(out, gpa.Entry{Grade: c.Grade, CreditHours: c.CreditHours})
	}
	return out
}

// SemesterEntries は累積GPA計算用に学期ごとのエントリを作ります。
func SemesterEntries(semesters []*Semester) [][]gpa.Entry {
	out := make([][]gpa.Entry, 0, len(semesters))
	for _, s := range semesters {
		out = append(out, Entries(s.Courses))
	}
	return out
}

// RecomputeGPA は指定された尺度で派生GPAを埋め直します。
func (s *Semester) RecomputeGPA(table gpa.PointTable) {
	s.GPA = gpa.SemesterGPA(Entries(s.Courses), table)
}

// CreateSemesterRequest は学期作成のリクエスト。画像読み取り結果などの科目をまとめて登録できます。
type CreateSemesterRequest struct {
	Name    string           `json:"name" validate:"required,max=100"`
	Courses []*ScannedCourse `json:"courses,omitempty"`
}

type UpdateSemesterRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreateCourseRequest struct {
	Name        string    `json:"name" validate:"required,max=200"`
	CreditHours float64   `json:"credit_hours" validate:"gt=0,lte=6"`
	Grade       gpa.Grade `json:"grade" validate:"required,grade"`
}

// UpdateCourseRequest は部分更新。nil のフィールドは変更しません。
type UpdateCourseRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	CreditHours *float64   `json:"credit_hours,omitempty" validate:"omitempty,gt=0,lte=6"`
	Grade       *gpa.Grade `json:"grade,omitempty" validate:"omitempty,grade"`
}

// IsEmpty は更新対象のフィールドが1つもないかを返します。
func (r *UpdateCourseRequest) IsEmpty() bool {
	return r.Name == nil && r.CreditHours == nil && r.Grade == nil
}

// ScannedCourse は画像読み取りで得られた部分的な科目情報です。どのフィールドも欠けている可能性があります。
type ScannedCourse struct {
	Name        string    `json:"name"`
	CreditHours *float64  `json:"credit_hours"`
	Grade       gpa.Grade `json:"grade"`
}

// Complete は科目として登録できるだけの情報が揃っているかを返します。
func (c *ScannedCourse) Complete() bool {
	return strings.TrimSpace(c.Name) != "" && c.CreditHours != nil && *c.CreditHours > 0 && c.Grade != ""
}

type ScanResponse struct {
	Courses []*ScannedCourse `json:"courses"`
}
