package model

import (
	"time"

	"go_gpa_keep/internal/gpa"

	"github.com/google/uuid"
)

// Goal はユーザーごとに1件だけ存在する目標累積GPAです。
type Goal struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	TargetCGPA float64   `gorm:"not null" json:"target_cgpa"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Goal) TableName() string {
	return "goals"
}

type PutGoalRequest struct {
	TargetCGPA *float64 `json:"target_cgpa" validate:"required,gte=0"`
}

// Profile はユーザーの設定（評価尺度）です。
type Profile struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	GradingScale string    `gorm:"type:varchar(32);not null;default:'DEFAULT'" json:"grading_scale"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

type UpdateSettingsRequest struct {
	GradingScale string `json:"grading_scale" validate:"required,scale"`
}

type SettingsResponse struct {
	GradingScale gpa.Scale             `json:"grading_scale"`
	MaxPoints    float64               `json:"max_points"`
	Grades       []gpa.GradeDefinition `json:"grades"`
}

// ScaleInfo は尺度一覧APIの1要素です。
type ScaleInfo struct {
	Name      gpa.Scale             `json:"name"`
	MaxPoints float64               `json:"max_points"`
	Grades    []gpa.GradeDefinition `json:"grades"`
}

// NewSettingsResponse は尺度から設定レスポンスを組み立てます。
func NewSettingsResponse(scale gpa.Scale) *SettingsResponse {
	return &SettingsResponse{
		GradingScale: scale,
		MaxPoints:    gpa.MaxPoints(scale),
		Grades:       gpa.Definitions(scale),
	}
}
