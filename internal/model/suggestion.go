package model

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion はユーザーから送られた要望・フィードバックです。
type Suggestion struct {
	SuggestionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"suggestion_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"not null" json:"email"`
	Subject      string    `gorm:"not null" json:"subject"`
	Body         string    `gorm:"type:text;not null" json:"suggestion"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Suggestion) TableName() string {
	return "suggestions"
}

type FeedbackRequest struct {
	Subject    string `json:"subject" validate:"required,max=200"`
	Suggestion string `json:"suggestion" validate:"required,max=5000"`
}
