package model

import (
	"time"

	"github.com/google/uuid"
)

// UserVerificationToken は登録確認メールのリンクに含める使い捨てトークンです。有効化に成功すると削除されます。
type UserVerificationToken struct {
	Token     string    `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (UserVerificationToken) TableName() string {
	return "user_verification_tokens"
}

func (t *UserVerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// PasswordResetToken はパスワード再設定用です。再設定に成功するとそのユーザーのトークンはすべて削除されます。
type PasswordResetToken struct {
	Token     string    `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
