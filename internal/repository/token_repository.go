//go:generate mockery --name TokenRepository --output ./mocks --outpkg mocks --case=underscore
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

// TokenRepository はメール認証とパスワード再設定のワンタイムトークンを扱います。
type TokenRepository interface {
	CreateVerificationToken(ctx context.Context, db *gorm.DB, token *model.UserVerificationToken) error
	FindVerificationToken(ctx context.Context, db *gorm.DB, token string) (*model.UserVerificationToken, error)
	DeleteVerificationToken(ctx context.Context, db *gorm.DB, token string) error
	CreatePasswordResetToken(ctx context.Context, db *gorm.DB, token *model.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.PasswordResetToken, error)
	DeletePasswordResetToken(ctx context.Context, db *gorm.DB, token string) error
	// DeletePasswordResetTokensByUser は新しいリンクを発行する前に古いリンクを無効化します。
	DeletePasswordResetTokensByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error
}

type gormTokenRepository struct{}

func NewGormTokenRepository() TokenRepository {
	return &gormTokenRepository{}
}

type oneTimeToken interface {
	model.UserVerificationToken | model.PasswordResetToken
}

func createToken[T oneTimeToken](ctx context.Context, db *gorm.DB, token *T, op string) error {
	if err := db.WithContext(ctx).Create(token).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to create token", "op", op, "error", err)
		return fmt.Errorf("gormTokenRepository.%s: %w", op, err)
	}
	return nil
}

func findToken[T oneTimeToken](ctx context.Context, db *gorm.DB, tokenStr, op string) (*T, error) {
	var token T
	if err := db.WithContext(ctx).Where("token = ?", tokenStr).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Failed to find token", "op", op, "error", err)
		return nil, fmt.Errorf("gormTokenRepository.%s: %w", op, err)
	}
	return &token, nil
}

func deleteTokens[T oneTimeToken](ctx context.Context, db *gorm.DB, op, query string, arg interface{}) error {
	var zero T
	if err := db.WithContext(ctx).Where(query, arg).Delete(&zero).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to delete token", "op", op, "error", err)
		return fmt.Errorf("gormTokenRepository.%s: %w", op, err)
	}
	return nil
}

func (r *gormTokenRepository) CreateVerificationToken(ctx context.Context, db *gorm.DB, token *model.UserVerificationToken) error {
	return createToken(ctx, db, token, "CreateVerificationToken")
}

func (r *gormTokenRepository) FindVerificationToken(ctx context.Context, db *gorm.DB, tokenStr string) (*model.UserVerificationToken, error) {
	return findToken[model.UserVerificationToken](ctx, db, tokenStr, "FindVerificationToken")
}

func (r *gormTokenRepository) DeleteVerificationToken(ctx context.Context, db *gorm.DB, tokenStr string) error {
	return deleteTokens[model.UserVerificationToken](ctx, db, "DeleteVerificationToken", "token = ?", tokenStr)
}

func (r *gormTokenRepository) CreatePasswordResetToken(ctx context.Context, db *gorm.DB, token *model.PasswordResetToken) error {
	return createToken(ctx, db, token, "CreatePasswordResetToken")
}

func (r *gormTokenRepository) FindPasswordResetToken(ctx context.Context, db *gorm.DB, tokenStr string) (*model.PasswordResetToken, error) {
	return findToken[model.PasswordResetToken](ctx, db, tokenStr, "FindPasswordResetToken")
}

func (r *gormTokenRepository) DeletePasswordResetToken(ctx context.Context, db *gorm.DB, tokenStr string) error {
	return deleteTokens[model.PasswordResetToken](ctx, db, "DeletePasswordResetToken", "token = ?", tokenStr)
}

func (r *gormTokenRepository) DeletePasswordResetTokensByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	return deleteTokens[model.PasswordResetToken](ctx, db, "DeletePasswordResetTokensByUser", "user_id = ?", userID)
}
