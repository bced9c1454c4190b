//go:generate mockery --name FeedbackService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go_gpa_keep/internal/config"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// recentFeedbackLimit は履歴として返す件数です
const recentFeedbackLimit = 20

type FeedbackService interface {
	Submit(ctx context.Context, userID uuid.UUID, req *model.FeedbackRequest) (*model.Suggestion, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*model.Suggestion, error)
}

type feedbackService struct {
	db             *gorm.DB
	userRepo       repository.UserRepository
	suggestionRepo repository.SuggestionRepository
	limiter        RateLimiter
	mailer         Mailer
	cfg            *config.FeedbackConfig
}

func NewFeedbackService(db *gorm.DB, userRepo repository.UserRepository, suggestionRepo repository.SuggestionRepository, limiter RateLimiter, mailer Mailer, cfg *config.FeedbackConfig) FeedbackService {
	return &feedbackService{
		db:             db,
		userRepo:       userRepo,
		suggestionRepo: suggestionRepo,
		limiter:        limiter,
		mailer:         mailer,
		cfg:            cfg,
	}
}

func feedbackKey(userID uuid.UUID) string {
	return "feedback:" + userID.String()
}

// Submit は要望を保存し、受付メールを送ります。同じユーザーは cooldown の間は送信できません。
func (s *feedbackService) Submit(ctx context.Context, userID uuid.UUID, req *model.FeedbackRequest) (*model.Suggestion, error) {
	logger := middleware.GetLogger(ctx)

	subject := strings.TrimSpace(req.Subject)
	body := strings.TrimSpace(req.Suggestion)
	if subject == "" || body == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "件名と内容は必須です。", "subject,suggestion", model.ErrInvalidInput)
	}

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	key := feedbackKey(userID)
	ok, retryAfter, err := s.limiter.Reserve(ctx, key, s.cfg.Cooldown)
	if err != nil {
		// リミッタが使えない場合は送信を止めない
		logger.Error("Rate limiter unavailable, accepting feedback", "error", err)
	} else if !ok {
		seconds := int(math.Ceil(retryAfter.Seconds()))
		logger.Warn("Feedback rate limited", "retry_after", seconds)
		return nil, model.NewAppError("TOO_MANY_REQUESTS",
			fmt.Sprintf("送信は%d秒後に再度お試しください。", seconds),
			"", model.ErrTooManyRequests).WithRetryAfter(seconds)
	}

	suggestion := &model.Suggestion{
		SuggestionID: uuid.New(),
		UserID:       userID,
		Name:         user.Username,
		Email:        user.Email,
		Subject:      subject,
		Body:         body,
		CreatedAt:    time.Now(),
	}
	if err := s.suggestionRepo.Create(ctx, s.db, suggestion); err != nil {
		if err := s.limiter.Release(ctx, key); err != nil {
			logger.Warn("Failed to release feedback rate limit", "error", err)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "要望の送信に失敗しました。", "", err)
	}

	// メールの失敗は送信結果に影響させない
	ackBody := fmt.Sprintf("%s 様\n\nご要望を受け付けました。ありがとうございます。\n\n件名: %s\n\n%s", user.Username, subject, body)
	if err := s.mailer.Send(ctx, user.Email, fmt.Sprintf("【%s】ご要望を受け付けました", config.AppName), ackBody); err != nil {
		logger.Warn("Failed to send feedback acknowledgement", "error", err)
	}
	if s.cfg.NotifyTo != "" {
		notice := fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s", user.Username, user.Email, subject, body)
		if err := s.mailer.Send(ctx, s.cfg.NotifyTo, "[feedback] "+subject, notice); err != nil {
			logger.Warn("Failed to send feedback notification", "error", err)
		}
	}

	logger.Info("Feedback submitted", "suggestion_id", suggestion.SuggestionID)
	return suggestion, nil
}

func (s *feedbackService) ListMine(ctx context.Context, userID uuid.UUID) ([]*model.Suggestion, error) {
	list, err := s.suggestionRepo.FindByUser(ctx, s.db, userID, recentFeedbackLimit)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "要望履歴の取得に失敗しました。", "", err)
	}
	return list, nil
}
