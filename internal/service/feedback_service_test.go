package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go_gpa_keep/internal/config"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository/mocks"
	"go_gpa_keep/internal/service"
	svcmocks "go_gpa_keep/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubLimiter は Reserve の結果を固定で返します
type stubLimiter struct {
	ok       bool
	wait     time.Duration
	err      error
	released []string
}

func (l *stubLimiter) Reserve(_ context.Context, _ string, _ time.Duration) (bool, time.Duration, error) {
	return l.ok, l.wait, l.err
}

func (l *stubLimiter) Release(_ context.Context, key string) error {
	l.released = append(l.released, key)
	return nil
}

type feedbackFixture struct {
	users       *mocks.UserRepository
	suggestions *mocks.SuggestionRepository
	mailer      *svcmocks.Mailer
	limiter     *stubLimiter
	svc         service.FeedbackService
}

func newFeedbackFixture(t *testing.T, limiter *stubLimiter, notifyTo string) *feedbackFixture {
	f := &feedbackFixture{
		users:       mocks.NewUserRepository(t),
		suggestions: mocks.NewSuggestionRepository(t),
		mailer:      svcmocks.NewMailer(t),
		limiter:     limiter,
	}
	cfg := &config.FeedbackConfig{Cooldown: 30 * time.Second, NotifyTo: notifyTo}
	f.svc = service.NewFeedbackService(setupTestDB(t), f.users, f.suggestions, limiter, f.mailer, cfg)
	return f
}

func TestFeedbackService_Submit(t *testing.T) {
	userID := uuid.New()
	user := &model.User{UserID: userID, Username: "hanako", Email: "hanako@example.com", IsActive: true}
	req := &model.FeedbackRequest{Subject: " 要望 ", Suggestion: "ダークモードがほしいです"}

	t.Run("保存して受付メールを送る", func(t *testing.T) {
		f := newFeedbackFixture(t, &stubLimiter{ok: true}, "team@example.com")
		f.users.On("FindByID", mock.Anything, mock.Anything, userID).Return(user, nil).Once()
		f.suggestions.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *model.Suggestion) bool {
			return s.UserID == userID && s.Subject == "要望" && s.Email == user.Email && s.Name == "hanako"
		})).Return(nil).Once()
		f.mailer.On("Send", mock.Anything, user.Email, mock.Anything, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "ダークモード")
		})).Return(nil).Once()
		f.mailer.On("Send", mock.Anything, "team@example.com", "[feedback] 要望", mock.Anything).Return(nil).Once()

		s, err := f.svc.Submit(context.Background(), userID, req)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, s.SuggestionID)
	})

	t.Run("メール送信の失敗は成功扱い", func(t *testing.T) {
		f := newFeedbackFixture(t, &stubLimiter{ok: true}, "")
		f.users.On("FindByID", mock.Anything, mock.Anything, userID).Return(user, nil).Once()
		f.suggestions.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.mailer.On("Send", mock.Anything, user.Email, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		_, err := f.svc.Submit(context.Background(), userID, req)
		require.NoError(t, err)
	})

	t.Run("待機時間中は429と残り秒数", func(t *testing.T) {
		f := newFeedbackFixture(t, &stubLimiter{ok: false, wait: 12300 * time.Millisecond}, "")
		f.users.On("FindByID", mock.Anything, mock.Anything, userID).Return(user, nil).Once()

		_, err := f.svc.Submit(context.Background(), userID, req)
		appErr := requireAppError(t, err, "TOO_MANY_REQUESTS", model.ErrTooManyRequests)
		assert.Equal(t, 13, appErr.Detail.RetryAfter)
		f.suggestions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("リミッタが使えなくても受け付ける", func(t *testing.T) {
		f := newFeedbackFixture(t, &stubLimiter{err: errors.New("redis: connection refused")}, "")
		f.users.On("FindByID", mock.Anything, mock.Anything, userID).Return(user, nil).Once()
		f.suggestions.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.svc.Submit(context.Background(), userID, req)
		require.NoError(t, err)
	})

	t.Run("保存に失敗したら制限を解放する", func(t *testing.T) {
		limiter := &stubLimiter{ok: true}
		f := newFeedbackFixture(t, limiter, "")
		f.users.On("FindByID", mock.Anything, mock.Anything, userID).Return(user, nil).Once()
		f.suggestions.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		_, err := f.svc.Submit(context.Background(), userID, req)
		requireAppError(t, err, "INTERNAL_SERVER_ERROR", nil)
		assert.Equal(t, []string{"feedback:" + userID.String()}, limiter.released)
	})

	t.Run("空白だけの件名は不可", func(t *testing.T) {
		f := newFeedbackFixture(t, &stubLimiter{ok: true}, "")
		_, err := f.svc.Submit(context.Background(), userID, &model.FeedbackRequest{Subject: "  ", Suggestion: "x"})
		requireAppError(t, err, "VALIDATION_ERROR", model.ErrInvalidInput)
	})
}

func TestFeedbackService_ListMine(t *testing.T) {
	userID := uuid.New()
	f := newFeedbackFixture(t, &stubLimiter{ok: true}, "")
	f.suggestions.On("FindByUser", mock.Anything, mock.Anything, userID, 20).
		Return([]*model.Suggestion{{SuggestionID: uuid.New()}}, nil).Once()

	list, err := f.svc.ListMine(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
