package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_gpa_keep/internal/config"
	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository/mocks"
	"go_gpa_keep/internal/service"
	servicemocks "go_gpa_keep/internal/service/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// 関連するテストと共通のセットアップをまとめる
type AuthServiceTestSuite struct {
	suite.Suite

	mockUserRepo    *mocks.UserRepository
	mockTokenRepo   *mocks.TokenRepository
	mockProfileRepo *mocks.ProfileRepository
	mockMailer      *servicemocks.Mailer
	cfg             *config.Config
	authService     service.AuthService
}

// 各テストの前にモックを作り直す
func (s *AuthServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(mocks.UserRepository)
	s.mockTokenRepo = new(mocks.TokenRepository)
	s.mockProfileRepo = new(mocks.ProfileRepository)
	s.mockMailer = new(servicemocks.Mailer)

	s.cfg = &config.Config{}
	s.cfg.App.Name = "GPA Keep"
	s.cfg.App.FrontendURL = "http://localhost:3000"
	s.cfg.JWT.SecretKey = "test-secret"
	s.cfg.JWT.AccessTokenTTL = 15 * time.Minute

	s.authService = service.NewAuthService(setupTestDB(s.T()), s.mockUserRepo, s.mockTokenRepo, s.mockProfileRepo, s.mockMailer, s.cfg)
}

func (s *AuthServiceTestSuite) assertMocks() {
	s.mockUserRepo.AssertExpectations(s.T())
	s.mockTokenRepo.AssertExpectations(s.T())
	s.mockProfileRepo.AssertExpectations(s.T())
	s.mockMailer.AssertExpectations(s.T())
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func hashOf(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}

func (s *AuthServiceTestSuite) TestRegister() {
	testCases := []struct {
		name        string
		req         *model.RegisterRequest
		setupMocks  func()
		checkResult func(user *model.User, err error)
	}{
		{
			name: "Success - 正常に登録できる",
			req:  &model.RegisterRequest{Username: "taro", Email: "taro@example.com", Password: "password123"},
			setupMocks: func() {
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "taro@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockUserRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return !u.IsActive && u.PasswordHash != "password123" &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
				})).Return(nil).Once()
				s.mockTokenRepo.On("CreateVerificationToken", mock.Anything, mock.Anything, mock.MatchedBy(func(tok *model.UserVerificationToken) bool {
					return len(tok.Token) == 64 && tok.ExpiresAt.After(time.Now().Add(23*time.Hour))
				})).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, "taro@example.com", mock.Anything, mock.Anything).Return(nil).Once()
			},
			checkResult: func(user *model.User, err error) {
				s.NoError(err)
				s.Require().NotNil(user)
				s.Equal("taro@example.com", user.Email)
				s.NotEqual(uuid.Nil, user.UserID)
			},
		},
		{
			name: "Failure - Emailが重複している",
			req:  &model.RegisterRequest{Username: "taro", Email: "taro@example.com", Password: "password123"},
			setupMocks: func() {
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "taro@example.com").Return(&model.User{}, nil).Once()
			},
			checkResult: func(user *model.User, err error) {
				s.Nil(user)
				requireAppError(s.T(), err, "DUPLICATE_EMAIL", model.ErrConflict)
			},
		},
		{
			name: "Failure - 作成時に一意制約違反",
			req:  &model.RegisterRequest{Username: "taro", Email: "taro@example.com", Password: "password123"},
			setupMocks: func() {
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "taro@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockUserRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(model.ErrConflict).Once()
			},
			checkResult: func(user *model.User, err error) {
				s.Nil(user)
				requireAppError(s.T(), err, "DUPLICATE_EMAIL", model.ErrConflict)
			},
		},
		{
			name: "Failure - メール送信に失敗",
			req:  &model.RegisterRequest{Username: "taro", Email: "taro@example.com", Password: "password123"},
			setupMocks: func() {
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "taro@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockUserRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				s.mockTokenRepo.On("CreateVerificationToken", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
			},
			checkResult: func(user *model.User, err error) {
				s.Nil(user)
				requireAppError(s.T(), err, "EMAIL_SEND_FAILED", nil)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			user, err := s.authService.Register(context.Background(), tc.req)

			tc.checkResult(user, err)
			s.assertMocks()
		})
	}
}

func (s *AuthServiceTestSuite) TestLogin() {
	userID := uuid.New()
	active := &model.User{UserID: userID, Email: "taro@example.com", PasswordHash: hashOf("password123"), IsActive: true}
	inactive := &model.User{UserID: userID, Email: "taro@example.com", PasswordHash: hashOf("password123")}

	s.Run("Success - JWTが発行される", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "taro@example.com").Return(active, nil).Once()

		resp, err := s.authService.Login(context.Background(), &model.LoginRequest{Email: "taro@example.com", Password: "password123"})
		s.Require().NoError(err)
		s.Equal(int64(15*60), resp.ExpiresIn)

		claims := &jwt.RegisteredClaims{}
		_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		s.Require().NoError(err)
		s.Equal(userID.String(), claims.Subject)
		s.Equal("GPA Keep", claims.Issuer)
		s.assertMocks()
	})

	s.Run("Failure - パスワード不一致", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "taro@example.com").Return(active, nil).Once()

		_, err := s.authService.Login(context.Background(), &model.LoginRequest{Email: "taro@example.com", Password: "wrong-password"})
		requireAppError(s.T(), err, "AUTHENTICATION_FAILED", model.ErrUnauthorized)
	})

	s.Run("Failure - 未登録のメールアドレス", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "nobody@example.com").Return(nil, model.ErrNotFound).Once()

		_, err := s.authService.Login(context.Background(), &model.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		requireAppError(s.T(), err, "AUTHENTICATION_FAILED", model.ErrUnauthorized)
	})

	s.Run("Failure - 未有効化のアカウント", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "taro@example.com").Return(inactive, nil).Once()

		_, err := s.authService.Login(context.Background(), &model.LoginRequest{Email: "taro@example.com", Password: "password123"})
		requireAppError(s.T(), err, "ACCOUNT_NOT_ACTIVE", model.ErrForbidden)
	})
}

func (s *AuthServiceTestSuite) TestVerifyAccount() {
	userID := uuid.New()

	s.Run("Success - 有効化してトークンを削除", func() {
		s.SetupTest()
		s.mockTokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "tok").
			Return(&model.UserVerificationToken{Token: "tok", UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
		s.mockUserRepo.On("Activate", mock.Anything, mock.Anything, userID).Return(nil).Once()
		s.mockTokenRepo.On("DeleteVerificationToken", mock.Anything, mock.Anything, "tok").Return(nil).Once()

		s.NoError(s.authService.VerifyAccount(context.Background(), "tok"))
		s.assertMocks()
	})

	s.Run("Failure - 期限切れ", func() {
		s.SetupTest()
		s.mockTokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "tok").
			Return(&model.UserVerificationToken{Token: "tok", UserID: userID, ExpiresAt: time.Now().Add(-time.Minute)}, nil).Once()
		s.mockTokenRepo.On("DeleteVerificationToken", mock.Anything, mock.Anything, "tok").Return(nil).Once()

		requireAppError(s.T(), s.authService.VerifyAccount(context.Background(), "tok"), "INVALID_TOKEN", model.ErrInvalidInput)
		s.assertMocks()
	})

	s.Run("Failure - 存在しないトークン", func() {
		s.SetupTest()
		s.mockTokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "nope").Return(nil, model.ErrNotFound).Once()

		requireAppError(s.T(), s.authService.VerifyAccount(context.Background(), "nope"), "INVALID_TOKEN", model.ErrInvalidInput)
	})
}

func (s *AuthServiceTestSuite) TestPasswordReset() {
	userID := uuid.New()
	user := &model.User{UserID: userID, Email: "taro@example.com", PasswordHash: hashOf("old-password")}

	s.Run("存在しないメールアドレスでも成功扱い", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "nobody@example.com").Return(nil, model.ErrNotFound).Once()

		s.NoError(s.authService.RequestPasswordReset(context.Background(), "nobody@example.com"))
		s.mockMailer.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("再設定メールを送信", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "taro@example.com").Return(user, nil).Once()
		s.mockTokenRepo.On("CreatePasswordResetToken", mock.Anything, mock.Anything, mock.MatchedBy(func(tok *model.PasswordResetToken) bool {
			return tok.UserID == userID && tok.ExpiresAt.Before(time.Now().Add(61*time.Minute))
		})).Return(nil).Once()
		s.mockMailer.On("Send", mock.Anything, "taro@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
			return len(body) > 0
		})).Return(nil).Once()

		s.NoError(s.authService.RequestPasswordReset(context.Background(), "taro@example.com"))
		s.assertMocks()
	})

	s.Run("再設定するとユーザーの全トークンを無効化", func() {
		s.SetupTest()
		s.mockTokenRepo.On("FindPasswordResetToken", mock.Anything, mock.Anything, "reset").
			Return(&model.PasswordResetToken{Token: "reset", UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
		s.mockUserRepo.On("UpdatePasswordHash", mock.Anything, mock.Anything, userID, mock.MatchedBy(func(h string) bool {
			return bcrypt.CompareHashAndPassword([]byte(h), []byte("new-password")) == nil
		})).Return(nil).Once()
		s.mockTokenRepo.On("DeletePasswordResetTokensByUser", mock.Anything, mock.Anything, userID).Return(nil).Once()

		s.NoError(s.authService.ResetPassword(context.Background(), "reset", "new-password"))
		s.assertMocks()
	})

	s.Run("期限切れのトークン", func() {
		s.SetupTest()
		s.mockTokenRepo.On("FindPasswordResetToken", mock.Anything, mock.Anything, "reset").
			Return(&model.PasswordResetToken{Token: "reset", UserID: userID, ExpiresAt: time.Now().Add(-time.Second)}, nil).Once()
		s.mockTokenRepo.On("DeletePasswordResetToken", mock.Anything, mock.Anything, "reset").Return(nil).Once()

		requireAppError(s.T(), s.authService.ResetPassword(context.Background(), "reset", "new-password"), "INVALID_TOKEN", model.ErrInvalidInput)
		s.mockUserRepo.AssertNotCalled(s.T(), "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func (s *AuthServiceTestSuite) TestChangePassword() {
	userID := uuid.New()
	user := &model.User{UserID: userID, PasswordHash: hashOf("old-password")}

	s.Run("現在のパスワードが違う", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByID", mock.Anything, mock.Anything, userID).Return(user, nil).Once()

		err := s.authService.ChangePassword(context.Background(), userID, &model.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"})
		requireAppError(s.T(), err, "INVALID_PASSWORD", model.ErrInvalidInput)
	})

	s.Run("変更できる", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByID", mock.Anything, mock.Anything, userID).Return(user, nil).Once()
		s.mockUserRepo.On("UpdatePasswordHash", mock.Anything, mock.Anything, userID, mock.Anything).Return(nil).Once()

		err := s.authService.ChangePassword(context.Background(), userID, &model.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})
		s.NoError(err)
		s.assertMocks()
	})
}

func (s *AuthServiceTestSuite) TestGetMe() {
	userID := uuid.New()
	user := &model.User{UserID: userID, Username: "taro", Email: "taro@example.com", IsActive: true}

	s.Run("設定がなければDEFAULT", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByID", mock.Anything, mock.Anything, userID).Return(user, nil).Once()
		s.mockProfileRepo.On("FindByUser", mock.Anything, mock.Anything, userID).Return(nil, model.ErrNotFound).Once()

		me, err := s.authService.GetMe(context.Background(), userID)
		s.Require().NoError(err)
		s.Equal(string(gpa.ScaleDefault), me.GradingScale)
		s.Equal("taro", me.Username)
	})

	s.Run("保存された尺度を返す", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByID", mock.Anything, mock.Anything, userID).Return(user, nil).Once()
		s.mockProfileRepo.On("FindByUser", mock.Anything, mock.Anything, userID).
			Return(&model.Profile{UserID: userID, GradingScale: string(gpa.ScaleUSStandard)}, nil).Once()

		me, err := s.authService.GetMe(context.Background(), userID)
		s.Require().NoError(err)
		s.Equal(string(gpa.ScaleUSStandard), me.GradingScale)
	})
}
