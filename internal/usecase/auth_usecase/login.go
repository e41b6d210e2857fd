package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shopadmin/internal/domain/model"
	"shopadmin/internal/infra/logger"
	"shopadmin/internal/repository"
	"shopadmin/internal/usecase"

	"go.uber.org/zap"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

// handlerがJSONにして返す
type LoginOutput struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	User        model.User `json:"user"`
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type LoginUsecase struct {
	users    repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    usecase.Clock
}

func NewLoginUsecase(
	users repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock usecase.Clock,
) *LoginUsecase {
	return &LoginUsecase{
		users:    users,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する。失敗理由は区別せず401で返す。
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	log := logger.FromContext(ctx)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return LoginOutput{}, usecase.NewValidationError("email and password required")
	}

	//emailでユーザー取得
	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("login failed", zap.String("reason", "unknown email"))
		return LoginOutput{}, usecase.NewAuthError("incorrect email or password")
	}
	if err != nil {
		return LoginOutput{}, usecase.NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//パスワード照合
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		log.Warn("login failed", zap.String("reason", "password mismatch"), zap.Int64("user_id", user.ID))
		return LoginOutput{}, usecase.NewAuthError("incorrect email or password")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		log.Warn("login failed", zap.String("reason", "inactive"), zap.Int64("user_id", user.ID))
		return LoginOutput{}, usecase.NewForbiddenError("inactive user")
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, usecase.NewHTTPError(http.StatusInternalServerError, "token error")
	}

	//最終ログイン時刻更新
	if err := u.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return LoginOutput{}, usecase.NewHTTPError(http.StatusInternalServerError, "db error")
	}
	user.LastLoginAt = &now

	return LoginOutput{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(exp.Sub(now).Seconds()),
		User:        user,
	}, nil
}
