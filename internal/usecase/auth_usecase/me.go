package auth

import (
	"context"
	"errors"
	"net/http"

	"shopadmin/internal/domain/model"
	"shopadmin/internal/repository"
	"shopadmin/internal/usecase"
)

// ログイン中ユーザーの取得（GET /api/auth/me）
type MeUsecase struct {
	users repository.UserRepository
}

func NewMeUsecase(users repository.UserRepository) *MeUsecase {
	return &MeUsecase{users: users}
}

func (u *MeUsecase) Execute(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, usecase.NewAuthError("unauthorized")
	}
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, usecase.NewAuthError("unauthorized")
	}
	if err != nil {
		return model.User{}, usecase.NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}
