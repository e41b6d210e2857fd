package repository

import (
	"context"
	"time"

	"shopadmin/internal/domain/model"
)

// 管理ユーザーの保存・取得
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	// 最終ログイン時刻の更新
	TouchLastLogin(ctx context.Context, userID int64, at time.Time) error
}
