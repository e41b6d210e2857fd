package main

import (
	"context"

	"shopadmin/internal/config"
	"shopadmin/internal/infra/db"
	"shopadmin/internal/infra/logger"
	infraRepo "shopadmin/internal/infra/repository"
	"shopadmin/internal/usecase"
	authUC "shopadmin/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// 管理者ユーザーとデモ用のカテゴリ・商品を投入する（何度実行してもよい）
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zl := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = zl.Sync() }()

	gormDB, err := db.Connect(cfg, zl)
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	seedUC := usecase.NewSeedUsecase(
		infraRepo.NewTxManagerGorm(gormDB),
		infraRepo.NewUserGormRepository(gormDB),
		authUC.NewBcryptPasswordHasher(12),
		usecase.SystemClock(),
	)

	ctx := logger.WithContext(context.Background(), zl)
	if _, err := seedUC.Run(ctx, usecase.SeedInput{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}
}
