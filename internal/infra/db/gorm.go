package db

import (
	"fmt"
	"strings"
	"time"

	"shopadmin/internal/config"
	"shopadmin/internal/domain/model"
	"shopadmin/internal/infra/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqlitePrefix = "sqlite://"

// Connect はDBに接続して *gorm.DB を返す。
// DATABASE_URL が sqlite:// で始まる場合はSQLiteを使う（ローカル開発用）。
func Connect(cfg config.Config, zl *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.NewGormLogger(zl, logger.GormLevel(cfg.LogLevel), 200*time.Millisecond),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(cfg.DatabaseURL, sqlitePrefix):
		dialector = sqlite.Open(strings.TrimPrefix(cfg.DatabaseURL, sqlitePrefix))
	case cfg.DatabaseURL != "":
		// DATABASE_URL があれば最優先で使う
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = postgres.Open(cfg.PostgresDSN())
	}

	gdb, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	return gdb, nil
}

// Models はマイグレーション対象のモデル一覧
func Models() []any {
	return []any{
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	}
}

// Migrate はスキーマを作成・更新する
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
