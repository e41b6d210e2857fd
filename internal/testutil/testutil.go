// Package testutil はテスト用のDBや固定時計を提供する。
package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"shopadmin/internal/infra/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB はマイグレーション済みのインメモリSQLiteを返す。
// 接続は1本だけなので、トランザクション中は必ずtx側のrepoを使うこと。
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// 固定時刻の時計
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// 連番の注文番号（ORD-00000001, ORD-00000002 ...）
type SequenceOrderNumbers struct {
	mu sync.Mutex
	n  int
}

func (s *SequenceOrderNumbers) NewOrderNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("ORD-%08d", s.n)
}

// 常に同じ注文番号（重複のテスト用）
type StaticOrderNumber string

func (s StaticOrderNumber) NewOrderNumber() string { return string(s) }
