package repository

import (
	"context"

	"shopadmin/internal/domain/model"
)

// GET /audit-logs の絞り込み（nilは条件なし）
type AuditLogQuery struct {
	ActorUserID  *int64
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	Limit        int
	Offset       int
}

// 監査ログは追記のみ。更新・削除はしない。
type AuditLogRepository interface {
	Create(ctx context.Context, entry model.AuditLog) error
	// 新しい順
	List(ctx context.Context, q AuditLogQuery) ([]model.AuditLog, error)
}
