package usecase

import (
	"context"

	"shopadmin/internal/domain/model"
	repo "shopadmin/internal/repository"
)

const maxAuditLogLimit = 200

type AuditLogUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditLogUsecase(logs repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs}
}

type ListAuditLogsInput struct {
	ActorUserID  *int64
	Action       string
	ResourceType string
	ResourceID   *int64
	Limit        int // 0なら50
	Offset       int
}

// 新しい順
func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if in.Offset < 0 {
		return nil, NewValidationError("offset must be >= 0")
	}
	if in.Limit < 0 || in.Limit > maxAuditLogLimit {
		return nil, NewValidationError("limit must be between 1 and 200")
	}

	q := repo.AuditLogQuery{
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		q.Action = &a
	}
	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		q.ResourceType = &rt
	}

	logs, err := u.logs.List(ctx, q)
	if err != nil {
		return nil, newInternalError()
	}
	return logs, nil
}
