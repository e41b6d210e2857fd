package usecase

import (
	"context"
	"encoding/json"
	"time"

	"shopadmin/internal/domain/model"
	repo "shopadmin/internal/repository"
)

// 監査ログを1件書く。before/afterはJSONにして残す。
func writeAudit(
	ctx context.Context,
	logs repo.AuditLogRepository,
	actorUserID int64,
	action model.AuditAction,
	resource model.AuditResourceType,
	resourceID int64,
	before, after any,
	now time.Time,
) error {
	beforeJSON, err := marshalAudit(before)
	if err != nil {
		return err
	}
	afterJSON, err := marshalAudit(after)
	if err != nil {
		return err
	}
	return logs.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    now,
	})
}

func marshalAudit(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
