package repository

import (
	"context"

	"shopadmin/internal/domain/model"
	repo "shopadmin/internal/repository"

	"gorm.io/gorm"
)

// limit未指定のときの件数
const defaultAuditLogLimit = 50

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// 操作と同じtxで書く（txが失敗すればログも残らない）
func (r *AuditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	return translateError(r.db.WithContext(ctx).Create(&entry).Error)
}

func (r *AuditLogGormRepository) List(ctx context.Context, q repo.AuditLogQuery) ([]model.AuditLog, error) {
	tx := r.db.WithContext(ctx).Model(&model.AuditLog{})

	if q.ActorUserID != nil {
		tx = tx.Where("actor_user_id = ?", *q.ActorUserID)
	}
	if q.Action != nil {
		tx = tx.Where("action = ?", *q.Action)
	}
	if q.ResourceType != nil {
		tx = tx.Where("resource_type = ?", *q.ResourceType)
	}
	if q.ResourceID != nil {
		tx = tx.Where("resource_id = ?", *q.ResourceID)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultAuditLogLimit
	}

	var entries []model.AuditLog
	err := tx.Order("created_at DESC").Order("id DESC").
		Offset(q.Offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
