package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}

func (r *AuditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	tx := r.db.WithContext(ctx).Model(&model.AuditLog{})

	if filter.ActorUserID != nil {
		tx = tx.Where("actor_user_id = ?", *filter.ActorUserID)
	}
	if filter.Action != nil {
		tx = tx.Where("action = ?", *filter.Action)
	}
	if filter.ResourceType != nil {
		tx = tx.Where("resource_type = ?", *filter.ResourceType)
	}
	if filter.ResourceID != nil {
		tx = tx.Where("resource_id = ?", *filter.ResourceID)
	}
	if filter.CreatedFrom != nil {
		tx = tx.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		tx = tx.Where("created_at <= ?", *filter.CreatedTo)
	}

	tx = tx.Order("created_at desc")
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}

	var logs []model.AuditLog
	if err := tx.Find(&logs).Error; err != nil {
		return []model.AuditLog{}, err
	}
	return logs, nil
}
