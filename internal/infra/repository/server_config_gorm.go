package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ServerConfigGormRepository struct {
	db *gorm.DB
}

func NewServerConfigGormRepository(db *gorm.DB) *ServerConfigGormRepository {
	return &ServerConfigGormRepository{db: db}
}

func (r *ServerConfigGormRepository) ListAll(ctx context.Context) ([]model.ServerConfig, error) {
	var configs []model.ServerConfig
	if err := r.db.WithContext(ctx).Order("key asc").Find(&configs).Error; err != nil {
		return []model.ServerConfig{}, err
	}
	return configs, nil
}

func (r *ServerConfigGormRepository) FindByKey(ctx context.Context, key string) (model.ServerConfig, error) {
	var c model.ServerConfig
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ServerConfig{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ServerConfig{}, err
	}
	return c, nil
}

func (r *ServerConfigGormRepository) UpdateValue(ctx context.Context, key string, value string) error {
	res := r.db.WithContext(ctx).Model(&model.ServerConfig{}).
		Where("key = ?", key).
		Update("value", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
