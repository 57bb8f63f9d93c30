package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ThemeGormRepository struct {
	db *gorm.DB
}

func NewThemeGormRepository(db *gorm.DB) *ThemeGormRepository {
	return &ThemeGormRepository{db: db}
}

func (r *ThemeGormRepository) ListActive(ctx context.Context) ([]model.Theme, error) {
	var themes []model.Theme
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&themes).Error
	if err != nil {
		return []model.Theme{}, err
	}
	return themes, nil
}

func (r *ThemeGormRepository) ListAll(ctx context.Context) ([]model.Theme, error) {
	var themes []model.Theme
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&themes).Error
	if err != nil {
		return []model.Theme{}, err
	}
	return themes, nil
}

func (r *ThemeGormRepository) FindByID(ctx context.Context, id int64) (model.Theme, error) {
	var t model.Theme
	err := r.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Theme{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Theme{}, err
	}
	return t, nil
}

func (r *ThemeGormRepository) Create(ctx context.Context, theme model.Theme) (int64, error) {
	err := r.db.WithContext(ctx).Create(&theme).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, repo.ErrConflict
	}
	if err != nil {
		return 0, err
	}
	return theme.ID, nil
}

func (r *ThemeGormRepository) Update(ctx context.Context, theme model.Theme) error {
	res := r.db.WithContext(ctx).Model(&model.Theme{}).
		Where("id = ?", theme.ID).
		Updates(map[string]interface{}{
			"name":          theme.Name,
			"slug":          theme.Slug,
			"description":   theme.Description,
			"css_variables": theme.CSSVariables,
			"is_active":     theme.IsActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ThemeGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Theme{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
