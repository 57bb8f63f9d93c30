package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) ListActiveWithCounts(ctx context.Context) ([]repo.CategoryWithCount, error) {
	var rows []struct {
		model.Category
		ProductCount int64
	}

	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("categories.*, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id AND products.active = true").
		Where("categories.active = ?", true).
		Group("categories.id").
		Order("categories.sort_order asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]repo.CategoryWithCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, repo.CategoryWithCount{
			Category:     row.Category,
			ProductCount: row.ProductCount,
		})
	}
	return out, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}
