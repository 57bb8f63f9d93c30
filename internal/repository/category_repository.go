package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CategoryWithCount struct {
	model.Category
	ProductCount int64
}

type CategoryRepository interface {
	// Active categories in sort order, each with its active product count.
	ListActiveWithCounts(ctx context.Context) ([]CategoryWithCount, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
}
