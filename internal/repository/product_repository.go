package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ProductListQuery struct {
	// Category slug; empty or "all" means every category.
	Category string
	// Free text matched against name, description and short description.
	Search string
	// "price", "name", "popular" or empty for the default featured ordering.
	Sort string
}

type ProductRepository interface {
	// Active products only, images and features preloaded.
	ListActive(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindActiveBySlug(ctx context.Context, slug string) (model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
}

type InventoryRepository interface {
	// Conditional decrement: succeeds only while stock_quantity >= qty,
	// so concurrent orders cannot oversell.
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
