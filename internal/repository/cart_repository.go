package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// Cart line joined with live catalog data for display.
type CartLine struct {
	ProductID int64
	Slug      string
	Name      string
	Price     float64
	Quantity  int64
	ImageURL  string
}

type CartRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]CartLine, error)
	FindItem(ctx context.Context, userID int64, productID int64) (model.CartItem, error)
	// Insert the (user, product) line or set it to the given quantity.
	Upsert(ctx context.Context, userID int64, productID int64, quantity int64) error
	// Idempotent: deleting an absent line is not an error.
	Delete(ctx context.Context, userID int64, productID int64) error
	ClearByUserID(ctx context.Context, userID int64) error
}
