package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	repo "storefront/internal/repository"
)

// Server side of the cart reconciler. Guest carts live entirely in client
// storage; after login the server cart is authoritative and the client
// replaces its working copy with it. No merge happens here.
type CartUsecase struct {
	carts    repo.CartRepository
	products repo.ProductRepository
}

func NewCartUsecase(carts repo.CartRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{carts: carts, products: products}
}

type CartLineView struct {
	ID       int64   `json:"id"`
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

type CartOutput struct {
	CartItems []CartLineView `json:"cartItems"`
	Timestamp time.Time      `json:"timestamp"`
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	lines, err := u.carts.ListByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]CartLineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, CartLineView{
			ID:       l.ProductID,
			Slug:     l.Slug,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Image:    l.ImageURL,
		})
	}

	return CartOutput{CartItems: views, Timestamp: time.Now()}, nil
}

// AddItem increments the line for the product, clamped to the product's
// max-per-order. Exceeding the cap is not an error; the quantity is
// silently clamped.
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, productID int64, quantity int64) error {
	if productID <= 0 || quantity < 1 {
		return NewHTTPError(http.StatusBadRequest, "invalid product ID or quantity")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusBadRequest, "invalid product ID or quantity")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.Active {
		return NewHTTPError(http.StatusBadRequest, "invalid product ID or quantity")
	}

	var existing int64
	if item, err := u.carts.FindItem(ctx, userID, productID); err == nil {
		existing = item.Quantity
	} else if !errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	newQty := clampQuantity(existing+quantity, p.MaxQuantityPerOrder)
	if err := u.carts.Upsert(ctx, userID, productID, newQty); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SetQuantity with qty <= 0 removes the line, mirroring RemoveItem.
func (u *CartUsecase) SetQuantity(ctx context.Context, userID int64, productID int64, quantity int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product ID or quantity")
	}

	if quantity <= 0 {
		return u.RemoveItem(ctx, userID, productID)
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusBadRequest, "invalid product ID or quantity")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.carts.Upsert(ctx, userID, productID, clampQuantity(quantity, p.MaxQuantityPerOrder))
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// RemoveItem is idempotent: removing an absent line is a no-op.
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, productID int64) error {
	if err := u.carts.Delete(ctx, userID, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func clampQuantity(qty int64, max int64) int64 {
	if max > 0 && qty > max {
		return max
	}
	return qty
}
