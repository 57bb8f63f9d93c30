package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CartGormRepository struct {
	db *gorm.DB
}

func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

func (r *CartGormRepository) ListByUserID(ctx context.Context, userID int64) ([]repo.CartLine, error) {
	var lines []repo.CartLine

	err := r.db.WithContext(ctx).Table("cart_items").
		Select(`cart_items.product_id,
			products.slug,
			products.name,
			products.price,
			cart_items.quantity,
			COALESCE(product_images.image_url, '') AS image_url`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Joins("LEFT JOIN product_images ON product_images.product_id = products.id AND product_images.is_primary = true").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.created_at desc").
		Scan(&lines).Error
	if err != nil {
		return []repo.CartLine{}, err
	}
	return lines, nil
}

func (r *CartGormRepository) FindItem(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// Upsert sets the (user, product) line to the given quantity, creating it
// when absent. The caller computes the clamped quantity first.
func (r *CartGormRepository) Upsert(ctx context.Context, userID int64, productID int64, quantity int64) error {
	if quantity < 1 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error

		if err == nil {
			return tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", quantity).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}).Error
	})
}

// Delete is idempotent: removing an absent line succeeds.
func (r *CartGormRepository) Delete(ctx context.Context, userID int64, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
}

func (r *CartGormRepository) ClearByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
