package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) ListActive(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Model(&model.Product{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Preload("Features", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Where("products.active = ?", true)

	if cat := strings.TrimSpace(q.Category); cat != "" && cat != "all" {
		tx = tx.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", cat)
	}

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where(
			"products.name ILIKE ? OR products.description ILIKE ? OR products.short_description ILIKE ?",
			like, like, like,
		)
	}

	switch q.Sort {
	case "price":
		tx = tx.Order("products.price asc")
	case "name":
		tx = tx.Order("products.name asc")
	case "popular":
		tx = tx.Order("products.popular desc").Order("products.featured desc")
	default:
		tx = tx.Order("products.featured desc").
			Order("products.popular desc").
			Order("products.created_at desc")
	}

	var products []model.Product
	if err := tx.Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) FindActiveBySlug(ctx context.Context, slug string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").Preload("Features").
		Where("slug = ? AND active = ?", slug, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// Decrements stock only while enough remains. RowsAffected == 0 means the
// guard failed and the caller must treat the line as out of stock.
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
