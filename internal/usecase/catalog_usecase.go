package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CatalogUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
}

func NewCatalogUsecase(products repo.ProductRepository, categories repo.CategoryRepository) *CatalogUsecase {
	return &CatalogUsecase{products: products, categories: categories}
}

// Public product shape. The slug doubles as the public id; numeric ids stay
// internal.
type ProductView struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Price            float64  `json:"price"`
	OriginalPrice    *float64 `json:"originalPrice,omitempty"`
	Discount         int      `json:"discount,omitempty"`
	Category         string   `json:"category"`
	Images           []string `json:"images"`
	Features         []string `json:"features"`
	Popular          bool     `json:"popular"`
	Limited          bool     `json:"limited"`
	Badge            string   `json:"badge,omitempty"`
	InStock          bool     `json:"inStock"`
	MaxQuantity      int64    `json:"maxQuantity"`
}

type ProductListOutput struct {
	Products   []ProductView `json:"products"`
	TotalCount int           `json:"totalCount"`
	Timestamp  time.Time     `json:"timestamp"`
}

type ListProductsInput struct {
	Category string
	Search   string
	Sort     string
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	// Unknown sort values fall back to the default featured ordering
	// instead of failing the request.
	products, err := u.products.ListActive(ctx, repo.ProductListQuery{
		Category: in.Category,
		Search:   in.Search,
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	categories, err := u.categories.ListActiveWithCounts(ctx)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	slugByID := make(map[int64]string, len(categories))
	for _, c := range categories {
		slugByID[c.ID] = c.Slug
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p, slugByID[p.CategoryID]))
	}

	return ProductListOutput{
		Products:   views,
		TotalCount: len(views),
		Timestamp:  time.Now(),
	}, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, slug string) (ProductView, error) {
	p, err := u.products.FindActiveBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductView{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	categorySlug := ""
	if c, err := u.categories.FindByID(ctx, p.CategoryID); err == nil {
		categorySlug = c.Slug
	}

	return toProductView(p, categorySlug), nil
}

type CategoryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int64  `json:"count"`
}

type CategoryListOutput struct {
	Categories []CategoryView `json:"categories"`
	Timestamp  time.Time      `json:"timestamp"`
}

// ListCategories prepends the synthetic "all" entry counting every active
// product.
func (u *CatalogUsecase) ListCategories(ctx context.Context) (CategoryListOutput, error) {
	categories, err := u.categories.ListActiveWithCounts(ctx)
	if err != nil {
		return CategoryListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var total int64
	views := make([]CategoryView, 0, len(categories)+1)
	for _, c := range categories {
		total += c.ProductCount
	}
	views = append(views, CategoryView{ID: "all", Name: "All Items", Icon: "🛍️", Count: total})
	for _, c := range categories {
		views = append(views, CategoryView{
			ID:    c.Slug,
			Name:  c.Name,
			Icon:  c.Icon,
			Count: c.ProductCount,
		})
	}

	return CategoryListOutput{Categories: views, Timestamp: time.Now()}, nil
}

func toProductView(p model.Product, categorySlug string) ProductView {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.ImageURL)
	}
	features := make([]string, 0, len(p.Features))
	for _, f := range p.Features {
		features = append(features, f.FeatureText)
	}

	return ProductView{
		ID:               p.Slug,
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		OriginalPrice:    p.OriginalPrice,
		Discount:         p.DiscountPercentage,
		Category:         categorySlug,
		Images:           images,
		Features:         features,
		Popular:          p.Popular,
		Limited:          p.LimitedEdition,
		Badge:            p.Badge,
		InStock:          p.InStock(),
		MaxQuantity:      p.MaxQuantityPerOrder,
	}
}
