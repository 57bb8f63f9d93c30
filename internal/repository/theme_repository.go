package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ThemeRepository interface {
	ListActive(ctx context.Context) ([]model.Theme, error)
	ListAll(ctx context.Context) ([]model.Theme, error)
	FindByID(ctx context.Context, id int64) (model.Theme, error)
	Create(ctx context.Context, theme model.Theme) (int64, error)
	Update(ctx context.Context, theme model.Theme) error
	Delete(ctx context.Context, id int64) error
}
