package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ServerConfigRepository interface {
	ListAll(ctx context.Context) ([]model.ServerConfig, error)
	FindByKey(ctx context.Context, key string) (model.ServerConfig, error)
	// Updates an existing key; unknown keys are ErrNotFound, never inserted.
	UpdateValue(ctx context.Context, key string, value string) error
}
