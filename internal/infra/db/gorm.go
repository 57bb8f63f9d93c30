package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/domain/model"
)

// Connect opens the Postgres connection described by cfg.
func Connect(cfg config.Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser,
			cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
		)
	}

	// TranslateError maps unique violations onto gorm.ErrDuplicatedKey so the
	// repositories can surface conflicts as typed errors.
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate creates or updates the schema for every storefront table.
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductFeature{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Theme{},
		&model.ServerConfig{},
		&model.AuditLog{},
	)
}

// Close tears down the underlying sql.DB pool.
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
