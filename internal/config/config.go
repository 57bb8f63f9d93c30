package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the whole application configuration, loaded from environment
// variables.
type Config struct {
	Port string `env:"PORT" envDefault:"3001"`

	// DATABASE_URL wins when set; the POSTGRES_* parts are the fallback.
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"storefront"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	JWTSecret string `env:"JWT_SECRET"`

	// Password for the seeded admin account.
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`

	GoEnv string `env:"GO_ENV" envDefault:"development"`
	FEURL string `env:"FE_URL" envDefault:"http://localhost:5173"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
