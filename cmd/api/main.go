package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is a development convenience; in production the variables come
	// from the environment directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := run(sugar); err != nil {
		sugar.Fatalw("server exited", "error", err)
	}
}

func run(logger *zap.SugaredLogger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	if err := db.Seed(gormDB, cfg.AdminPassword); err != nil {
		return err
	}

	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	themeRepo := infraRepo.NewThemeGormRepository(gormDB)
	configRepo := infraRepo.NewServerConfigGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret)
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, productRepo, userRepo, cartRepo, orderRepo, orderItemRepo, logger)
	themeUC := usecase.NewThemeUsecase(themeRepo, auditRepo, logger)
	configUC := usecase.NewServerConfigUsecase(configRepo, auditRepo, logger)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	e := server.New(cfg, logger, server.Handlers{
		Auth:   handler.NewAuthHandler(authUC),
		Shop:   handler.NewShopHandler(catalogUC, orderUC),
		Cart:   handler.NewCartHandler(cartUC),
		Orders: handler.NewOrderHandler(orderUC),
		Admin:  handler.NewAdminHandler(themeUC, configUC, auditUC),
		Themes: handler.NewThemeHandler(themeUC),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infow("server starting", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Infow("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
