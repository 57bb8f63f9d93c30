package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront/internal/config"
	"storefront/internal/handler"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Shop   *handler.ShopHandler
	Cart   *handler.CartHandler
	Orders *handler.OrderHandler
	Admin  *handler.AdminHandler
	Themes *handler.ThemeHandler
}

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	api := e.Group("/api")

	api.GET("/health", health)

	h.Auth.RegisterRoutes(api, cfg)
	h.Shop.RegisterRoutes(api, cfg)
	h.Cart.RegisterRoutes(api, cfg)
	h.Orders.RegisterRoutes(api, cfg)
	h.Admin.RegisterRoutes(api, cfg)
	h.Themes.RegisterRoutes(api)
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
	})
}
