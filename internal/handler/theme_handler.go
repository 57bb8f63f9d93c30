package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
)

// Public theme listing for the storefront's theme switcher.
type ThemeHandler struct {
	uc *usecase.ThemeUsecase
}

func NewThemeHandler(uc *usecase.ThemeUsecase) *ThemeHandler {
	return &ThemeHandler{uc: uc}
}

func (h *ThemeHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/themes", h.listActive)
}

func (h *ThemeHandler) listActive(c echo.Context) error {
	out, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"themes": out, "timestamp": time.Now()})
}
