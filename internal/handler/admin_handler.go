package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

// Admin panel API: theme CRUD, game-server settings and the mutation trail.
// Everything here is behind AuthJWT + AdminRoleGuard.
type AdminHandler struct {
	themes  *usecase.ThemeUsecase
	configs *usecase.ServerConfigUsecase
	audit   *usecase.AuditLogUsecase
}

func NewAdminHandler(themes *usecase.ThemeUsecase, configs *usecase.ServerConfigUsecase, audit *usecase.AuditLogUsecase) *AdminHandler {
	return &AdminHandler{themes: themes, configs: configs, audit: audit}
}

type updateConfigRequest struct {
	Config map[string]string `json:"config"`
}

func (h *AdminHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/themes", h.listThemes)
	g.POST("/themes", h.createTheme)
	g.PUT("/themes/:id", h.updateTheme)
	g.DELETE("/themes/:id", h.deleteTheme)

	g.GET("/config", h.getConfig)
	g.PUT("/config", h.updateConfig)

	g.GET("/audit-logs", h.listAuditLogs)
}

func (h *AdminHandler) listThemes(c echo.Context) error {
	out, err := h.themes.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"themes": out, "timestamp": time.Now()})
}

func (h *AdminHandler) createTheme(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.ThemeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.themes.Create(c.Request().Context(), actorID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminHandler) updateTheme(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req usecase.ThemeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.themes.Update(c.Request().Context(), actorID, id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) deleteTheme(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.themes.Delete(c.Request().Context(), actorID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "theme deleted"})
}

func (h *AdminHandler) getConfig(c echo.Context) error {
	out, err := h.configs.GetAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) listAuditLogs(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	out, err := h.audit.List(c.Request().Context(), usecase.AuditLogQuery{
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resourceType"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) updateConfig(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req updateConfigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.configs.UpdateValues(c.Request().Context(), actorID, req.Config); err != nil {
		return writeError(c, err)
	}

	out, err := h.configs.GetAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
