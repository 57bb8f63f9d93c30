package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

// Public storefront API: catalog browsing and checkout.
type ShopHandler struct {
	catalog *usecase.CatalogUsecase
	orders  *usecase.OrderUsecase
}

func NewShopHandler(catalog *usecase.CatalogUsecase, orders *usecase.OrderUsecase) *ShopHandler {
	return &ShopHandler{catalog: catalog, orders: orders}
}

type placeOrderRequest struct {
	Items         []usecase.OrderLineInput `json:"items"`
	CustomerInfo  usecase.CustomerInfo     `json:"customerInfo"`
	PaymentMethod string                   `json:"paymentMethod"`
}

func (h *ShopHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/shop")

	g.GET("/products", h.listProducts)
	g.GET("/products/:slug", h.getProduct)
	g.GET("/categories", h.listCategories)

	// Checkout works for guests too; a valid token attaches the order to the
	// account and triggers loyalty accrual.
	g.POST("/orders", h.placeOrder, middleware.OptionalAuthJWT(cfg))
}

func (h *ShopHandler) listProducts(c echo.Context) error {
	out, err := h.catalog.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) getProduct(c echo.Context) error {
	out, err := h.catalog.GetProduct(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) listCategories(c echo.Context) error {
	out, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) placeOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userID, _ := getUserIDFromContext(c)

	out, err := h.orders.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		Items:         req.Items,
		CustomerInfo:  req.CustomerInfo,
		PaymentMethod: req.PaymentMethod,
		UserID:        userID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
