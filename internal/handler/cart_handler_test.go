package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
)

type cartRepoMock struct{ mock.Mock }

func (m *cartRepoMock) ListByUserID(ctx context.Context, userID int64) ([]repo.CartLine, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]repo.CartLine)
	return lines, args.Error(1)
}

func (m *cartRepoMock) FindItem(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *cartRepoMock) Upsert(ctx context.Context, userID int64, productID int64, quantity int64) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *cartRepoMock) Delete(ctx context.Context, userID int64, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *cartRepoMock) ClearByUserID(ctx context.Context, userID int64) error {
	panic("not used in CartHandler tests")
}

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) ListActive(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	panic("not used in CartHandler tests")
}

func (m *productRepoMock) FindActiveBySlug(ctx context.Context, slug string) (model.Product, error) {
	panic("not used in CartHandler tests")
}

func (m *productRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func newCartServer(carts *cartRepoMock, products *productRepoMock) (*echo.Echo, config.Config) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := echo.New()
	api := e.Group("/api")
	handler.NewCartHandler(usecase.NewCartUsecase(carts, products)).RegisterRoutes(api, cfg)
	return e, cfg
}

func bearerFor(t *testing.T, userID int64) string {
	t.Helper()
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"username": "SurvivorDave",
		"email":    "dave@example.com",
		"role":     "user",
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestCartRoutes_RequireAuth(t *testing.T) {
	e, _ := newCartServer(new(cartRepoMock), new(productRepoMock))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCart_ReturnsLines(t *testing.T) {
	carts := new(cartRepoMock)
	e, _ := newCartServer(carts, new(productRepoMock))

	carts.On("ListByUserID", mock.Anything, int64(7)).Return([]repo.CartLine{
		{ProductID: 2, Slug: "starter-kit", Name: "Starter Kit", Price: 4.99, Quantity: 2},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", bearerFor(t, 7))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		CartItems []struct {
			Slug     string  `json:"slug"`
			Price    float64 `json:"price"`
			Quantity int64   `json:"quantity"`
		} `json:"cartItems"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.CartItems, 1)
	assert.Equal(t, "starter-kit", body.CartItems[0].Slug)
	assert.Equal(t, 4.99, body.CartItems[0].Price)
}

func TestAddToCart_ReturnsReconciledCart(t *testing.T) {
	carts := new(cartRepoMock)
	products := new(productRepoMock)
	e, _ := newCartServer(carts, products)

	products.On("FindByID", mock.Anything, int64(2)).Return(model.Product{
		ID: 2, Slug: "starter-kit", Name: "Starter Kit", Price: 4.99,
		StockQuantity: 50, MaxQuantityPerOrder: 3, Active: true,
	}, nil)
	carts.On("FindItem", mock.Anything, int64(7), int64(2)).Return(model.CartItem{}, repo.ErrNotFound)
	carts.On("Upsert", mock.Anything, int64(7), int64(2), int64(1)).Return(nil)
	carts.On("ListByUserID", mock.Anything, int64(7)).Return([]repo.CartLine{
		{ProductID: 2, Slug: "starter-kit", Name: "Starter Kit", Price: 4.99, Quantity: 1},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"productId":2,"quantity":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", bearerFor(t, 7))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	carts.AssertExpectations(t)
}

func TestDeleteCartItem_Idempotent(t *testing.T) {
	carts := new(cartRepoMock)
	e, _ := newCartServer(carts, new(productRepoMock))

	carts.On("Delete", mock.Anything, int64(7), int64(2)).Return(nil)
	carts.On("ListByUserID", mock.Anything, int64(7)).Return([]repo.CartLine{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/2", nil)
	req.Header.Set("Authorization", bearerFor(t, 7))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
