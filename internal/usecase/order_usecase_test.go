package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
)

// =====================
// Mocks
// =====================

type OrdProductRepoMock struct{ mock.Mock }

func (m *OrdProductRepoMock) ListActive(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdProductRepoMock) FindActiveBySlug(ctx context.Context, slug string) (model.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *OrdProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	panic("not used in OrderUsecase tests")
}

type OrdInventoryRepoMock struct{ mock.Mock }

func (m *OrdInventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

type OrdUserRepoMock struct{ mock.Mock }

func (m *OrdUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (model.User, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) ExistsWithUsernameOrEmail(ctx context.Context, username string, email string, excludeID int64) (bool, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) UpdateProfile(ctx context.Context, userID int64, username string, email string, rustUsername string) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) TouchLastLogin(ctx context.Context, userID int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) AddSpendAndPoints(ctx context.Context, userID int64, amount float64, points int64) error {
	args := m.Called(ctx, userID, amount, points)
	return args.Error(0)
}

type OrdCartRepoMock struct{ mock.Mock }

func (m *OrdCartRepoMock) ListByUserID(ctx context.Context, userID int64) ([]repo.CartLine, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCartRepoMock) FindItem(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCartRepoMock) Upsert(ctx context.Context, userID int64, productID int64, quantity int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCartRepoMock) Delete(ctx context.Context, userID int64, productID int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCartRepoMock) ClearByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type OrdOrderRepoMock struct{ mock.Mock }

func (m *OrdOrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrdOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrdOrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

type OrdOrderItemRepoMock struct{ mock.Mock }

func (m *OrdOrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrdOrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

// TxRepos / TransactionManager stubs that run fn against the mocks directly.

type ordTxRepos struct {
	orders     *OrdOrderRepoMock
	orderItems *OrdOrderItemRepoMock
	inventory  *OrdInventoryRepoMock
}

func (r *ordTxRepos) Orders() repo.OrderRepository         { return r.orders }
func (r *ordTxRepos) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *ordTxRepos) Inventory() repo.InventoryRepository  { return r.inventory }

type ordTxManager struct {
	repos *ordTxRepos
	calls int
}

func (m *ordTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.calls++
	return fn(m.repos)
}

// =====================
// Fixture
// =====================

type orderFixture struct {
	products   *OrdProductRepoMock
	inventory  *OrdInventoryRepoMock
	users      *OrdUserRepoMock
	carts      *OrdCartRepoMock
	orders     *OrdOrderRepoMock
	orderItems *OrdOrderItemRepoMock
	tx         *ordTxManager
	uc         *usecase.OrderUsecase
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		products:   new(OrdProductRepoMock),
		inventory:  new(OrdInventoryRepoMock),
		users:      new(OrdUserRepoMock),
		carts:      new(OrdCartRepoMock),
		orders:     new(OrdOrderRepoMock),
		orderItems: new(OrdOrderItemRepoMock),
	}
	f.tx = &ordTxManager{repos: &ordTxRepos{
		orders:     f.orders,
		orderItems: f.orderItems,
		inventory:  f.inventory,
	}}
	f.uc = usecase.NewOrderUsecase(
		f.tx, f.products, f.users, f.carts, f.orders, f.orderItems,
		zap.NewNop().Sugar(),
	)
	return f
}

func starterKit() model.Product {
	return model.Product{
		ID:                  2,
		Slug:                "starter-kit",
		Name:                "Starter Kit",
		Price:               4.99,
		StockQuantity:       50,
		MaxQuantityPerOrder: 3,
		Active:              true,
	}
}

func vipMonthly() model.Product {
	return model.Product{
		ID:                  1,
		Slug:                "vip-monthly",
		Name:                "VIP Monthly",
		Price:               9.99,
		StockQuantity:       100,
		MaxQuantityPerOrder: 99,
		Active:              true,
	}
}

func guestOrder(items ...usecase.OrderLineInput) usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		Items:         items,
		CustomerInfo:  usecase.CustomerInfo{Email: "buyer@example.com", Username: "SurvivorDave"},
		PaymentMethod: "card",
	}
}

// =====================
// Validation
// =====================

func TestPlaceOrder_EmptyItems(t *testing.T) {
	f := newOrderFixture()

	_, err := f.uc.PlaceOrder(context.Background(), guestOrder())

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestPlaceOrder_MissingCustomerInfo(t *testing.T) {
	f := newOrderFixture()

	in := guestOrder(usecase.OrderLineInput{ID: "starter-kit", Quantity: 1})
	in.CustomerInfo.Email = "  "

	_, err := f.uc.PlaceOrder(context.Background(), in)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, 0, f.tx.calls)
}

// =====================
// Price authority and totals
// =====================

func TestPlaceOrder_TotalsComeFromCatalog(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.products.On("FindActiveBySlug", mock.Anything, "starter-kit").Return(starterKit(), nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(2)).Return(true, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(41), nil)
	f.orderItems.On("CreateBulk", mock.Anything, int64(41), mock.Anything).Return(nil)

	out, err := f.uc.PlaceOrder(ctx, guestOrder(usecase.OrderLineInput{ID: "starter-kit", Quantity: 2}))
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, 9.98, out.Order.Total)
	require.Len(t, out.Order.Items, 1)
	assert.Equal(t, 4.99, out.Order.Items[0].Price)
	assert.Equal(t, 9.98, out.Order.Items[0].TotalPrice)
	assert.Equal(t, "Starter Kit", out.Order.Items[0].ProductName)
	assert.True(t, strings.HasPrefix(out.Order.OrderNumber, "RB"))
	assert.Equal(t, "completed", out.Order.Status)
	assert.Equal(t, "paid", out.Order.PaymentStatus)
}

func TestPlaceOrder_ClampsToMaxPerOrder(t *testing.T) {
	f := newOrderFixture()

	f.products.On("FindActiveBySlug", mock.Anything, "starter-kit").Return(starterKit(), nil)
	// Clamped to 3 before the decrement.
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(3)).Return(true, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(42), nil)
	f.orderItems.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(nil)

	out, err := f.uc.PlaceOrder(context.Background(), guestOrder(usecase.OrderLineInput{ID: "starter-kit", Quantity: 10}))
	require.NoError(t, err)

	require.Len(t, out.Order.Items, 1)
	assert.Equal(t, int64(3), out.Order.Items[0].Quantity)
	f.inventory.AssertExpectations(t)
}

// =====================
// Dropping
// =====================

func TestPlaceOrder_DropsUnknownAndOutOfStockLines(t *testing.T) {
	f := newOrderFixture()

	soldOut := starterKit()
	soldOut.ID = 3
	soldOut.Slug = "raid-kit"
	soldOut.StockQuantity = 0

	f.products.On("FindActiveBySlug", mock.Anything, "vip-monthly").Return(vipMonthly(), nil)
	f.products.On("FindActiveBySlug", mock.Anything, "deleted-item").Return(model.Product{}, repo.ErrNotFound)
	f.products.On("FindActiveBySlug", mock.Anything, "raid-kit").Return(soldOut, nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(1)).Return(true, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(43), nil)
	f.orderItems.On("CreateBulk", mock.Anything, int64(43), mock.Anything).Return(nil)

	out, err := f.uc.PlaceOrder(context.Background(), guestOrder(
		usecase.OrderLineInput{ID: "vip-monthly", Quantity: 1},
		usecase.OrderLineInput{ID: "deleted-item", Quantity: 1},
		usecase.OrderLineInput{ID: "raid-kit", Quantity: 2},
	))
	require.NoError(t, err)

	require.Len(t, out.Order.Items, 1)
	assert.Equal(t, 9.99, out.Order.Total)

	require.Len(t, out.DroppedItems, 2)
	assert.Equal(t, 1, out.DroppedItems[0].Index)
	assert.Equal(t, "deleted-item", out.DroppedItems[0].ID)
	assert.Equal(t, "product unavailable", out.DroppedItems[0].Reason)
	assert.Equal(t, 2, out.DroppedItems[1].Index)
	assert.Equal(t, "out of stock", out.DroppedItems[1].Reason)
}

func TestPlaceOrder_AllLinesDropped(t *testing.T) {
	f := newOrderFixture()

	f.products.On("FindActiveBySlug", mock.Anything, "gone").Return(model.Product{}, repo.ErrNotFound)

	_, err := f.uc.PlaceOrder(context.Background(), guestOrder(usecase.OrderLineInput{ID: "gone", Quantity: 1}))

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "no valid items in order", he.Message)
	assert.Equal(t, 0, f.tx.calls)
}

func TestPlaceOrder_CatalogReadFailureAborts(t *testing.T) {
	f := newOrderFixture()

	// A failing read is not a missing product; it must not feed the drop
	// policy.
	f.products.On("FindActiveBySlug", mock.Anything, "starter-kit").Return(model.Product{}, assert.AnError)

	_, err := f.uc.PlaceOrder(context.Background(), guestOrder(usecase.OrderLineInput{ID: "starter-kit", Quantity: 1}))

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 500, he.Status)
	assert.Equal(t, 0, f.tx.calls)
}

func TestPlaceOrder_LineLosingStockRaceIsDropped(t *testing.T) {
	f := newOrderFixture()

	f.products.On("FindActiveBySlug", mock.Anything, "vip-monthly").Return(vipMonthly(), nil)
	f.products.On("FindActiveBySlug", mock.Anything, "starter-kit").Return(starterKit(), nil)
	// vip-monthly wins the race, starter-kit loses it.
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(1)).Return(true, nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(1)).Return(false, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(44), nil)
	f.orderItems.On("CreateBulk", mock.Anything, int64(44), mock.Anything).Return(nil)

	out, err := f.uc.PlaceOrder(context.Background(), guestOrder(
		usecase.OrderLineInput{ID: "vip-monthly", Quantity: 1},
		usecase.OrderLineInput{ID: "starter-kit", Quantity: 1},
	))
	require.NoError(t, err)

	require.Len(t, out.Order.Items, 1)
	assert.Equal(t, int64(1), out.Order.Items[0].ProductID)
	require.Len(t, out.DroppedItems, 1)
	assert.Equal(t, "starter-kit", out.DroppedItems[0].ID)
	assert.Equal(t, "out of stock", out.DroppedItems[0].Reason)
}

func TestPlaceOrder_EveryLineLosesStockRace(t *testing.T) {
	f := newOrderFixture()

	f.products.On("FindActiveBySlug", mock.Anything, "starter-kit").Return(starterKit(), nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(1)).Return(false, nil)

	_, err := f.uc.PlaceOrder(context.Background(), guestOrder(usecase.OrderLineInput{ID: "starter-kit", Quantity: 1}))

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "no valid items in order", he.Message)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// Loyalty and cart cleanup
// =====================

func TestPlaceOrder_AuthenticatedAccruesLoyaltyAndClearsCart(t *testing.T) {
	f := newOrderFixture()

	f.products.On("FindActiveBySlug", mock.Anything, "starter-kit").Return(starterKit(), nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(2)).Return(true, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(45), nil)
	f.orderItems.On("CreateBulk", mock.Anything, int64(45), mock.Anything).Return(nil)

	// floor(9.98) = 9 points
	f.users.On("AddSpendAndPoints", mock.Anything, int64(7), 9.98, int64(9)).Return(nil)
	f.carts.On("ClearByUserID", mock.Anything, int64(7)).Return(nil)

	in := guestOrder(usecase.OrderLineInput{ID: "starter-kit", Quantity: 2})
	in.UserID = 7

	out, err := f.uc.PlaceOrder(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, out.Success)

	f.users.AssertExpectations(t)
	f.carts.AssertExpectations(t)
}

func TestPlaceOrder_GuestSkipsLoyalty(t *testing.T) {
	f := newOrderFixture()

	f.products.On("FindActiveBySlug", mock.Anything, "starter-kit").Return(starterKit(), nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(1)).Return(true, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(46), nil)
	f.orderItems.On("CreateBulk", mock.Anything, int64(46), mock.Anything).Return(nil)

	_, err := f.uc.PlaceOrder(context.Background(), guestOrder(usecase.OrderLineInput{ID: "starter-kit", Quantity: 1}))
	require.NoError(t, err)

	f.users.AssertNotCalled(t, "AddSpendAndPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.carts.AssertNotCalled(t, "ClearByUserID", mock.Anything, mock.Anything)
}

func TestPlaceOrder_LoyaltyFailureDoesNotFailOrder(t *testing.T) {
	f := newOrderFixture()

	f.products.On("FindActiveBySlug", mock.Anything, "starter-kit").Return(starterKit(), nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(1)).Return(true, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(47), nil)
	f.orderItems.On("CreateBulk", mock.Anything, int64(47), mock.Anything).Return(nil)
	f.users.On("AddSpendAndPoints", mock.Anything, int64(7), 4.99, int64(4)).Return(assert.AnError)
	f.carts.On("ClearByUserID", mock.Anything, int64(7)).Return(nil)

	in := guestOrder(usecase.OrderLineInput{ID: "starter-kit", Quantity: 1})
	in.UserID = 7

	out, err := f.uc.PlaceOrder(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, out.Success)
}

// =====================
// Order number collision
// =====================

func TestPlaceOrder_RetriesOnOrderNumberConflict(t *testing.T) {
	f := newOrderFixture()

	f.products.On("FindActiveBySlug", mock.Anything, "starter-kit").Return(starterKit(), nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(1)).Return(true, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(0), repo.ErrConflict).Once()
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(48), nil).Once()
	f.orderItems.On("CreateBulk", mock.Anything, int64(48), mock.Anything).Return(nil)

	out, err := f.uc.PlaceOrder(context.Background(), guestOrder(usecase.OrderLineInput{ID: "starter-kit", Quantity: 1}))
	require.NoError(t, err)

	assert.Equal(t, int64(48), out.Order.ID)
	assert.Equal(t, 2, f.tx.calls)
}

// =====================
// History
// =====================

func TestListMyOrders_BuildsItemsSummary(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("ListByUserID", mock.Anything, int64(7)).Return([]model.Order{
		{ID: 50, OrderNumber: "RB1700000000000123", TotalAmount: 19.97, Status: model.OrderStatusCompleted, PaymentStatus: model.PaymentStatusPaid, DeliveryStatus: model.DeliveryStatusPending},
	}, nil)
	f.orderItems.On("ListByOrderID", mock.Anything, int64(50)).Return([]model.OrderItem{
		{ProductName: "VIP Monthly", Quantity: 1},
		{ProductName: "Starter Kit", Quantity: 2},
	}, nil)

	out, err := f.uc.ListMyOrders(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, out.Orders, 1)
	assert.Equal(t, "VIP Monthly x1, Starter Kit x2", out.Orders[0].ItemsSummary)
	assert.Equal(t, 19.97, out.Orders[0].Total)
}

func TestGetMyOrder_ReturnsLines(t *testing.T) {
	f := newOrderFixture()

	userID := int64(7)
	f.orders.On("FindByID", mock.Anything, int64(50)).Return(model.Order{
		ID:             50,
		UserID:         &userID,
		OrderNumber:    "RB1700000000000123",
		TotalAmount:    19.97,
		Status:         model.OrderStatusCompleted,
		PaymentStatus:  model.PaymentStatusPaid,
		DeliveryStatus: model.DeliveryStatusPending,
		CustomerEmail:  "buyer@example.com",
	}, nil)
	f.orderItems.On("ListByOrderID", mock.Anything, int64(50)).Return([]model.OrderItem{
		{ProductID: 1, ProductName: "VIP Monthly", ProductPrice: 9.99, Quantity: 2, TotalPrice: 19.98},
	}, nil)

	out, err := f.uc.GetMyOrder(context.Background(), 7, 50)
	require.NoError(t, err)

	assert.Equal(t, "RB1700000000000123", out.OrderNumber)
	assert.Equal(t, 19.97, out.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "VIP Monthly", out.Items[0].ProductName)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
}

func TestGetMyOrder_NotFound(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := f.uc.GetMyOrder(context.Background(), 7, 99)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestGetMyOrder_SomeoneElsesOrderAnswers404(t *testing.T) {
	f := newOrderFixture()

	otherUser := int64(8)
	f.orders.On("FindByID", mock.Anything, int64(50)).Return(model.Order{ID: 50, UserID: &otherUser}, nil)

	_, err := f.uc.GetMyOrder(context.Background(), 7, 50)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 404, he.Status)
	f.orderItems.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestGetMyOrder_GuestOrderAnswers404(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("FindByID", mock.Anything, int64(51)).Return(model.Order{ID: 51, GuestSessionID: "abc"}, nil)

	_, err := f.uc.GetMyOrder(context.Background(), 7, 51)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 404, he.Status)
}
