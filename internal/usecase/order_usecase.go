package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// How many times a placement is retried when the generated order number
// collides with an existing one. Collisions need the same millisecond and
// the same random suffix, so one retry is normally enough.
const orderNumberAttempts = 3

const deliveryWindow = 5 * time.Minute

type OrderUsecase struct {
	tx         repo.TransactionManager
	products   repo.ProductRepository
	users      repo.UserRepository
	carts      repo.CartRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	logger     *zap.SugaredLogger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	users repo.UserRepository,
	carts repo.CartRepository,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	logger *zap.SugaredLogger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		products:   products,
		users:      users,
		carts:      carts,
		orders:     orders,
		orderItems: orderItems,
		logger:     logger,
	}
}

type OrderLineInput struct {
	ID       string `json:"id"` // product slug
	Quantity int64  `json:"quantity"`
}

type CustomerInfo struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type PlaceOrderInput struct {
	Items         []OrderLineInput
	CustomerInfo  CustomerInfo
	PaymentMethod string
	// Authenticated caller, or 0 for guest checkout.
	UserID int64
}

type OrderItemView struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"productPrice"`
	Quantity    int64   `json:"quantity"`
	TotalPrice  float64 `json:"totalPrice"`
}

// A cart line that did not make it into the order, with the reason why.
// Dropping instead of failing is deliberate; reporting the drops is how the
// caller finds out.
type DroppedItem struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type PlacedOrder struct {
	ID                int64           `json:"id"`
	OrderNumber       string          `json:"orderNumber"`
	Items             []OrderItemView `json:"items"`
	CustomerInfo      CustomerInfo    `json:"customerInfo"`
	Total             float64         `json:"total"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"paymentStatus"`
	DeliveryStatus    string          `json:"deliveryStatus"`
	CreatedAt         time.Time       `json:"createdAt"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
}

type PlaceOrderOutput struct {
	Success      bool          `json:"success"`
	Order        PlacedOrder   `json:"order"`
	DroppedItems []DroppedItem `json:"droppedItems,omitempty"`
	Message      string        `json:"message"`
}

type resolvedLine struct {
	index    int
	product  model.Product
	quantity int64
}

var errEmptyOrder = errors.New("no valid items in order")

// PlaceOrder converts a cart snapshot into a durable order. Prices and stock
// are re-resolved from the catalog; client-submitted prices are never read.
// Unavailable lines are dropped and reported, never errored, unless nothing
// survives. Header, lines and stock decrements commit as one transaction.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if len(in.Items) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order data")
	}
	if strings.TrimSpace(in.CustomerInfo.Email) == "" || strings.TrimSpace(in.CustomerInfo.Username) == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order data")
	}

	resolved, dropped, err := u.resolveLines(ctx, in.Items)
	if err != nil {
		return PlaceOrderOutput{}, err
	}
	if len(resolved) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "no valid items in order")
	}

	var out PlaceOrderOutput
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		out, err = u.placeOnce(ctx, in, resolved, dropped)
		if errors.Is(err, repo.ErrConflict) {
			continue
		}
		break
	}
	if errors.Is(err, errEmptyOrder) {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "no valid items in order")
	}
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return PlaceOrderOutput{}, err
		}
		return PlaceOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to create order")
	}

	// Post-commit bookkeeping for authenticated orders. Failures here are
	// eventually-consistent cleanup, logged and never rolled back.
	if in.UserID > 0 {
		total := out.Order.Total
		if err := u.users.AddSpendAndPoints(ctx, in.UserID, total, int64(math.Floor(total))); err != nil {
			u.logger.Errorw("loyalty accrual failed after order commit",
				"order", out.Order.OrderNumber, "user", in.UserID, "error", err)
		}
		if err := u.carts.ClearByUserID(ctx, in.UserID); err != nil {
			u.logger.Errorw("cart clear failed after order commit",
				"order", out.Order.OrderNumber, "user", in.UserID, "error", err)
		}
	}

	return out, nil
}

// resolveLines re-fetches every referenced product and applies the drop
// policy: missing, inactive and out-of-stock products disappear from the
// order with a recorded reason. Quantities clamp to max-per-order. Only
// catalog answers feed the drop policy; a read failure aborts the placement.
func (u *OrderUsecase) resolveLines(ctx context.Context, items []OrderLineInput) ([]resolvedLine, []DroppedItem, error) {
	resolved := make([]resolvedLine, 0, len(items))
	dropped := make([]DroppedItem, 0)

	for i, item := range items {
		p, err := u.products.FindActiveBySlug(ctx, item.ID)
		if errors.Is(err, repo.ErrNotFound) {
			dropped = append(dropped, DroppedItem{Index: i, ID: item.ID, Reason: "product unavailable"})
			continue
		}
		if err != nil {
			return nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if p.StockQuantity <= 0 {
			dropped = append(dropped, DroppedItem{Index: i, ID: item.ID, Reason: "out of stock"})
			continue
		}

		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		resolved = append(resolved, resolvedLine{
			index:    i,
			product:  p,
			quantity: clampQuantity(qty, p.MaxQuantityPerOrder),
		})
	}

	return resolved, dropped, nil
}

func (u *OrderUsecase) placeOnce(ctx context.Context, in PlaceOrderInput, resolved []resolvedLine, dropped []DroppedItem) (PlaceOrderOutput, error) {
	orderNumber := newOrderNumber()
	droppedOut := append([]DroppedItem(nil), dropped...)

	var placed PlacedOrder

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items := make([]model.OrderItem, 0, len(resolved))
		var total float64

		for _, line := range resolved {
			// Conditional decrement: a line losing the stock race is dropped
			// like any other unavailable line.
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.product.ID, line.quantity)
			if err != nil {
				return err
			}
			if !ok {
				droppedOut = append(droppedOut, DroppedItem{
					Index:  line.index,
					ID:     line.product.Slug,
					Reason: "out of stock",
				})
				continue
			}

			lineTotal := round2(line.product.Price * float64(line.quantity))
			items = append(items, model.OrderItem{
				ProductID:    line.product.ID,
				ProductName:  line.product.Name,
				ProductPrice: line.product.Price,
				Quantity:     line.quantity,
				TotalPrice:   lineTotal,
			})
			total = round2(total + lineTotal)
		}

		if len(items) == 0 {
			return errEmptyOrder
		}

		order := model.Order{
			OrderNumber:          orderNumber,
			Status:               model.OrderStatusCompleted,
			PaymentStatus:        model.PaymentStatusPaid, // payment gateway is stubbed
			PaymentMethod:        in.PaymentMethod,
			Subtotal:             total,
			TotalAmount:          total,
			Currency:             "USD",
			CustomerEmail:        in.CustomerInfo.Email,
			CustomerRustUsername: in.CustomerInfo.Username,
			DeliveryStatus:       model.DeliveryStatusPending,
		}
		if in.UserID > 0 {
			userID := in.UserID
			order.UserID = &userID
		} else {
			order.GuestSessionID = uuid.NewString()
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return err
		}

		now := time.Now()
		views := make([]OrderItemView, 0, len(items))
		for _, it := range items {
			views = append(views, OrderItemView{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Price:       it.ProductPrice,
				Quantity:    it.Quantity,
				TotalPrice:  it.TotalPrice,
			})
		}

		placed = PlacedOrder{
			ID:                orderID,
			OrderNumber:       orderNumber,
			Items:             views,
			CustomerInfo:      in.CustomerInfo,
			Total:             total,
			Status:            string(model.OrderStatusCompleted),
			PaymentStatus:     string(model.PaymentStatusPaid),
			DeliveryStatus:    string(model.DeliveryStatusPending),
			CreatedAt:         now,
			EstimatedDelivery: now.Add(deliveryWindow),
		}
		return nil
	})
	if err != nil {
		return PlaceOrderOutput{}, err
	}

	return PlaceOrderOutput{
		Success:      true,
		Order:        placed,
		DroppedItems: droppedOut,
		Message:      "Order completed successfully! Items will be delivered to your account within 5 minutes.",
	}, nil
}

type OrderSummary struct {
	ID             int64     `json:"id"`
	OrderNumber    string    `json:"orderNumber"`
	Total          float64   `json:"total"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	DeliveryStatus string    `json:"deliveryStatus"`
	ItemsSummary   string    `json:"itemsSummary"`
	CreatedAt      time.Time `json:"createdAt"`
}

type OrderHistoryOutput struct {
	Orders    []OrderSummary `json:"orders"`
	Timestamp time.Time      `json:"timestamp"`
}

type OrderDetail struct {
	ID             int64           `json:"id"`
	OrderNumber    string          `json:"orderNumber"`
	Items          []OrderItemView `json:"items"`
	Total          float64         `json:"total"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"paymentStatus"`
	DeliveryStatus string          `json:"deliveryStatus"`
	CustomerEmail  string          `json:"customerEmail"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// GetMyOrder returns one of the caller's orders with its lines. Orders that
// belong to someone else (or to a guest session) answer 404, not 403, so the
// order id space leaks nothing.
func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID int64, orderID int64) (OrderDetail, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderDetail{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID == nil || *o.UserID != userID {
		return OrderDetail{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]OrderItemView, 0, len(items))
	for _, it := range items {
		views = append(views, OrderItemView{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.ProductPrice,
			Quantity:    it.Quantity,
			TotalPrice:  it.TotalPrice,
		})
	}

	return OrderDetail{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Items:          views,
		Total:          o.TotalAmount,
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		DeliveryStatus: string(o.DeliveryStatus),
		CustomerEmail:  o.CustomerEmail,
		CreatedAt:      o.CreatedAt,
	}, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) (OrderHistoryOutput, error) {
	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return OrderHistoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItems.ListByOrderID(ctx, o.ID)
		if err != nil {
			return OrderHistoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, fmt.Sprintf("%s x%d", it.ProductName, it.Quantity))
		}

		summaries = append(summaries, OrderSummary{
			ID:             o.ID,
			OrderNumber:    o.OrderNumber,
			Total:          o.TotalAmount,
			Status:         string(o.Status),
			PaymentStatus:  string(o.PaymentStatus),
			DeliveryStatus: string(o.DeliveryStatus),
			ItemsSummary:   strings.Join(parts, ", "),
			CreatedAt:      o.CreatedAt,
		})
	}

	return OrderHistoryOutput{Orders: summaries, Timestamp: time.Now()}, nil
}

// Order numbers combine a millisecond timestamp with a random suffix. The
// unique index on orders.order_number catches the rare collision and the
// placement retries with a fresh number.
func newOrderNumber() string {
	return fmt.Sprintf("RB%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
