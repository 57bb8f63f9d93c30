package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

// Immutable once created except for status transitions. UserID is nil for
// guest checkouts.
type Order struct {
	ID                   int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber          string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"orderNumber"`
	UserID               *int64         `gorm:"index" json:"userId,omitempty"`
	GuestSessionID       string         `gorm:"type:varchar(64)" json:"-"`
	Status               OrderStatus    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus        PaymentStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"paymentStatus"`
	PaymentMethod        string         `gorm:"type:varchar(50)" json:"paymentMethod"`
	Subtotal             float64        `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	TaxAmount            float64        `gorm:"type:numeric(10,2);not null;default:0" json:"-"`
	TotalAmount          float64        `gorm:"type:numeric(10,2);not null" json:"total"`
	Currency             string         `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	CustomerEmail        string         `gorm:"type:varchar(100)" json:"customerEmail"`
	CustomerRustUsername string         `gorm:"type:varchar(50)" json:"customerRustUsername"`
	DeliveryStatus       DeliveryStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"deliveryStatus"`
	DeliveredAt          *time.Time     `json:"deliveredAt,omitempty"`
	Notes                string         `gorm:"type:text" json:"-"`
	CreatedAt            time.Time      `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time      `gorm:"not null;autoUpdateTime" json:"-"`
}
