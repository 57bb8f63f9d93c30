package model

import "time"

// ProductName and ProductPrice are captured at purchase time and must not
// change when the catalog does.
type OrderItem struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      int64      `gorm:"not null;index" json:"-"`
	ProductID    int64      `gorm:"not null;index" json:"productId"`
	ProductName  string     `gorm:"type:varchar(200);not null" json:"productName"`
	ProductPrice float64    `gorm:"type:numeric(10,2);not null" json:"productPrice"`
	Quantity     int64      `gorm:"not null" json:"quantity"`
	TotalPrice   float64    `gorm:"type:numeric(10,2);not null" json:"totalPrice"`
	Delivered    bool       `gorm:"not null;default:false" json:"delivered"`
	DeliveredAt  *time.Time `json:"deliveredAt,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"-"`
}
