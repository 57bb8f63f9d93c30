package model

import "time"

// Products are soft-deactivated (Active=false), never hard-deleted, so order
// history keeps valid references.
type Product struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string    `gorm:"type:varchar(200);not null" json:"name"`
	Slug                string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Description         string    `gorm:"type:text" json:"description"`
	ShortDescription    string    `gorm:"type:varchar(500)" json:"shortDescription"`
	Price               float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	OriginalPrice       *float64  `gorm:"type:numeric(10,2)" json:"originalPrice,omitempty"`
	DiscountPercentage  int       `gorm:"not null;default:0" json:"discount"`
	CategoryID          int64     `gorm:"not null;index" json:"categoryId"`
	StockQuantity       int64     `gorm:"not null;default:0" json:"stockQuantity"`
	MaxQuantityPerOrder int64     `gorm:"not null;default:99" json:"maxQuantity"`
	IsDigital           bool      `gorm:"not null;default:true" json:"isDigital"`
	DeliveryTimeMinutes int       `gorm:"not null;default:5" json:"deliveryTimeMinutes"`
	Popular             bool      `gorm:"not null;default:false" json:"popular"`
	Featured            bool      `gorm:"not null;default:false" json:"featured"`
	LimitedEdition      bool      `gorm:"not null;default:false" json:"limited"`
	Badge               string    `gorm:"type:varchar(50)" json:"badge,omitempty"`
	GameItemID          string    `gorm:"type:varchar(100)" json:"-"`
	Active              bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"not null;autoUpdateTime" json:"-"`

	Images   []ProductImage   `gorm:"foreignKey:ProductID" json:"-"`
	Features []ProductFeature `gorm:"foreignKey:ProductID" json:"-"`
}

func (p Product) InStock() bool {
	return p.StockQuantity > 0
}
