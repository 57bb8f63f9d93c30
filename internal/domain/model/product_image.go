package model

import "time"

type ProductImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	ImageURL  string    `gorm:"type:varchar(500);not null" json:"image_url"`
	AltText   string    `gorm:"type:varchar(200)" json:"alt_text"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
}
