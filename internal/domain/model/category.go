package model

import "time"

// Static reference data maintained by admins.
type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(50);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"type:varchar(10)" json:"icon"`
	SortOrder   int       `gorm:"not null;default:0" json:"sortOrder"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"-"`
}
