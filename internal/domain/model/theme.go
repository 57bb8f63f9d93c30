package model

import "time"

// Admin-authored UI theme. CSSVariables holds a JSON object of CSS custom
// properties; it is stored as text and validated at the usecase boundary.
type Theme struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Description  string    `gorm:"type:text" json:"description"`
	CSSVariables string    `gorm:"column:css_variables;type:text;not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
