package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Storefront account. TotalSpent and LoyaltyPoints are written only by the
// order usecase and only grow.
type User struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username      string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email         string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"column:password_hash;not null" json:"-"`
	RustUsername  string     `gorm:"type:varchar(50)" json:"rustUsername"`
	Role          Role       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	SteamID       string     `gorm:"type:varchar(20)" json:"-"`
	DiscordID     string     `gorm:"type:varchar(20)" json:"-"`
	TotalSpent    float64    `gorm:"type:numeric(10,2);not null;default:0" json:"totalSpent"`
	LoyaltyPoints int64      `gorm:"not null;default:0" json:"loyaltyPoints"`
	VIPStatus     bool       `gorm:"column:vip_status;not null;default:false" json:"vipStatus"`
	VIPExpiresAt  *time.Time `gorm:"column:vip_expires_at" json:"vipExpiresAt,omitempty"`
	LastLoginAt   *time.Time `gorm:"column:last_login" json:"-"`
	CreatedAt     time.Time  `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"not null;autoUpdateTime" json:"-"`
}
