package model

import "time"

type AuditAction string

const (
	AuditActionUpdateConfig AuditAction = "UPDATE_CONFIG"
	AuditActionCreateTheme  AuditAction = "CREATE_THEME"
	AuditActionUpdateTheme  AuditAction = "UPDATE_THEME"
	AuditActionDeleteTheme  AuditAction = "DELETE_THEME"
)

type AuditResourceType string

const (
	AuditResourceTheme  AuditResourceType = "theme"
	AuditResourceConfig AuditResourceType = "config"
)

// Trail of admin panel mutations: who changed which resource and how.
// Before/After are JSON snapshots.
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`
	BeforeJSON   string            `gorm:"type:text" json:"before_json"`
	AfterJSON    string            `gorm:"type:text" json:"after_json"`
	CreatedAt    time.Time         `gorm:"not null;index;autoCreateTime" json:"created_at"`
}
