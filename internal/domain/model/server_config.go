package model

import "time"

type ConfigType string

const (
	ConfigTypeString   ConfigType = "string"
	ConfigTypeNumber   ConfigType = "number"
	ConfigTypePassword ConfigType = "password"
)

// Key/value settings for the game server (connection info, wipe schedule).
type ServerConfig struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"-"`
	Key         string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Value       string     `gorm:"type:text;not null" json:"value"`
	Description string     `gorm:"type:text" json:"description"`
	ConfigType  ConfigType `gorm:"type:varchar(50);not null;default:'string'" json:"type"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"-"`
}
