package models

import (
	"time"

	"gorm.io/gorm"
)

// Timestamps is embedded by every synced entity. DeletedAt gives rows a
// default-scoped soft delete so normal queries never see removed data,
// while the sync pull can still enumerate tombstones with Unscoped.
type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
