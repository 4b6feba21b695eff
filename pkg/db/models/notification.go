package models

import "github.com/AhmedSalahALghzaly/lats-go/pkg/enums"

type Notification struct {
	ID      string                 `gorm:"primaryKey;size:64" json:"id"`
	UserID  string                 `gorm:"size:64;index;not null" json:"user_id"`
	Type    enums.NotificationType `gorm:"size:64;not null" json:"type"`
	Title   string                 `gorm:"size:512;not null" json:"title"`
	Message string                 `gorm:"size:2048" json:"message"`
	Read    bool                   `gorm:"default:false;index" json:"read"`

	// RefID points at the entity the notification is about, e.g. an order.
	RefID string `gorm:"size:64" json:"ref_id,omitempty"`

	Timestamps
}

func (Notification) TableName() string { return "notifications" }
