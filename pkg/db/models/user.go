package models

import "time"

type User struct {
	ID      string `gorm:"primaryKey;size:64" json:"id"`
	Email   string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name    string `gorm:"size:255" json:"name"`
	Picture string `gorm:"size:1024" json:"picture"`

	Timestamps
}

func (User) TableName() string { return "users" }

type Session struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    string    `gorm:"size:64;index;not null" json:"user_id"`
	Token     string    `gorm:"size:512;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	Timestamps
}

func (Session) TableName() string { return "sessions" }

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
