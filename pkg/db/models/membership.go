package models

import (
	"github.com/shopspring/decimal"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
)

// Partner grants the partner role to the matching user email.
type Partner struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name  string `gorm:"size:255" json:"name"`

	Timestamps
}

func (Partner) TableName() string { return "partners" }

// Admin grants the admin role and accumulates unsettled revenue from
// orders containing products the admin added.
type Admin struct {
	ID      string          `gorm:"primaryKey;size:64" json:"id"`
	Email   string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name    string          `gorm:"size:255" json:"name"`
	Revenue decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"revenue"`

	Timestamps
}

func (Admin) TableName() string { return "admins" }

type Subscriber struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name     string `gorm:"size:255" json:"name"`
	Phone    string `gorm:"size:64" json:"phone"`
	Shop     string `gorm:"size:255" json:"shop_name"`
	Location string `gorm:"size:512" json:"location"`

	Timestamps
}

func (Subscriber) TableName() string { return "subscribers" }

type SubscriptionRequest struct {
	ID       string                          `gorm:"primaryKey;size:64" json:"id"`
	Email    string                          `gorm:"size:255;index;not null" json:"email"`
	Name     string                          `gorm:"size:255" json:"name"`
	Phone    string                          `gorm:"size:64" json:"phone"`
	Shop     string                          `gorm:"size:255" json:"shop_name"`
	Location string                          `gorm:"size:512" json:"location"`
	Status   enums.SubscriptionRequestStatus `gorm:"size:32;not null;default:pending" json:"status"`

	Timestamps
}

func (SubscriptionRequest) TableName() string { return "subscription_requests" }

// Settlement records a revenue payout to an admin.
type Settlement struct {
	ID      string          `gorm:"primaryKey;size:64" json:"id"`
	AdminID string          `gorm:"size:64;index;not null" json:"admin_id"`
	Amount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`

	Timestamps
}

func (Settlement) TableName() string { return "settlements" }
