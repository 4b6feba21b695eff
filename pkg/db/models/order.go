package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
)

// DeliveryAddress is captured at checkout and stored as JSON text on the
// order row, frozen even if the customer later edits their profile.
type DeliveryAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

func (a DeliveryAddress) Value() (driver.Value, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("delivery address: marshal: %w", err)
	}
	return string(raw), nil
}

func (a *DeliveryAddress) Scan(src any) error {
	if src == nil {
		*a = DeliveryAddress{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("delivery address: unsupported source %T", src)
	}
	if len(raw) == 0 {
		*a = DeliveryAddress{}
		return nil
	}
	return json.Unmarshal(raw, a)
}

type Order struct {
	ID          string            `gorm:"primaryKey;size:64" json:"id"`
	OrderNumber string            `gorm:"size:64;uniqueIndex;not null" json:"order_number"`
	UserID      string            `gorm:"size:64;index;not null" json:"user_id"`
	Status      enums.OrderStatus `gorm:"size:32;not null;default:pending" json:"status"`

	Subtotal decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"subtotal"`
	Shipping decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"shipping"`
	Total    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`

	Address DeliveryAddress `gorm:"type:text" json:"address"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	Timestamps
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots the product at purchase time. Name, price and image
// are denormalized on purpose so later catalog edits never rewrite history.
type OrderItem struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	OrderID   string `gorm:"size:64;index;not null" json:"order_id"`
	ProductID string `gorm:"size:64;index;not null" json:"product_id"`

	Name      string          `gorm:"size:512;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Image     string          `gorm:"size:1024" json:"image"`

	// AdminID carries the revenue attribution copied from the product.
	AdminID string `gorm:"size:64;index" json:"admin_id,omitempty"`

	Timestamps
}

func (OrderItem) TableName() string { return "order_items" }

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
