package models

import "time"

// Cart rows are device state, not catalog data. Items are removed with a
// hard delete so the unique cart/product index stays usable on re-add.
type Cart struct {
	ID     string `gorm:"primaryKey;size:64" json:"id"`
	UserID string `gorm:"size:64;uniqueIndex;not null" json:"user_id"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	CartID    string `gorm:"size:64;index:idx_cart_product,unique;not null" json:"cart_id"`
	ProductID string `gorm:"size:64;index:idx_cart_product,unique;not null" json:"product_id"`
	Quantity  int    `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CartItem) TableName() string { return "cart_items" }
