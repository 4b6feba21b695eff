package models

import (
	"github.com/shopspring/decimal"

	dbtypes "github.com/AhmedSalahALghzaly/lats-go/pkg/db/types"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
)

// Promotion targets exactly one of ProductID or CarModelID.
type Promotion struct {
	ID         string              `gorm:"primaryKey;size:64" json:"id"`
	Type       enums.PromotionType `gorm:"size:32;not null" json:"type"`
	Title      string              `gorm:"size:512" json:"title"`
	Image      string              `gorm:"size:1024" json:"image"`
	ProductID  string              `gorm:"size:64;index" json:"product_id,omitempty"`
	CarModelID string              `gorm:"size:64;index" json:"car_model_id,omitempty"`
	Active     bool                `gorm:"default:true;index" json:"active"`
	Order      int                 `gorm:"column:sort_order;default:0" json:"order"`

	Timestamps
}

func (Promotion) TableName() string { return "promotions" }

type BundleOffer struct {
	ID              string              `gorm:"primaryKey;size:64" json:"id"`
	Title           string              `gorm:"size:512;not null" json:"title"`
	Description     string              `gorm:"size:2048" json:"description"`
	Image           string              `gorm:"size:1024" json:"image"`
	ProductIDs      dbtypes.StringArray `gorm:"type:text" json:"product_ids"`
	DiscountPercent decimal.Decimal     `gorm:"type:numeric(5,2);not null" json:"discount_percent"`
	Active          bool                `gorm:"default:true;index" json:"active"`

	Timestamps
}

func (BundleOffer) TableName() string { return "bundle_offers" }
