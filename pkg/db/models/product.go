package models

import (
	"github.com/shopspring/decimal"

	dbtypes "github.com/AhmedSalahALghzaly/lats-go/pkg/db/types"
)

type Product struct {
	ID             string              `gorm:"primaryKey;size:64" json:"id"`
	Name           string              `gorm:"size:512;not null" json:"name"`
	Description    string              `gorm:"size:4096" json:"description"`
	Price          decimal.Decimal     `gorm:"type:numeric(14,2);not null" json:"price"`
	Stock          int                 `gorm:"default:0" json:"stock"`
	PartNumber     string              `gorm:"size:128;index" json:"part_number"`
	CategoryID     string              `gorm:"size:64;index" json:"category_id"`
	ProductBrandID string              `gorm:"size:64;index" json:"product_brand_id"`
	CarModelIDs    dbtypes.StringArray `gorm:"type:text" json:"car_model_ids"`
	Images         dbtypes.StringArray `gorm:"type:text" json:"images"`
	Hidden         bool                `gorm:"default:false;index" json:"hidden"`

	// AddedByAdminID routes the product's revenue share at checkout.
	// Settled marks revenue already paid out for legacy rows.
	AddedByAdminID string `gorm:"size:64;index" json:"added_by_admin_id"`
	Settled        bool   `gorm:"default:false" json:"settled"`

	Timestamps
}

func (Product) TableName() string { return "products" }
