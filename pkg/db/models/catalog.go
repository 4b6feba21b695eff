package models

import dbtypes "github.com/AhmedSalahALghzaly/lats-go/pkg/db/types"

type CarBrand struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Logo  string `gorm:"size:1024" json:"logo"`
	Order int    `gorm:"column:sort_order;default:0" json:"order"`

	Timestamps
}

func (CarBrand) TableName() string { return "car_brands" }

type CarModel struct {
	ID         string `gorm:"primaryKey;size:64" json:"id"`
	CarBrandID string `gorm:"size:64;index;not null" json:"car_brand_id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	YearFrom   int    `gorm:"default:0" json:"year_from"`
	YearTo     int    `gorm:"default:0" json:"year_to"`
	Image      string `gorm:"size:1024" json:"image"`

	Timestamps
}

func (CarModel) TableName() string { return "car_models" }

type ProductBrand struct {
	ID      string `gorm:"primaryKey;size:64" json:"id"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Logo    string `gorm:"size:1024" json:"logo"`
	Country string `gorm:"size:128" json:"country"`

	Timestamps
}

func (ProductBrand) TableName() string { return "product_brands" }

// Category forms a two-level tree via ParentID. Root categories have an
// empty ParentID.
type Category struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	ParentID string `gorm:"size:64;index" json:"parent_id"`
	Image    string `gorm:"size:1024" json:"image"`
	Order    int    `gorm:"column:sort_order;default:0" json:"order"`

	Timestamps
}

func (Category) TableName() string { return "categories" }

type Supplier struct {
	ID           string              `gorm:"primaryKey;size:64" json:"id"`
	Name         string              `gorm:"size:255;not null" json:"name"`
	Description  string              `gorm:"size:2048" json:"description"`
	Image        string              `gorm:"size:1024" json:"image"`
	Location     string              `gorm:"size:512" json:"location"`
	PhoneNumbers dbtypes.StringArray `gorm:"type:text" json:"phone_numbers"`

	Timestamps
}

func (Supplier) TableName() string { return "suppliers" }

type Distributor struct {
	ID           string              `gorm:"primaryKey;size:64" json:"id"`
	Name         string              `gorm:"size:255;not null" json:"name"`
	Description  string              `gorm:"size:2048" json:"description"`
	Image        string              `gorm:"size:1024" json:"image"`
	Location     string              `gorm:"size:512" json:"location"`
	PhoneNumbers dbtypes.StringArray `gorm:"type:text" json:"phone_numbers"`

	Timestamps
}

func (Distributor) TableName() string { return "distributors" }
