package models

type Favorite struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	UserID    string `gorm:"size:64;index:idx_fav_user_product,unique;not null" json:"user_id"`
	ProductID string `gorm:"size:64;index:idx_fav_user_product,unique;not null" json:"product_id"`

	Timestamps
}

func (Favorite) TableName() string { return "favorites" }

type Comment struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	UserID    string `gorm:"size:64;index;not null" json:"user_id"`
	ProductID string `gorm:"size:64;index;not null" json:"product_id"`
	UserName  string `gorm:"size:255" json:"user_name"`
	Text      string `gorm:"size:2048" json:"text"`
	Rating    int    `gorm:"not null" json:"rating"`

	Timestamps
}

func (Comment) TableName() string { return "comments" }
