package cart

import (
	"context"

	"gorm.io/gorm"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
)

type Repo struct {
	db *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{db: client}
}

// GetOrCreate returns the user's cart, creating an empty one on first use.
func (r *Repo) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Gorm(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !db.IsNotFound(err) {
		return nil, err
	}

	cart = models.Cart{ID: models.NewID("crt"), UserID: userID}
	if err := r.db.Gorm(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *Repo) ItemByProduct(ctx context.Context, cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Gorm(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo) CreateItem(ctx context.Context, item *models.CartItem) error {
	return r.db.Gorm(ctx).Create(item).Error
}

func (r *Repo) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	return r.db.Gorm(ctx).Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (r *Repo) DeleteItem(ctx context.Context, itemID string) error {
	return r.db.Gorm(ctx).Where("id = ?", itemID).Delete(&models.CartItem{}).Error
}

func (r *Repo) ClearItems(ctx context.Context, cartID string) error {
	return r.db.Gorm(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// ClearItemsTx clears the cart inside the caller's transaction, used by
// checkout so an order and its cart wipe commit together.
func ClearItemsTx(tx *gorm.DB, cartID string) error {
	return tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
