package favorites

import (
	"context"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// ProductReader resolves favorite rows to their products.
type ProductReader interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	ByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

type Service struct {
	db       *db.Client
	products ProductReader
	logg     *logger.Logger
}

func NewService(client *db.Client, products ProductReader, logg *logger.Logger) *Service {
	return &Service{db: client, products: products, logg: logg}
}

// Toggle flips the favorite state and reports the new state. A previously
// unfavorited row is restored rather than recreated so the unique
// user/product index never collides with its own tombstone.
func (s *Service) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return false, err
	}

	var favorite models.Favorite
	err := s.db.Gorm(ctx).Unscoped().
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&favorite).Error
	if err != nil {
		if !db.IsNotFound(err) {
			return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading favorite")
		}
		favorite = models.Favorite{
			ID:        models.NewID("fav"),
			UserID:    userID,
			ProductID: productID,
		}
		if err := s.db.Gorm(ctx).Create(&favorite).Error; err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating favorite")
		}
		return true, nil
	}

	if favorite.DeletedAt.Valid {
		err = s.db.Gorm(ctx).Unscoped().Model(&models.Favorite{}).
			Where("id = ?", favorite.ID).
			Update("deleted_at", nil).Error
		if err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restoring favorite")
		}
		return true, nil
	}

	if err := s.db.Gorm(ctx).Delete(&favorite).Error; err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing favorite")
	}
	return false, nil
}

// List returns the user's favorited products that are still visible.
func (s *Service) List(ctx context.Context, userID string) ([]models.Product, error) {
	var favorites []models.Favorite
	err := s.db.Gorm(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing favorites")
	}

	ids := make([]string, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.ProductID)
	}
	items, err := s.products.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// IsFavorite reports whether the user currently favorites the product.
func (s *Service) IsFavorite(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := s.db.Gorm(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking favorite")
	}
	return count > 0, nil
}

// IDs returns the favorited product ids, used by clients to paint hearts.
func (s *Service) IDs(ctx context.Context, userID string) ([]string, error) {
	var favorites []models.Favorite
	err := s.db.Gorm(ctx).
		Where("user_id = ?", userID).
		Find(&favorites).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing favorites")
	}
	ids := make([]string, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.ProductID)
	}
	return ids, nil
}
