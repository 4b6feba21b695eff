package orders

import (
	"context"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
)

type Repo struct {
	db *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{db: client}
}

func (r *Repo) ByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Gorm(ctx).Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repo) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	var items []models.Order
	err := r.db.Gorm(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// ListAll returns every order for the staff panel, newest first.
func (r *Repo) ListAll(ctx context.Context, status enums.OrderStatus, limit, offset int) ([]models.Order, int64, error) {
	query := r.db.Gorm(ctx).Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var items []models.Order
	err := query.Preload("Items").Order("created_at DESC").Find(&items).Error
	return items, total, err
}

func (r *Repo) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (int64, error) {
	result := r.db.Gorm(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}
