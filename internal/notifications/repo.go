package notifications

import (
	"context"
	"strings"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
)

type Repo struct {
	db *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{db: client}
}

func (r *Repo) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.Gorm(ctx).Create(notification).Error
}

func (r *Repo) ListForUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var items []models.Notification
	err := r.db.Gorm(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *Repo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.Gorm(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips a single notification owned by userID.
func (r *Repo) MarkRead(ctx context.Context, userID, id string) (int64, error) {
	result := r.db.Gorm(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	return result.RowsAffected, result.Error
}

func (r *Repo) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.Gorm(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (r *Repo) Delete(ctx context.Context, userID, id string) (int64, error) {
	result := r.db.Gorm(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// UserIDByEmail resolves the recipient for email-addressed notifications.
func (r *Repo) UserIDByEmail(ctx context.Context, email string) (string, error) {
	var user models.User
	err := r.db.Gorm(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
