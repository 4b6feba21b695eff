package memberships

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

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

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Repo) ListPartners(ctx context.Context) ([]models.Partner, error) {
	var items []models.Partner
	err := r.db.Gorm(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *Repo) CreatePartner(ctx context.Context, email, name string) (*models.Partner, error) {
	partner := models.Partner{
		ID:    models.NewID("ptr"),
		Email: normalizeEmail(email),
		Name:  name,
	}
	if err := r.db.Gorm(ctx).Create(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *Repo) DeletePartner(ctx context.Context, id string) (int64, error) {
	result := r.db.Gorm(ctx).Where("id = ?", id).Delete(&models.Partner{})
	return result.RowsAffected, result.Error
}

func (r *Repo) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var items []models.Admin
	err := r.db.Gorm(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *Repo) AdminByID(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Gorm(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *Repo) AdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.Gorm(ctx).Where("LOWER(email) = ?", normalizeEmail(email)).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *Repo) CreateAdmin(ctx context.Context, email, name string) (*models.Admin, error) {
	admin := models.Admin{
		ID:      models.NewID("adm"),
		Email:   normalizeEmail(email),
		Name:    name,
		Revenue: decimal.Zero,
	}
	if err := r.db.Gorm(ctx).Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *Repo) DeleteAdmin(ctx context.Context, id string) (int64, error) {
	result := r.db.Gorm(ctx).Where("id = ?", id).Delete(&models.Admin{})
	return result.RowsAffected, result.Error
}

// AddRevenueTx accumulates unsettled revenue inside the caller's
// transaction, used at checkout.
func AddRevenueTx(tx *gorm.DB, adminID string, amount decimal.Decimal) error {
	return tx.Model(&models.Admin{}).
		Where("id = ?", adminID).
		Update("revenue", gorm.Expr("revenue + ?", amount)).Error
}

func (r *Repo) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	var items []models.Subscriber
	err := r.db.Gorm(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *Repo) CreateSubscriber(ctx context.Context, sub *models.Subscriber) error {
	sub.Email = normalizeEmail(sub.Email)
	return r.db.Gorm(ctx).Create(sub).Error
}

func (r *Repo) DeleteSubscriber(ctx context.Context, id string) (int64, error) {
	result := r.db.Gorm(ctx).Where("id = ?", id).Delete(&models.Subscriber{})
	return result.RowsAffected, result.Error
}

func (r *Repo) ListRequests(ctx context.Context, status enums.SubscriptionRequestStatus) ([]models.SubscriptionRequest, error) {
	query := r.db.Gorm(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var items []models.SubscriptionRequest
	err := query.Find(&items).Error
	return items, err
}

func (r *Repo) RequestByID(ctx context.Context, id string) (*models.SubscriptionRequest, error) {
	var request models.SubscriptionRequest
	if err := r.db.Gorm(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *Repo) CreateRequest(ctx context.Context, request *models.SubscriptionRequest) error {
	request.Email = normalizeEmail(request.Email)
	return r.db.Gorm(ctx).Create(request).Error
}

func (r *Repo) ListSettlements(ctx context.Context, adminID string) ([]models.Settlement, error) {
	var items []models.Settlement
	err := r.db.Gorm(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
