package customers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

type Service struct {
	db   *db.Client
	logg *logger.Logger
}

func NewService(client *db.Client, logg *logger.Logger) *Service {
	return &Service{db: client, logg: logg}
}

// Customer is a user annotated with their purchase history totals.
type Customer struct {
	models.User
	OrderCount int64           `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// List returns every registered user with order aggregates for the staff
// panel.
func (s *Service) List(ctx context.Context) ([]Customer, error) {
	var users []models.User
	if err := s.db.Gorm(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing users")
	}

	type aggregate struct {
		UserID     string
		OrderCount int64
		TotalSpent decimal.Decimal
	}
	var aggregates []aggregate
	err := s.db.Gorm(ctx).Model(&models.Order{}).
		Select("user_id, COUNT(*) AS order_count, SUM(total) AS total_spent").
		Group("user_id").
		Scan(&aggregates).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating orders")
	}

	byUser := make(map[string]aggregate, len(aggregates))
	for _, agg := range aggregates {
		byUser[agg.UserID] = agg
	}

	customers := make([]Customer, 0, len(users))
	for _, user := range users {
		customer := Customer{User: user, TotalSpent: decimal.Zero}
		if agg, ok := byUser[user.ID]; ok {
			customer.OrderCount = agg.OrderCount
			customer.TotalSpent = agg.TotalSpent
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

// Detail adds the customer's order history to the aggregate view.
type Detail struct {
	Customer
	Orders []models.Order `json:"orders"`
}

func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	var user models.User
	if err := s.db.Gorm(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading customer")
	}

	var orders []models.Order
	err := s.db.Gorm(ctx).
		Preload("Items").
		Where("user_id = ?", id).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing customer orders")
	}

	detail := Detail{
		Customer: Customer{User: user, TotalSpent: decimal.Zero},
		Orders:   orders,
	}
	for _, order := range orders {
		detail.OrderCount++
		detail.TotalSpent = detail.TotalSpent.Add(order.Total)
	}
	return &detail, nil
}
