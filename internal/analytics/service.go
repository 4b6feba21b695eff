package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

const lowStockThreshold = 5

type Service struct {
	db   *db.Client
	logg *logger.Logger
}

func NewService(client *db.Client, logg *logger.Logger) *Service {
	return &Service{db: client, logg: logg}
}

// Range bounds the order-derived metrics. Nil endpoints leave that side
// open; catalog and membership counts are always all-time.
type Range struct {
	From *time.Time
	To   *time.Time
}

func (s *Service) inWindow(query *gorm.DB, window Range) *gorm.DB {
	if window.From != nil {
		query = query.Where("created_at >= ?", *window.From)
	}
	if window.To != nil {
		query = query.Where("created_at <= ?", *window.To)
	}
	return query
}

type TopProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Units     int64           `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type DayRevenue struct {
	Day     string          `json:"day"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type AdminSales struct {
	AdminID string          `json:"admin_id"`
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Overview is the owner dashboard summary.
type Overview struct {
	Users          int64            `json:"users"`
	Subscribers    int64            `json:"subscribers"`
	Products       int64            `json:"products"`
	Orders         int64            `json:"orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	GrossRevenue   decimal.Decimal  `json:"gross_revenue"`
	AverageOrder   decimal.Decimal  `json:"average_order_value"`
	UnsettledAdmin decimal.Decimal  `json:"unsettled_admin_revenue"`
	TopProducts    []TopProduct     `json:"top_products"`
	RevenueByDay   []DayRevenue     `json:"revenue_by_day"`
	SalesByAdmin   []AdminSales     `json:"sales_by_admin"`
	RecentUsers    []models.User    `json:"recent_users"`
	LowStock       []models.Product `json:"low_stock"`
}

func (s *Service) Overview(ctx context.Context, window Range) (*Overview, error) {
	overview := Overview{
		OrdersByStatus: make(map[string]int64),
		GrossRevenue:   decimal.Zero,
		AverageOrder:   decimal.Zero,
		UnsettledAdmin: decimal.Zero,
		TopProducts:    []TopProduct{},
		RevenueByDay:   []DayRevenue{},
		SalesByAdmin:   []AdminSales{},
	}

	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.User{}, &overview.Users},
		{&models.Subscriber{}, &overview.Subscribers},
		{&models.Product{}, &overview.Products},
	}
	for _, c := range counts {
		if err := s.db.Gorm(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting rows")
		}
	}

	orders := s.inWindow(s.db.Gorm(ctx).Model(&models.Order{}), window)
	if err := orders.Count(&overview.Orders).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting orders")
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var statuses []statusCount
	err := s.inWindow(s.db.Gorm(ctx).Model(&models.Order{}), window).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statuses).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "grouping orders by status")
	}
	for _, sc := range statuses {
		overview.OrdersByStatus[sc.Status] = sc.Count
	}

	type sum struct {
		Total decimal.Decimal
	}
	var revenue sum
	err = s.inWindow(s.db.Gorm(ctx).Model(&models.Order{}), window).
		Select("COALESCE(SUM(total), 0) AS total").
		Scan(&revenue).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing revenue")
	}
	overview.GrossRevenue = revenue.Total
	if overview.Orders > 0 {
		overview.AverageOrder = revenue.Total.
			Div(decimal.NewFromInt(overview.Orders)).
			Round(2)
	}

	var unsettled sum
	err = s.db.Gorm(ctx).Model(&models.Admin{}).
		Select("COALESCE(SUM(revenue), 0) AS total").
		Scan(&unsettled).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing admin revenue")
	}
	overview.UnsettledAdmin = unsettled.Total

	err = s.inWindow(s.db.Gorm(ctx).Model(&models.OrderItem{}), window).
		Select("product_id, MAX(name) AS name, SUM(quantity) AS units, COALESCE(SUM(unit_price * quantity), 0) AS revenue").
		Group("product_id").
		Order("units DESC").
		Limit(10).
		Scan(&overview.TopProducts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ranking products")
	}

	// DATE() and the text cast behave the same on postgres and the sqlite
	// test DB.
	err = s.inWindow(s.db.Gorm(ctx).Model(&models.Order{}), window).
		Select("CAST(DATE(created_at) AS TEXT) AS day, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&overview.RevenueByDay).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "grouping revenue by day")
	}

	err = s.inWindow(s.db.Gorm(ctx).Model(&models.OrderItem{}), window).
		Select("admin_id, SUM(quantity) AS units, COALESCE(SUM(unit_price * quantity), 0) AS revenue").
		Where("admin_id <> ''").
		Group("admin_id").
		Order("revenue DESC").
		Scan(&overview.SalesByAdmin).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "grouping sales by admin")
	}

	err = s.db.Gorm(ctx).Model(&models.User{}).
		Order("created_at DESC").
		Limit(5).
		Find(&overview.RecentUsers).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing recent users")
	}

	err = s.db.Gorm(ctx).Model(&models.Product{}).
		Where("hidden = ? AND stock <= ?", false, lowStockThreshold).
		Order("stock ASC").
		Limit(10).
		Find(&overview.LowStock).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing low stock")
	}

	return &overview, nil
}
