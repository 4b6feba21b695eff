package products

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
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

// Filter narrows product listings. IncludeHidden is reserved for staff
// surfaces, shopper queries always exclude hidden rows.
type Filter struct {
	CategoryID     string
	ProductBrandID string
	CarModelID     string
	CarBrandID     string
	AddedByAdminID string
	Search         string
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	SettledOnly    bool
	IncludeHidden  bool
	Limit          int
	Offset         int
}

func (r *Repo) applyFilter(query *gorm.DB, filter Filter) *gorm.DB {
	if !filter.IncludeHidden {
		query = query.Where("hidden = ?", false)
	}
	if filter.CategoryID != "" {
		// Parent categories include their children's products.
		query = query.Where(
			"category_id IN (SELECT id FROM categories WHERE (id = ? OR parent_id = ?) AND deleted_at IS NULL)",
			filter.CategoryID, filter.CategoryID,
		)
	}
	if filter.ProductBrandID != "" {
		query = query.Where("product_brand_id = ?", filter.ProductBrandID)
	}
	if filter.CarModelID != "" {
		// CarModelIDs is a JSON array column, match the quoted id.
		query = query.Where("car_model_ids LIKE ?", `%"`+filter.CarModelID+`"%`)
	}
	if filter.CarBrandID != "" {
		// Match products compatible with any model of the brand. String
		// concatenation works on both postgres and the sqlite test DB.
		query = query.Where(
			`EXISTS (SELECT 1 FROM car_models cm WHERE cm.car_brand_id = ? AND cm.deleted_at IS NULL AND products.car_model_ids LIKE '%"' || cm.id || '"%')`,
			filter.CarBrandID,
		)
	}
	if filter.AddedByAdminID != "" {
		query = query.Where("added_by_admin_id = ?", filter.AddedByAdminID)
	}
	if filter.SettledOnly {
		query = query.Where("settled = ?", true)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(part_number) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	return query
}

func (r *Repo) List(ctx context.Context, filter Filter) ([]models.Product, int64, error) {
	query := r.applyFilter(r.db.Gorm(ctx).Model(&models.Product{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []models.Product
	err := query.Order("created_at DESC").Find(&items).Error
	return items, total, err
}

func (r *Repo) ByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Gorm(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ByIDs returns only the visible subset of the requested products.
func (r *Repo) ByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.Product
	err := r.db.Gorm(ctx).
		Where("id IN ? AND hidden = ?", ids, false).
		Find(&items).Error
	return items, err
}

func (r *Repo) Create(ctx context.Context, product *models.Product) error {
	return r.db.Gorm(ctx).Create(product).Error
}

func (r *Repo) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	result := r.db.Gorm(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repo) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.Gorm(ctx).Where("id = ?", id).Delete(&models.Product{})
	return result.RowsAffected, result.Error
}
