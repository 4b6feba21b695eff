package catalog

import (
	"context"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
)

type Repo struct {
	db *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{db: client}
}

func (r *Repo) ListCarBrands(ctx context.Context) ([]models.CarBrand, error) {
	var items []models.CarBrand
	err := r.db.Gorm(ctx).Order("sort_order ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *Repo) CreateCarBrand(ctx context.Context, brand *models.CarBrand) error {
	return r.db.Gorm(ctx).Create(brand).Error
}

func (r *Repo) UpdateCarBrand(ctx context.Context, id string, fields map[string]any) (int64, error) {
	result := r.db.Gorm(ctx).Model(&models.CarBrand{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repo) DeleteCarBrand(ctx context.Context, id string) (int64, error) {
	result := r.db.Gorm(ctx).Where("id = ?", id).Delete(&models.CarBrand{})
	return result.RowsAffected, result.Error
}

func (r *Repo) ListCarModels(ctx context.Context, carBrandID string) ([]models.CarModel, error) {
	query := r.db.Gorm(ctx).Order("name ASC")
	if carBrandID != "" {
		query = query.Where("car_brand_id = ?", carBrandID)
	}
	var items []models.CarModel
	err := query.Find(&items).Error
	return items, err
}

func (r *Repo) CarModelByID(ctx context.Context, id string) (*models.CarModel, error) {
	var model models.CarModel
	if err := r.db.Gorm(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, err
	}
	return &model, nil
}

func (r *Repo) CarBrandByID(ctx context.Context, id string) (*models.CarBrand, error) {
	var brand models.CarBrand
	if err := r.db.Gorm(ctx).Where("id = ?", id).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *Repo) CarBrandExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.Gorm(ctx).Model(&models.CarBrand{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *Repo) CarModelExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.Gorm(ctx).Model(&models.CarModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *Repo) CreateCarModel(ctx context.Context, model *models.CarModel) error {
	return r.db.Gorm(ctx).Create(model).Error
}

func (r *Repo) UpdateCarModel(ctx context.Context, id string, fields map[string]any) (int64, error) {
	result := r.db.Gorm(ctx).Model(&models.CarModel{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repo) DeleteCarModel(ctx context.Context, id string) (int64, error) {
	result := r.db.Gorm(ctx).Where("id = ?", id).Delete(&models.CarModel{})
	return result.RowsAffected, result.Error
}

func (r *Repo) ListProductBrands(ctx context.Context) ([]models.ProductBrand, error) {
	var items []models.ProductBrand
	err := r.db.Gorm(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *Repo) CreateProductBrand(ctx context.Context, brand *models.ProductBrand) error {
	return r.db.Gorm(ctx).Create(brand).Error
}

func (r *Repo) UpdateProductBrand(ctx context.Context, id string, fields map[string]any) (int64, error) {
	result := r.db.Gorm(ctx).Model(&models.ProductBrand{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repo) DeleteProductBrand(ctx context.Context, id string) (int64, error) {
	result := r.db.Gorm(ctx).Where("id = ?", id).Delete(&models.ProductBrand{})
	return result.RowsAffected, result.Error
}

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	err := r.db.Gorm(ctx).Order("sort_order ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *Repo) CategoryExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.Gorm(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *Repo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.Gorm(ctx).Create(category).Error
}

func (r *Repo) UpdateCategory(ctx context.Context, id string, fields map[string]any) (int64, error) {
	result := r.db.Gorm(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repo) DeleteCategory(ctx context.Context, id string) (int64, error) {
	result := r.db.Gorm(ctx).Where("id = ? OR parent_id = ?", id, id).Delete(&models.Category{})
	return result.RowsAffected, result.Error
}

func (r *Repo) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var items []models.Supplier
	err := r.db.Gorm(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *Repo) SupplierByID(ctx context.Context, id string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.Gorm(ctx).Where("id = ?", id).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *Repo) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.Gorm(ctx).Create(supplier).Error
}

func (r *Repo) UpdateSupplier(ctx context.Context, id string, fields map[string]any) (int64, error) {
	result := r.db.Gorm(ctx).Model(&models.Supplier{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repo) DeleteSupplier(ctx context.Context, id string) (int64, error) {
	result := r.db.Gorm(ctx).Where("id = ?", id).Delete(&models.Supplier{})
	return result.RowsAffected, result.Error
}

func (r *Repo) ListDistributors(ctx context.Context) ([]models.Distributor, error) {
	var items []models.Distributor
	err := r.db.Gorm(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *Repo) DistributorByID(ctx context.Context, id string) (*models.Distributor, error) {
	var distributor models.Distributor
	if err := r.db.Gorm(ctx).Where("id = ?", id).First(&distributor).Error; err != nil {
		return nil, err
	}
	return &distributor, nil
}

func (r *Repo) CreateDistributor(ctx context.Context, distributor *models.Distributor) error {
	return r.db.Gorm(ctx).Create(distributor).Error
}

func (r *Repo) UpdateDistributor(ctx context.Context, id string, fields map[string]any) (int64, error) {
	result := r.db.Gorm(ctx).Model(&models.Distributor{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repo) DeleteDistributor(ctx context.Context, id string) (int64, error) {
	result := r.db.Gorm(ctx).Where("id = ?", id).Delete(&models.Distributor{})
	return result.RowsAffected, result.Error
}
