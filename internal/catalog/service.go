package catalog

import (
	"context"

	dbtypes "github.com/AhmedSalahALghzaly/lats-go/pkg/db/types"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

type Service struct {
	repo *Repo
	logg *logger.Logger
}

func NewService(repo *Repo, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

func notFoundOrInternal(affected int64, err error, what string) error {
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, what)
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	}
	return nil
}

func (s *Service) ListCarBrands(ctx context.Context) ([]models.CarBrand, error) {
	items, err := s.repo.ListCarBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing car brands")
	}
	return items, nil
}

type CarBrandInput struct {
	Name  string
	Logo  string
	Order int
}

func (s *Service) CreateCarBrand(ctx context.Context, input CarBrandInput) (*models.CarBrand, error) {
	brand := models.CarBrand{
		ID:    models.NewID("cb"),
		Name:  input.Name,
		Logo:  input.Logo,
		Order: input.Order,
	}
	if err := s.repo.CreateCarBrand(ctx, &brand); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating car brand")
	}
	return &brand, nil
}

func (s *Service) UpdateCarBrand(ctx context.Context, id string, fields map[string]any) error {
	affected, err := s.repo.UpdateCarBrand(ctx, id, fields)
	return notFoundOrInternal(affected, err, "updating car brand")
}

func (s *Service) DeleteCarBrand(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteCarBrand(ctx, id)
	return notFoundOrInternal(affected, err, "deleting car brand")
}

func (s *Service) ListCarModels(ctx context.Context, carBrandID string) ([]models.CarModel, error) {
	items, err := s.repo.ListCarModels(ctx, carBrandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing car models")
	}
	return items, nil
}

// CarModelDetail is a car model paired with its brand, the storefront
// model page header.
type CarModelDetail struct {
	models.CarModel
	Brand *models.CarBrand `json:"brand,omitempty"`
}

func (s *Service) CarModelByID(ctx context.Context, id string) (*CarModelDetail, error) {
	model, err := s.repo.CarModelByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "car model not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading car model")
	}

	detail := CarModelDetail{CarModel: *model}
	if model.CarBrandID != "" {
		brand, err := s.repo.CarBrandByID(ctx, model.CarBrandID)
		if err != nil && !db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading car brand")
		}
		detail.Brand = brand
	}
	return &detail, nil
}

type CarModelInput struct {
	CarBrandID string
	Name       string
	YearFrom   int
	YearTo     int
	Image      string
}

func (s *Service) CreateCarModel(ctx context.Context, input CarModelInput) (*models.CarModel, error) {
	exists, err := s.repo.CarBrandExists(ctx, input.CarBrandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking car brand")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "car brand does not exist")
	}

	model := models.CarModel{
		ID:         models.NewID("cm"),
		CarBrandID: input.CarBrandID,
		Name:       input.Name,
		YearFrom:   input.YearFrom,
		YearTo:     input.YearTo,
		Image:      input.Image,
	}
	if err := s.repo.CreateCarModel(ctx, &model); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating car model")
	}
	return &model, nil
}

func (s *Service) UpdateCarModel(ctx context.Context, id string, fields map[string]any) error {
	affected, err := s.repo.UpdateCarModel(ctx, id, fields)
	return notFoundOrInternal(affected, err, "updating car model")
}

func (s *Service) DeleteCarModel(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteCarModel(ctx, id)
	return notFoundOrInternal(affected, err, "deleting car model")
}

func (s *Service) ListProductBrands(ctx context.Context) ([]models.ProductBrand, error) {
	items, err := s.repo.ListProductBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing product brands")
	}
	return items, nil
}

type ProductBrandInput struct {
	Name    string
	Logo    string
	Country string
}

func (s *Service) CreateProductBrand(ctx context.Context, input ProductBrandInput) (*models.ProductBrand, error) {
	brand := models.ProductBrand{
		ID:      models.NewID("pb"),
		Name:    input.Name,
		Logo:    input.Logo,
		Country: input.Country,
	}
	if err := s.repo.CreateProductBrand(ctx, &brand); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product brand")
	}
	return &brand, nil
}

func (s *Service) UpdateProductBrand(ctx context.Context, id string, fields map[string]any) error {
	affected, err := s.repo.UpdateProductBrand(ctx, id, fields)
	return notFoundOrInternal(affected, err, "updating product brand")
}

func (s *Service) DeleteProductBrand(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteProductBrand(ctx, id)
	return notFoundOrInternal(affected, err, "deleting product brand")
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	items, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return items, nil
}

// CategoryNode is a category with its direct children, two levels deep.
type CategoryNode struct {
	models.Category
	Children []models.Category `json:"children"`
}

// CategoryTree groups subcategories under their roots, ordered by the
// configured sort order.
func (s *Service) CategoryTree(ctx context.Context) ([]CategoryNode, error) {
	flat, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}

	childrenByParent := make(map[string][]models.Category)
	var roots []models.Category
	for _, category := range flat {
		if category.ParentID == "" {
			roots = append(roots, category)
			continue
		}
		childrenByParent[category.ParentID] = append(childrenByParent[category.ParentID], category)
	}

	tree := make([]CategoryNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, CategoryNode{
			Category: root,
			Children: childrenByParent[root.ID],
		})
	}
	return tree, nil
}

type CategoryInput struct {
	Name     string
	ParentID string
	Image    string
	Order    int
}

func (s *Service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if input.ParentID != "" {
		exists, err := s.repo.CategoryExists(ctx, input.ParentID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking parent category")
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent category does not exist")
		}
	}

	category := models.Category{
		ID:       models.NewID("cat"),
		Name:     input.Name,
		ParentID: input.ParentID,
		Image:    input.Image,
		Order:    input.Order,
	}
	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}
	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, fields map[string]any) error {
	affected, err := s.repo.UpdateCategory(ctx, id, fields)
	return notFoundOrInternal(affected, err, "updating category")
}

// DeleteCategory removes the category along with its direct children.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteCategory(ctx, id)
	return notFoundOrInternal(affected, err, "deleting category")
}

func (s *Service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	items, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing suppliers")
	}
	return items, nil
}

func (s *Service) SupplierByID(ctx context.Context, id string) (*models.Supplier, error) {
	supplier, err := s.repo.SupplierByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading supplier")
	}
	return supplier, nil
}

type DirectoryInput struct {
	Name         string
	Description  string
	Image        string
	Location     string
	PhoneNumbers []string
}

func (s *Service) CreateSupplier(ctx context.Context, input DirectoryInput) (*models.Supplier, error) {
	supplier := models.Supplier{
		ID:           models.NewID("sup"),
		Name:         input.Name,
		Description:  input.Description,
		Image:        input.Image,
		Location:     input.Location,
		PhoneNumbers: dbtypes.StringArray(input.PhoneNumbers),
	}
	if err := s.repo.CreateSupplier(ctx, &supplier); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating supplier")
	}
	return &supplier, nil
}

func (s *Service) UpdateSupplier(ctx context.Context, id string, fields map[string]any) error {
	affected, err := s.repo.UpdateSupplier(ctx, id, fields)
	return notFoundOrInternal(affected, err, "updating supplier")
}

func (s *Service) DeleteSupplier(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteSupplier(ctx, id)
	return notFoundOrInternal(affected, err, "deleting supplier")
}

func (s *Service) ListDistributors(ctx context.Context) ([]models.Distributor, error) {
	items, err := s.repo.ListDistributors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing distributors")
	}
	return items, nil
}

func (s *Service) DistributorByID(ctx context.Context, id string) (*models.Distributor, error) {
	distributor, err := s.repo.DistributorByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "distributor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading distributor")
	}
	return distributor, nil
}

func (s *Service) CreateDistributor(ctx context.Context, input DirectoryInput) (*models.Distributor, error) {
	distributor := models.Distributor{
		ID:           models.NewID("dst"),
		Name:         input.Name,
		Description:  input.Description,
		Image:        input.Image,
		Location:     input.Location,
		PhoneNumbers: dbtypes.StringArray(input.PhoneNumbers),
	}
	if err := s.repo.CreateDistributor(ctx, &distributor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating distributor")
	}
	return &distributor, nil
}

func (s *Service) UpdateDistributor(ctx context.Context, id string, fields map[string]any) error {
	affected, err := s.repo.UpdateDistributor(ctx, id, fields)
	return notFoundOrInternal(affected, err, "updating distributor")
}

func (s *Service) DeleteDistributor(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteDistributor(ctx, id)
	return notFoundOrInternal(affected, err, "deleting distributor")
}
