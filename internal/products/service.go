package products

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	dbtypes "github.com/AhmedSalahALghzaly/lats-go/pkg/db/types"
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

type ListResult struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

func (s *Service) List(ctx context.Context, filter Filter) (*ListResult, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return &ListResult{Items: items, Total: total}, nil
}

// Get returns a product. Hidden products stay reachable by direct id so
// staff previews and old order links keep working.
func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.ByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

// ByIDs returns the visible subset of the requested products.
func (s *Service) ByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	items, err := s.repo.ByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading products")
	}
	return items, nil
}

type Input struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	Stock          int
	PartNumber     string
	CategoryID     string
	ProductBrandID string
	CarModelIDs    []string
	Images         []string
	Hidden         bool
}

// Create stores a product, stamping the creating admin for revenue
// attribution at checkout. adminID is empty when an owner or partner
// creates the product.
func (s *Service) Create(ctx context.Context, input Input, adminID string) (*models.Product, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	product := models.Product{
		ID:             models.NewID("prod"),
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Stock:          input.Stock,
		PartNumber:     input.PartNumber,
		CategoryID:     input.CategoryID,
		ProductBrandID: input.ProductBrandID,
		CarModelIDs:    dbtypes.StringArray(input.CarModelIDs),
		Images:         dbtypes.StringArray(input.Images),
		Hidden:         input.Hidden,
		AddedByAdminID: adminID,
	}
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return &product, nil
}

func (s *Service) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *Service) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	return s.Update(ctx, id, map[string]any{"price": price})
}

func (s *Service) SetHidden(ctx context.Context, id string, hidden bool) error {
	return s.Update(ctx, id, map[string]any{"hidden": hidden})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
