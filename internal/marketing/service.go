package marketing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	dbtypes "github.com/AhmedSalahALghzaly/lats-go/pkg/db/types"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// ProductReader resolves bundle members and promotion targets.
type ProductReader interface {
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

type PromotionInput struct {
	Type       enums.PromotionType
	Title      string
	Image      string
	ProductID  string
	CarModelID string
	Order      int
}

// CreatePromotion stores a slider or banner entry. Exactly one target is
// required, a product or a car model.
func (s *Service) CreatePromotion(ctx context.Context, input PromotionInput) (*models.Promotion, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion type must be slider or banner")
	}
	if (input.ProductID == "") == (input.CarModelID == "") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion must target exactly one of product or car model")
	}

	promotion := models.Promotion{
		ID:         models.NewID("prm"),
		Type:       input.Type,
		Title:      input.Title,
		Image:      input.Image,
		ProductID:  input.ProductID,
		CarModelID: input.CarModelID,
		Active:     true,
		Order:      input.Order,
	}
	if err := s.db.Gorm(ctx).Create(&promotion).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating promotion")
	}
	return &promotion, nil
}

// ListPromotions returns promotions of the given type. activeOnly is the
// shopper view; staff pass false to manage inactive entries too.
func (s *Service) ListPromotions(ctx context.Context, typ enums.PromotionType, activeOnly bool) ([]models.Promotion, error) {
	query := s.db.Gorm(ctx).Order("sort_order ASC, created_at ASC")
	if typ != "" {
		if !typ.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid promotion type")
		}
		query = query.Where("type = ?", typ)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var items []models.Promotion
	if err := query.Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing promotions")
	}
	return items, nil
}

func (s *Service) GetPromotion(ctx context.Context, id string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := s.db.Gorm(ctx).Where("id = ?", id).First(&promotion).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading promotion")
	}
	return &promotion, nil
}

func (s *Service) UpdatePromotion(ctx context.Context, id string, fields map[string]any) error {
	result := s.db.Gorm(ctx).Model(&models.Promotion{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "updating promotion")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
	}
	return nil
}

// ReorderPromotions assigns sort order following the given id sequence.
func (s *Service) ReorderPromotions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no promotion ids given")
	}
	for position, id := range ids {
		err := s.db.Gorm(ctx).Model(&models.Promotion{}).
			Where("id = ?", id).
			Update("sort_order", position).Error
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reordering promotions")
		}
	}
	return nil
}

func (s *Service) DeletePromotion(ctx context.Context, id string) error {
	result := s.db.Gorm(ctx).Where("id = ?", id).Delete(&models.Promotion{})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "deleting promotion")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
	}
	return nil
}

type BundleInput struct {
	Title           string
	Description     string
	Image           string
	ProductIDs      []string
	DiscountPercent decimal.Decimal
}

func (s *Service) CreateBundle(ctx context.Context, input BundleInput) (*models.BundleOffer, error) {
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bundle title is required")
	}
	if len(input.ProductIDs) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bundle needs at least two products")
	}
	hundred := decimal.NewFromInt(100)
	if input.DiscountPercent.IsNegative() || input.DiscountPercent.GreaterThan(hundred) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100")
	}

	bundle := models.BundleOffer{
		ID:              models.NewID("bnd"),
		Title:           input.Title,
		Description:     input.Description,
		Image:           input.Image,
		ProductIDs:      dbtypes.StringArray(input.ProductIDs),
		DiscountPercent: input.DiscountPercent,
		Active:          true,
	}
	if err := s.db.Gorm(ctx).Create(&bundle).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating bundle offer")
	}
	return &bundle, nil
}

// BundleView is a bundle with its resolved products and computed totals.
type BundleView struct {
	models.BundleOffer
	Products        []models.Product `json:"products"`
	OriginalTotal   decimal.Decimal  `json:"original_total"`
	DiscountedTotal decimal.Decimal  `json:"discounted_total"`
}

// ListBundles resolves products and prices each bundle. Hidden or deleted
// members simply drop out of the computed totals.
func (s *Service) ListBundles(ctx context.Context, activeOnly bool) ([]BundleView, error) {
	query := s.db.Gorm(ctx).Order("created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var bundles []models.BundleOffer
	if err := query.Find(&bundles).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing bundle offers")
	}

	hundred := decimal.NewFromInt(100)
	views := make([]BundleView, 0, len(bundles))
	for _, bundle := range bundles {
		resolved, err := s.products.ByIDs(ctx, bundle.ProductIDs)
		if err != nil {
			return nil, err
		}
		original := decimal.Zero
		for _, product := range resolved {
			original = original.Add(product.Price)
		}
		factor := hundred.Sub(bundle.DiscountPercent).Div(hundred)
		views = append(views, BundleView{
			BundleOffer:     bundle,
			Products:        resolved,
			OriginalTotal:   original,
			DiscountedTotal: original.Mul(factor).Round(2),
		})
	}
	return views, nil
}

// GetBundle resolves one bundle with its member products and totals.
func (s *Service) GetBundle(ctx context.Context, id string) (*BundleView, error) {
	var bundle models.BundleOffer
	if err := s.db.Gorm(ctx).Where("id = ?", id).First(&bundle).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bundle offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading bundle offer")
	}

	resolved, err := s.products.ByIDs(ctx, bundle.ProductIDs)
	if err != nil {
		return nil, err
	}
	original := decimal.Zero
	for _, product := range resolved {
		original = original.Add(product.Price)
	}
	hundred := decimal.NewFromInt(100)
	factor := hundred.Sub(bundle.DiscountPercent).Div(hundred)
	return &BundleView{
		BundleOffer:     bundle,
		Products:        resolved,
		OriginalTotal:   original,
		DiscountedTotal: original.Mul(factor).Round(2),
	}, nil
}

func (s *Service) UpdateBundle(ctx context.Context, id string, fields map[string]any) error {
	result := s.db.Gorm(ctx).Model(&models.BundleOffer{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "updating bundle offer")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "bundle offer not found")
	}
	return nil
}

func (s *Service) DeleteBundle(ctx context.Context, id string) error {
	result := s.db.Gorm(ctx).Where("id = ?", id).Delete(&models.BundleOffer{})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "deleting bundle offer")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "bundle offer not found")
	}
	return nil
}

// HomeSlider is the aggregate payload for the storefront landing screen.
type HomeSlider struct {
	Sliders []models.Promotion `json:"sliders"`
	Banners []models.Promotion `json:"banners"`
	Bundles []BundleView       `json:"bundles"`
}

func (s *Service) HomeSlider(ctx context.Context) (*HomeSlider, error) {
	sliders, err := s.ListPromotions(ctx, enums.PromotionSlider, true)
	if err != nil {
		return nil, err
	}
	banners, err := s.ListPromotions(ctx, enums.PromotionBanner, true)
	if err != nil {
		return nil, err
	}
	bundles, err := s.ListBundles(ctx, true)
	if err != nil {
		return nil, err
	}
	return &HomeSlider{Sliders: sliders, Banners: banners, Bundles: bundles}, nil
}
