package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// ProductReader is the slice of the products domain the cart needs.
type ProductReader interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	ByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

type Service struct {
	repo     *Repo
	products ProductReader
	logg     *logger.Logger
}

func NewService(repo *Repo, products ProductReader, logg *logger.Logger) *Service {
	return &Service{repo: repo, products: products, logg: logg}
}

// Line is a cart item joined with its current product snapshot.
type Line struct {
	Item    models.CartItem `json:"item"`
	Product *models.Product `json:"product,omitempty"`
}

type View struct {
	CartID   string          `json:"cart_id"`
	Lines    []Line          `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Get assembles the cart view. Lines whose product has since been hidden
// or deleted keep their row but carry no product and no subtotal share.
func (s *Service) Get(ctx context.Context, userID string) (*View, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	available, err := s.products.ByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart products")
	}
	byID := make(map[string]models.Product, len(available))
	for _, product := range available {
		byID[product.ID] = product
	}

	view := View{CartID: cart.ID, Lines: make([]Line, 0, len(cart.Items)), Subtotal: decimal.Zero}
	for _, item := range cart.Items {
		line := Line{Item: item}
		if product, ok := byID[item.ProductID]; ok {
			p := product
			line.Product = &p
			view.Subtotal = view.Subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		view.Lines = append(view.Lines, line)
	}
	return &view, nil
}

// Add puts a product in the cart, incrementing the quantity when the
// product is already there.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return err
	}
	if product.Hidden {
		return pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	existing, err := s.repo.ItemByProduct(ctx, cart.ID, productID)
	if err == nil {
		if err := s.repo.SetQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart item")
		}
		return nil
	}
	if !db.IsNotFound(err) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart item")
	}

	item := models.CartItem{
		ID:        models.NewID("cti"),
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart item")
	}
	return nil
}

// SetQuantity overwrites the quantity. Zero or negative removes the line.
// Updating a product that is not in the cart is a no-op.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	item, err := s.repo.ItemByProduct(ctx, cart.ID, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart item")
	}

	if quantity <= 0 {
		if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart item")
		}
		return nil
	}

	if err := s.repo.SetQuantity(ctx, item.ID, quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart item")
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	return s.SetQuantity(ctx, userID, productID, 0)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}
