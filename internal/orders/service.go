package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AhmedSalahALghzaly/lats-go/internal/cart"
	"github.com/AhmedSalahALghzaly/lats-go/internal/memberships"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// CartReader provides the checkout view of a user's cart.
type CartReader interface {
	Get(ctx context.Context, userID string) (*cart.View, error)
}

// Notifier fans order events out to users and the shop owner.
type Notifier interface {
	Notify(ctx context.Context, userID string, typ enums.NotificationType, title, message, refID string) error
	NotifyByEmail(ctx context.Context, email string, typ enums.NotificationType, title, message, refID string) error
}

// Broadcaster pushes order events to connected staff dashboards.
type Broadcaster interface {
	Broadcast(payload any)
}

type Service struct {
	repo        *Repo
	db          *db.Client
	carts       CartReader
	notifier    Notifier
	broadcaster Broadcaster
	logg        *logger.Logger

	ownerEmail   string
	shippingCost decimal.Decimal
}

func NewService(
	repo *Repo,
	client *db.Client,
	carts CartReader,
	notifier Notifier,
	broadcaster Broadcaster,
	logg *logger.Logger,
	ownerEmail string,
	shippingCost decimal.Decimal,
) *Service {
	return &Service{
		repo:         repo,
		db:           client,
		carts:        carts,
		notifier:     notifier,
		broadcaster:  broadcaster,
		logg:         logg,
		ownerEmail:   ownerEmail,
		shippingCost: shippingCost,
	}
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ORD-%d-%s", now.Unix(), suffix)
}

// Create turns the user's cart into an order. Item names, prices and
// images are copied onto the order rows so later catalog edits never
// change past orders. The order, the cart wipe and the admin revenue
// shares commit in one transaction.
func (s *Service) Create(ctx context.Context, userID string, address models.DeliveryAddress) (*models.Order, error) {
	view, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var items []models.OrderItem
	subtotal := decimal.Zero
	for _, line := range view.Lines {
		if line.Product == nil {
			continue
		}
		image := ""
		if len(line.Product.Images) > 0 {
			image = line.Product.Images[0]
		}
		item := models.OrderItem{
			ID:        models.NewID("oit"),
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.Price,
			Quantity:  line.Item.Quantity,
			Image:     image,
			AdminID:   line.Product.AddedByAdminID,
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	now := time.Now()
	order := models.Order{
		ID:          models.NewID("ord"),
		OrderNumber: newOrderNumber(now),
		UserID:      userID,
		Status:      enums.OrderStatusPending,
		Subtotal:    subtotal,
		Shipping:    s.shippingCost,
		Total:       subtotal.Add(s.shippingCost),
		Address:     address,
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if item.AdminID == "" {
				continue
			}
			if err := memberships.AddRevenueTx(tx, item.AdminID, item.LineTotal()); err != nil {
				return err
			}
		}
		return cart.ClearItemsTx(tx, view.CartID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}
	order.Items = items

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total.String(),
	}), "order placed")

	if s.notifier != nil {
		if err := s.notifier.NotifyByEmail(ctx, s.ownerEmail, enums.NotificationOrderPlaced,
			"New order placed",
			fmt.Sprintf("Order %s for %s", order.OrderNumber, order.Total.StringFixed(2)),
			order.ID); err != nil {
			s.logg.Warn(ctx, "owner order notification failed")
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(map[string]any{
			"type": "order_placed",
			"payload": map[string]any{
				"order_id":     order.ID,
				"order_number": order.OrderNumber,
				"total":        order.Total,
			},
		})
	}

	return &order, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	items, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return items, nil
}

type ListResult struct {
	Items []models.Order `json:"items"`
	Total int64          `json:"total"`
}

func (s *Service) ListAll(ctx context.Context, status enums.OrderStatus, limit, offset int) (*ListResult, error) {
	if status != "" && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	items, total, err := s.repo.ListAll(ctx, status, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return &ListResult{Items: items, Total: total}, nil
}

// Get returns the order when the caller owns it or is staff.
func (s *Service) Get(ctx context.Context, id, callerID string, callerRole enums.Role) (*models.Order, error) {
	order, err := s.repo.ByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if order.UserID != callerID && !callerRole.AtLeast(enums.RoleAdmin) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return order, nil
}

// UpdateStatus moves the order to a new status, then notifies the buyer
// and pushes an order_update frame to connected clients.
func (s *Service) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.ByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	if _, err := s.repo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	order.Status = status

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, order.UserID, enums.NotificationOrderStatus,
			"Order update",
			fmt.Sprintf("Order %s is now %s", order.OrderNumber, status),
			order.ID); err != nil {
			s.logg.Warn(ctx, "order status notification failed")
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(map[string]any{
			"type":     "order_update",
			"order_id": order.ID,
			"status":   status,
		})
	}

	return order, nil
}
