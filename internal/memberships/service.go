package memberships

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// Notifier lets membership changes reach the affected user.
type Notifier interface {
	NotifyByEmail(ctx context.Context, email string, typ enums.NotificationType, title, message, refID string) error
}

type Service struct {
	repo       *Repo
	db         *db.Client
	notifier   Notifier
	logg       *logger.Logger
	ownerEmail string
}

func NewService(repo *Repo, client *db.Client, notifier Notifier, logg *logger.Logger, ownerEmail string) *Service {
	return &Service{repo: repo, db: client, notifier: notifier, logg: logg, ownerEmail: ownerEmail}
}

// ListPartners prefixes the configured owner so staff panels always show
// who holds the top role; the owner row is synthetic and cannot be
// deleted.
func (s *Service) ListPartners(ctx context.Context) ([]models.Partner, error) {
	items, err := s.repo.ListPartners(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing partners")
	}
	if s.ownerEmail == "" {
		return items, nil
	}
	return append([]models.Partner{{
		ID:    "owner",
		Email: s.ownerEmail,
		Name:  "Owner",
	}}, items...), nil
}

func (s *Service) CreatePartner(ctx context.Context, email, name string) (*models.Partner, error) {
	partner, err := s.repo.CreatePartner(ctx, email, name)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "partner already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating partner")
	}
	return partner, nil
}

func (s *Service) DeletePartner(ctx context.Context, id string) error {
	affected, err := s.repo.DeletePartner(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting partner")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
	}
	return nil
}

// AdminIDByEmail resolves an actor's admin row for revenue attribution.
// Returns empty with no error when the email is not an admin.
func (s *Service) AdminIDByEmail(ctx context.Context, email string) (string, error) {
	admin, err := s.repo.AdminByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving admin by email")
	}
	return admin.ID, nil
}

func (s *Service) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	items, err := s.repo.ListAdmins(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing admins")
	}
	return items, nil
}

func (s *Service) CreateAdmin(ctx context.Context, email, name string) (*models.Admin, error) {
	admin, err := s.repo.CreateAdmin(ctx, email, name)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "admin already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating admin")
	}
	return admin, nil
}

func (s *Service) DeleteAdmin(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteAdmin(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting admin")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
	}
	return nil
}

// SettleRevenue zeroes the admin's accumulated revenue and records the
// payout, both inside one transaction.
func (s *Service) SettleRevenue(ctx context.Context, adminID string) (*models.Settlement, error) {
	admin, err := s.repo.AdminByID(ctx, adminID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading admin")
	}

	if admin.Revenue.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no revenue to settle")
	}

	settlement := models.Settlement{
		ID:      models.NewID("stl"),
		AdminID: admin.ID,
		Amount:  admin.Revenue,
	}
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&settlement).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).
			Where("added_by_admin_id = ? AND settled = ?", admin.ID, false).
			Update("settled", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Admin{}).
			Where("id = ?", admin.ID).
			Update("revenue", decimal.Zero).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "settling revenue")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"admin_id": admin.ID,
		"amount":   settlement.Amount.String(),
	}), "admin revenue settled")

	if s.notifier != nil {
		if err := s.notifier.NotifyByEmail(ctx, admin.Email, enums.NotificationGeneral,
			"Revenue settled", "Your revenue of "+settlement.Amount.String()+" has been paid out.",
			settlement.ID); err != nil {
			s.logg.Warn(ctx, "settlement notification failed")
		}
	}

	return &settlement, nil
}

// ClearRevenue zeroes an admin's accrued revenue without recording a
// settlement, the owner's manual correction path.
func (s *Service) ClearRevenue(ctx context.Context, adminID string) error {
	result := s.db.Gorm(ctx).Model(&models.Admin{}).
		Where("id = ?", adminID).
		Update("revenue", decimal.Zero)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "clearing revenue")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
	}
	return nil
}

// AdminStats pairs an admin row with catalog and sales aggregates for the
// staff dashboard.
type AdminStats struct {
	models.Admin
	ProductCount int64 `json:"product_count"`
	UnitsSold    int64 `json:"units_sold"`
}

func (s *Service) ListAdminStats(ctx context.Context) ([]AdminStats, error) {
	admins, err := s.repo.ListAdmins(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing admins")
	}

	type countRow struct {
		AdminID string
		Total   int64
	}

	productCounts := map[string]int64{}
	var rows []countRow
	err = s.db.Gorm(ctx).Model(&models.Product{}).
		Select("added_by_admin_id AS admin_id, COUNT(*) AS total").
		Where("added_by_admin_id <> ''").
		Group("added_by_admin_id").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting admin products")
	}
	for _, row := range rows {
		productCounts[row.AdminID] = row.Total
	}

	unitCounts := map[string]int64{}
	rows = rows[:0]
	err = s.db.Gorm(ctx).Model(&models.OrderItem{}).
		Select("admin_id, COALESCE(SUM(quantity), 0) AS total").
		Where("admin_id <> ''").
		Group("admin_id").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting admin sales")
	}
	for _, row := range rows {
		unitCounts[row.AdminID] = row.Total
	}

	stats := make([]AdminStats, 0, len(admins))
	for _, admin := range admins {
		stats = append(stats, AdminStats{
			Admin:        admin,
			ProductCount: productCounts[admin.ID],
			UnitsSold:    unitCounts[admin.ID],
		})
	}
	return stats, nil
}

func (s *Service) ListSettlements(ctx context.Context, adminID string) ([]models.Settlement, error) {
	items, err := s.repo.ListSettlements(ctx, adminID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing settlements")
	}
	return items, nil
}

func (s *Service) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	items, err := s.repo.ListSubscribers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing subscribers")
	}
	return items, nil
}

type SubscriberInput struct {
	Email    string
	Name     string
	Phone    string
	Shop     string
	Location string
}

func (s *Service) CreateSubscriber(ctx context.Context, input SubscriberInput) (*models.Subscriber, error) {
	sub := models.Subscriber{
		ID:       models.NewID("sub"),
		Email:    input.Email,
		Name:     input.Name,
		Phone:    input.Phone,
		Shop:     input.Shop,
		Location: input.Location,
	}
	if err := s.repo.CreateSubscriber(ctx, &sub); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "subscriber already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating subscriber")
	}
	return &sub, nil
}

func (s *Service) DeleteSubscriber(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteSubscriber(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting subscriber")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "subscriber not found")
	}
	return nil
}

func (s *Service) ListRequests(ctx context.Context, status enums.SubscriptionRequestStatus) ([]models.SubscriptionRequest, error) {
	if status != "" && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid request status")
	}
	items, err := s.repo.ListRequests(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing subscription requests")
	}
	return items, nil
}

func (s *Service) CreateRequest(ctx context.Context, input SubscriberInput) (*models.SubscriptionRequest, error) {
	request := models.SubscriptionRequest{
		ID:       models.NewID("srq"),
		Email:    input.Email,
		Name:     input.Name,
		Phone:    input.Phone,
		Shop:     input.Shop,
		Location: input.Location,
		Status:   enums.SubscriptionRequestPending,
	}
	if err := s.repo.CreateRequest(ctx, &request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating subscription request")
	}

	if s.notifier != nil && s.ownerEmail != "" {
		if err := s.notifier.NotifyByEmail(ctx, s.ownerEmail, enums.NotificationSubscriptionRequest,
			"New subscription request", request.Name+" ("+request.Shop+") requested a wholesale subscription.",
			request.ID); err != nil {
			s.logg.Warn(ctx, "subscription request notification failed")
		}
	}
	return &request, nil
}

// ApproveRequest promotes the requester to subscriber and notifies them.
// Re-approving a handled request is rejected.
func (s *Service) ApproveRequest(ctx context.Context, id string) (*models.Subscriber, error) {
	request, err := s.repo.RequestByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading subscription request")
	}
	if request.Status != enums.SubscriptionRequestPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "request already handled")
	}

	sub := models.Subscriber{
		ID:       models.NewID("sub"),
		Email:    request.Email,
		Name:     request.Name,
		Phone:    request.Phone,
		Shop:     request.Shop,
		Location: request.Location,
	}
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return tx.Model(&models.SubscriptionRequest{}).
			Where("id = ?", request.ID).
			Update("status", enums.SubscriptionRequestApproved).Error
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "subscriber already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approving subscription request")
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyByEmail(ctx, request.Email, enums.NotificationSubscription,
			"Subscription approved", "Your wholesale subscription is now active.", sub.ID); err != nil {
			s.logg.Warn(ctx, "subscription approval notification failed")
		}
	}
	return &sub, nil
}

func (s *Service) RejectRequest(ctx context.Context, id string) error {
	request, err := s.repo.RequestByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "subscription request not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading subscription request")
	}
	if request.Status != enums.SubscriptionRequestPending {
		return pkgerrors.New(pkgerrors.CodeConflict, "request already handled")
	}

	err = s.db.Gorm(ctx).Model(&models.SubscriptionRequest{}).
		Where("id = ?", request.ID).
		Update("status", enums.SubscriptionRequestRejected).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rejecting subscription request")
	}
	return nil
}
