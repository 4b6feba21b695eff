package memberships

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

type fakeNotifier struct {
	emails []string
}

func (n *fakeNotifier) NotifyByEmail(_ context.Context, email string, _ enums.NotificationType, _, _, _ string) error {
	n.emails = append(n.emails, email)
	return nil
}

func newTestService(t *testing.T) (*Service, *db.Client, *fakeNotifier) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.Partner{}, &models.Admin{}, &models.Subscriber{},
		&models.SubscriptionRequest{}, &models.Settlement{},
		&models.Product{}, &models.OrderItem{},
	))

	client := db.FromGorm(gdb)
	notifier := &fakeNotifier{}
	svc := NewService(NewRepo(client), client, notifier, logger.New(logger.Options{ServiceName: "test"}), "")
	return svc, client, notifier
}

func TestCreatePartnerDuplicate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePartner(ctx, "Partner@Example.com", "P")
	require.NoError(t, err)

	_, err = svc.CreatePartner(ctx, "partner@example.com", "P2")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestDeletePartnerNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.DeletePartner(context.Background(), "ptr_missing")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSettleRevenue(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, "staff@example.com", "Staff")
	require.NoError(t, err)

	require.NoError(t, client.Gorm(ctx).Model(&models.Admin{}).
		Where("id = ?", admin.ID).
		Update("revenue", decimal.RequireFromString("350.50")).Error)

	settlement, err := svc.SettleRevenue(ctx, admin.ID)
	require.NoError(t, err)
	require.True(t, settlement.Amount.Equal(decimal.RequireFromString("350.50")))

	var reloaded models.Admin
	require.NoError(t, client.Gorm(ctx).Where("id = ?", admin.ID).First(&reloaded).Error)
	require.True(t, reloaded.Revenue.IsZero())

	history, err := svc.ListSettlements(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestSettleRevenueMarksProductsSettled(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, "staff@example.com", "Staff")
	require.NoError(t, err)

	mine := models.Product{ID: "prd_1", Name: "Oil filter", AddedByAdminID: admin.ID}
	other := models.Product{ID: "prd_2", Name: "Brake pad", AddedByAdminID: "adm_other"}
	require.NoError(t, client.Gorm(ctx).Create(&mine).Error)
	require.NoError(t, client.Gorm(ctx).Create(&other).Error)

	require.NoError(t, client.Gorm(ctx).Model(&models.Admin{}).
		Where("id = ?", admin.ID).
		Update("revenue", decimal.RequireFromString("10")).Error)

	_, err = svc.SettleRevenue(ctx, admin.ID)
	require.NoError(t, err)

	var reloaded models.Product
	require.NoError(t, client.Gorm(ctx).Where("id = ?", mine.ID).First(&reloaded).Error)
	require.True(t, reloaded.Settled)

	var reloadedOther models.Product
	require.NoError(t, client.Gorm(ctx).Where("id = ?", other.ID).First(&reloadedOther).Error)
	require.False(t, reloadedOther.Settled)
}

func TestClearRevenue(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, "staff@example.com", "Staff")
	require.NoError(t, err)
	require.NoError(t, client.Gorm(ctx).Model(&models.Admin{}).
		Where("id = ?", admin.ID).
		Update("revenue", decimal.RequireFromString("99.99")).Error)

	require.NoError(t, svc.ClearRevenue(ctx, admin.ID))

	var reloaded models.Admin
	require.NoError(t, client.Gorm(ctx).Where("id = ?", admin.ID).First(&reloaded).Error)
	require.True(t, reloaded.Revenue.IsZero())

	// No settlement row is written on a clear.
	history, err := svc.ListSettlements(ctx, admin.ID)
	require.NoError(t, err)
	require.Empty(t, history)

	err = svc.ClearRevenue(ctx, "adm_missing")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListAdminStats(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, "staff@example.com", "Staff")
	require.NoError(t, err)

	require.NoError(t, client.Gorm(ctx).Create(&models.Product{
		ID: "prd_1", Name: "Oil filter", AddedByAdminID: admin.ID,
	}).Error)
	require.NoError(t, client.Gorm(ctx).Create(&models.Product{
		ID: "prd_2", Name: "Air filter", AddedByAdminID: admin.ID,
	}).Error)
	require.NoError(t, client.Gorm(ctx).Create(&models.OrderItem{
		ID: "oit_1", OrderID: "ord_1", ProductID: "prd_1", Name: "Oil filter",
		UnitPrice: decimal.RequireFromString("50"), Quantity: 3, AdminID: admin.ID,
	}).Error)

	stats, err := svc.ListAdminStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, admin.ID, stats[0].ID)
	require.EqualValues(t, 2, stats[0].ProductCount)
	require.EqualValues(t, 3, stats[0].UnitsSold)
}

func TestSettleRevenueNothingToSettle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, "staff@example.com", "Staff")
	require.NoError(t, err)

	_, err = svc.SettleRevenue(ctx, admin.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestApproveRequestCreatesSubscriberAndNotifies(t *testing.T) {
	svc, _, notifier := newTestService(t)
	ctx := context.Background()

	request, err := svc.CreateRequest(ctx, SubscriberInput{
		Email: "shop@example.com", Name: "Shop", Phone: "0100", Shop: "Auto Shop", Location: "Cairo",
	})
	require.NoError(t, err)
	require.Equal(t, enums.SubscriptionRequestPending, request.Status)

	sub, err := svc.ApproveRequest(ctx, request.ID)
	require.NoError(t, err)
	require.Equal(t, "shop@example.com", sub.Email)
	require.Equal(t, []string{"shop@example.com"}, notifier.emails)

	subs, err := svc.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	// Re-approving a handled request must fail.
	_, err = svc.ApproveRequest(ctx, request.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRejectRequest(t *testing.T) {
	svc, _, notifier := newTestService(t)
	ctx := context.Background()

	request, err := svc.CreateRequest(ctx, SubscriberInput{Email: "shop@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.RejectRequest(ctx, request.ID))
	require.Empty(t, notifier.emails)

	pending, err := svc.ListRequests(ctx, enums.SubscriptionRequestPending)
	require.NoError(t, err)
	require.Empty(t, pending)

	rejected, err := svc.ListRequests(ctx, enums.SubscriptionRequestRejected)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
}
