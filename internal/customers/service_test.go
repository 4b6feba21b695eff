package customers

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

func newTestService(t *testing.T) (*Service, *db.Client) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}))

	client := db.FromGorm(gdb)
	return NewService(client, logger.New(logger.Options{ServiceName: "test"})), client
}

func seedOrder(t *testing.T, client *db.Client, id, userID, total string) {
	t.Helper()
	require.NoError(t, client.Gorm(context.Background()).Create(&models.Order{
		ID:          id,
		OrderNumber: id,
		UserID:      userID,
		Status:      enums.OrderStatusPending,
		Subtotal:    decimal.RequireFromString(total),
		Shipping:    decimal.Zero,
		Total:       decimal.RequireFromString(total),
	}).Error)
}

func TestListAggregatesOrders(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	require.NoError(t, client.Gorm(ctx).Create(&models.User{ID: "usr_1", Email: "a@example.com"}).Error)
	require.NoError(t, client.Gorm(ctx).Create(&models.User{ID: "usr_2", Email: "b@example.com"}).Error)
	seedOrder(t, client, "ord_1", "usr_1", "100")
	seedOrder(t, client, "ord_2", "usr_1", "250")

	customers, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	byID := make(map[string]Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	require.EqualValues(t, 2, byID["usr_1"].OrderCount)
	require.True(t, byID["usr_1"].TotalSpent.Equal(decimal.RequireFromString("350")))
	require.Zero(t, byID["usr_2"].OrderCount)
	require.True(t, byID["usr_2"].TotalSpent.IsZero())
}

func TestGetReturnsOrderHistory(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	require.NoError(t, client.Gorm(ctx).Create(&models.User{ID: "usr_1", Email: "a@example.com"}).Error)
	seedOrder(t, client, "ord_1", "usr_1", "100")
	seedOrder(t, client, "ord_2", "usr_1", "40")

	detail, err := svc.Get(ctx, "usr_1")
	require.NoError(t, err)
	require.Len(t, detail.Orders, 2)
	require.EqualValues(t, 2, detail.OrderCount)
	require.True(t, detail.TotalSpent.Equal(decimal.RequireFromString("140")))
}

func TestGetUnknownCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "usr_missing")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
