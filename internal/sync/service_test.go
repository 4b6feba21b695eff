package sync

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

func newTestService(t *testing.T) (*Service, *db.Client) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.CarBrand{}, &models.CarModel{}, &models.ProductBrand{},
		&models.Category{}, &models.Product{}, &models.Supplier{}, &models.Distributor{},
	))
	client := db.FromGorm(gdb)
	return NewService(client, logger.New(logger.Options{ServiceName: "test"})), client
}

func createBrand(t *testing.T, client *db.Client, name string) *models.CarBrand {
	t.Helper()
	brand := models.CarBrand{ID: models.NewID("cb"), Name: name}
	require.NoError(t, client.Gorm(context.Background()).Create(&brand).Error)
	return &brand
}

func TestPullFromZeroReturnsEverything(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	createBrand(t, client, "Toyota")
	createBrand(t, client, "Mazda")
	product := models.Product{ID: models.NewID("prod"), Name: "Oil Filter", Price: decimal.RequireFromString("120")}
	require.NoError(t, client.Gorm(ctx).Create(&product).Error)

	result, err := svc.Pull(ctx, 0, nil)
	require.NoError(t, err)

	require.Len(t, result.Changes, len(DefaultTables()))
	require.Len(t, result.Changes["car_brands"].Created, 2)
	require.Len(t, result.Changes["products"].Created, 1)
	require.Empty(t, result.Changes["car_brands"].Updated)
	require.Empty(t, result.Changes["car_brands"].Deleted)
	require.Positive(t, result.Timestamp)
}

func TestPullSplitsCreatedUpdatedDeleted(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	stays := createBrand(t, client, "Toyota")
	changed := createBrand(t, client, "Mazda")
	removed := createBrand(t, client, "Mitsubishi")

	first, err := svc.Pull(ctx, 0, []string{"car_brands"})
	require.NoError(t, err)
	require.Len(t, first.Changes["car_brands"].Created, 3)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, client.Gorm(ctx).Model(&models.CarBrand{}).
		Where("id = ?", changed.ID).Update("name", "Mazda Motors").Error)
	require.NoError(t, client.Gorm(ctx).Where("id = ?", removed.ID).Delete(&models.CarBrand{}).Error)
	fresh := createBrand(t, client, "Nissan")

	second, err := svc.Pull(ctx, first.Timestamp, []string{"car_brands"})
	require.NoError(t, err)

	delta := second.Changes["car_brands"]
	require.Len(t, delta.Created, 1)
	require.Equal(t, fresh.ID, delta.Created[0].(models.CarBrand).ID)
	require.Len(t, delta.Updated, 1)
	require.Equal(t, changed.ID, delta.Updated[0].(models.CarBrand).ID)
	require.Equal(t, []string{removed.ID}, delta.Deleted)

	// The unchanged brand appears nowhere.
	for _, row := range delta.Created {
		require.NotEqual(t, stays.ID, row.(models.CarBrand).ID)
	}
	for _, row := range delta.Updated {
		require.NotEqual(t, stays.ID, row.(models.CarBrand).ID)
	}
}

func TestSecondPullWithNoChangesIsEmpty(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	createBrand(t, client, "Toyota")

	first, err := svc.Pull(ctx, 0, []string{"car_brands"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := svc.Pull(ctx, first.Timestamp, []string{"car_brands"})
	require.NoError(t, err)

	delta := second.Changes["car_brands"]
	require.Empty(t, delta.Created)
	require.Empty(t, delta.Updated)
	require.Empty(t, delta.Deleted)
	require.GreaterOrEqual(t, second.Timestamp, first.Timestamp)
}

func TestCreateAndDeleteWithinWindowSurfacesOnlyTombstone(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	first, err := svc.Pull(ctx, 0, []string{"car_brands"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	shortLived := createBrand(t, client, "Ephemeral")
	require.NoError(t, client.Gorm(ctx).Where("id = ?", shortLived.ID).Delete(&models.CarBrand{}).Error)

	second, err := svc.Pull(ctx, first.Timestamp, []string{"car_brands"})
	require.NoError(t, err)

	delta := second.Changes["car_brands"]
	require.Empty(t, delta.Created)
	require.Empty(t, delta.Updated)
	require.Equal(t, []string{shortLived.ID}, delta.Deleted)
}

func TestPullResultWireFormat(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	createBrand(t, client, "Toyota")

	result, err := svc.Pull(ctx, 0, []string{"car_brands"})
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var wire map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &wire))
	require.Contains(t, wire, "timestamp")
	require.Contains(t, wire, "changes")

	var changes map[string]TableDelta
	require.NoError(t, json.Unmarshal(wire["changes"], &changes))
	require.Len(t, changes["car_brands"].Created, 1)
}

func TestPullUnknownTable(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Pull(context.Background(), 0, []string{"orders"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestPullNegativeWatermark(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Pull(context.Background(), -1, nil)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
