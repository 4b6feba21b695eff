package products

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
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Product{}, &models.Category{}, &models.CarModel{}))
	return NewService(NewRepo(db.FromGorm(gdb)), logger.New(logger.Options{ServiceName: "test"}))
}

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestListExcludesHiddenByDefault(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	visible, err := svc.Create(ctx, Input{Name: "Oil Filter", Price: price("120")}, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Name: "Secret Part", Price: price("99"), Hidden: true}, "")
	require.NoError(t, err)

	result, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	require.Equal(t, visible.ID, result.Items[0].ID)

	all, err := svc.List(ctx, Filter{IncludeHidden: true})
	require.NoError(t, err)
	require.EqualValues(t, 2, all.Total)
}

func TestHiddenProductStillReachableByID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	hidden, err := svc.Create(ctx, Input{Name: "Secret Part", Price: price("99"), Hidden: true}, "")
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, hidden.ID)
	require.NoError(t, err)
	require.True(t, loaded.Hidden)
}

func TestCarModelFilterMatchesArrayMembership(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	corolla, err := svc.Create(ctx, Input{
		Name: "Corolla Brake Pads", Price: price("450"),
		CarModelIDs: []string{"cm_corolla", "cm_yaris"},
	}, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{
		Name: "Lancer Brake Pads", Price: price("430"),
		CarModelIDs: []string{"cm_lancer"},
	}, "")
	require.NoError(t, err)

	result, err := svc.List(ctx, Filter{CarModelID: "cm_corolla"})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	require.Equal(t, corolla.ID, result.Items[0].ID)
}

func TestCarBrandFilterSpansModels(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	gdb := svc.repo.db.Gorm(ctx)
	require.NoError(t, gdb.Create(&models.CarModel{ID: "cm_corolla", CarBrandID: "cb_toyota", Name: "Corolla"}).Error)
	require.NoError(t, gdb.Create(&models.CarModel{ID: "cm_lancer", CarBrandID: "cb_mitsubishi", Name: "Lancer"}).Error)

	toyota, err := svc.Create(ctx, Input{
		Name: "Corolla Brake Pads", Price: price("450"),
		CarModelIDs: []string{"cm_corolla"},
	}, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{
		Name: "Lancer Brake Pads", Price: price("430"),
		CarModelIDs: []string{"cm_lancer"},
	}, "")
	require.NoError(t, err)

	result, err := svc.List(ctx, Filter{CarBrandID: "cb_toyota"})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	require.Equal(t, toyota.ID, result.Items[0].ID)
}

func TestCategoryFilterIncludesChildren(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	gdb := svc.repo.db.Gorm(ctx)
	require.NoError(t, gdb.Create(&models.Category{ID: "cat_engine", Name: "Engine"}).Error)
	require.NoError(t, gdb.Create(&models.Category{ID: "cat_filters", Name: "Filters", ParentID: "cat_engine"}).Error)

	_, err := svc.Create(ctx, Input{Name: "Oil Filter", Price: price("120"), CategoryID: "cat_filters"}, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Name: "Timing Belt", Price: price("600"), CategoryID: "cat_engine"}, "")
	require.NoError(t, err)

	parent, err := svc.List(ctx, Filter{CategoryID: "cat_engine"})
	require.NoError(t, err)
	require.EqualValues(t, 2, parent.Total)

	child, err := svc.List(ctx, Filter{CategoryID: "cat_filters"})
	require.NoError(t, err)
	require.EqualValues(t, 1, child.Total)
}

func TestPriceRangeFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "Cheap Part", Price: price("50")}, "")
	require.NoError(t, err)
	mid, err := svc.Create(ctx, Input{Name: "Mid Part", Price: price("150")}, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Name: "Pricey Part", Price: price("900")}, "")
	require.NoError(t, err)

	low, high := price("100"), price("500")
	result, err := svc.List(ctx, Filter{MinPrice: &low, MaxPrice: &high})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	require.Equal(t, mid.ID, result.Items[0].ID)
}

func TestAdminAndSettledFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mine, err := svc.Create(ctx, Input{Name: "Oil Filter", Price: price("120")}, "adm_1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Name: "Air Filter", Price: price("90")}, "adm_2")
	require.NoError(t, err)

	byAdmin, err := svc.List(ctx, Filter{AddedByAdminID: "adm_1", IncludeHidden: true})
	require.NoError(t, err)
	require.EqualValues(t, 1, byAdmin.Total)
	require.Equal(t, mine.ID, byAdmin.Items[0].ID)

	settled, err := svc.List(ctx, Filter{SettledOnly: true, IncludeHidden: true})
	require.NoError(t, err)
	require.Zero(t, settled.Total)

	require.NoError(t, svc.Update(ctx, mine.ID, map[string]any{"settled": true}))

	settled, err = svc.List(ctx, Filter{SettledOnly: true, IncludeHidden: true})
	require.NoError(t, err)
	require.EqualValues(t, 1, settled.Total)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "Bosch Spark Plug", PartNumber: "BSP-100", Price: price("85")}, "")
	require.NoError(t, err)

	byName, err := svc.List(ctx, Filter{Search: "bosch"})
	require.NoError(t, err)
	require.EqualValues(t, 1, byName.Total)

	byPart, err := svc.List(ctx, Filter{Search: "bsp-100"})
	require.NoError(t, err)
	require.EqualValues(t, 1, byPart.Total)

	none, err := svc.List(ctx, Filter{Search: "wiper"})
	require.NoError(t, err)
	require.Zero(t, none.Total)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Price: price("10")}, "")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(ctx, Input{Name: "Part", Price: price("-1")}, "")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdatePrice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, Input{Name: "Oil Filter", Price: price("120")}, "adm_1")
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePrice(ctx, product.ID, price("135.50")))

	loaded, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	require.True(t, loaded.Price.Equal(price("135.50")))
	require.Equal(t, "adm_1", loaded.AddedByAdminID)

	err = svc.UpdatePrice(ctx, product.ID, price("-5"))
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeleteIsSoftAndIdempotencyRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, Input{Name: "Oil Filter", Price: price("120")}, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, product.ID))

	_, err = svc.Get(ctx, product.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	err = svc.Delete(ctx, product.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
