package catalog

import (
	"context"
	"testing"

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
		&models.Category{}, &models.Supplier{}, &models.Distributor{},
	))
	client := db.FromGorm(gdb)
	return NewService(NewRepo(client), logger.New(logger.Options{ServiceName: "test"})), client
}

func TestCarModelRequiresExistingBrand(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCarModel(ctx, CarModelInput{CarBrandID: "cb_missing", Name: "Corolla"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	brand, err := svc.CreateCarBrand(ctx, CarBrandInput{Name: "Toyota"})
	require.NoError(t, err)

	model, err := svc.CreateCarModel(ctx, CarModelInput{CarBrandID: brand.ID, Name: "Corolla", YearFrom: 2015, YearTo: 2023})
	require.NoError(t, err)

	byBrand, err := svc.ListCarModels(ctx, brand.ID)
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	require.Equal(t, model.ID, byBrand[0].ID)
}

func TestCarModelByID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	brand, err := svc.CreateCarBrand(ctx, CarBrandInput{Name: "Toyota"})
	require.NoError(t, err)
	model, err := svc.CreateCarModel(ctx, CarModelInput{CarBrandID: brand.ID, Name: "Corolla"})
	require.NoError(t, err)

	detail, err := svc.CarModelByID(ctx, model.ID)
	require.NoError(t, err)
	require.Equal(t, model.ID, detail.ID)
	require.NotNil(t, detail.Brand)
	require.Equal(t, brand.ID, detail.Brand.ID)

	_, err = svc.CarModelByID(ctx, "cm_missing")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCategoryTree(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	engine, err := svc.CreateCategory(ctx, CategoryInput{Name: "Engine", Order: 1})
	require.NoError(t, err)
	brakes, err := svc.CreateCategory(ctx, CategoryInput{Name: "Brakes", Order: 2})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "Filters", ParentID: engine.ID})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "Pads", ParentID: brakes.ID})
	require.NoError(t, err)

	tree, err := svc.CategoryTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	require.Equal(t, "Engine", tree[0].Name)
	require.Len(t, tree[0].Children, 1)
	require.Equal(t, "Filters", tree[0].Children[0].Name)
}

func TestCreateCategoryUnknownParent(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Orphan", ParentID: "cat_missing"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeleteCategoryRemovesChildren(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	root, err := svc.CreateCategory(ctx, CategoryInput{Name: "Engine"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "Filters", ParentID: root.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, root.ID))

	remaining, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Empty(t, remaining)
}

func TestSoftDeletedBrandsDisappearFromLists(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	brand, err := svc.CreateCarBrand(ctx, CarBrandInput{Name: "Mazda"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCarBrand(ctx, brand.ID))

	listed, err := svc.ListCarBrands(ctx)
	require.NoError(t, err)
	require.Empty(t, listed)

	// The tombstone row survives for delta sync.
	var count int64
	require.NoError(t, client.Gorm(ctx).Unscoped().Model(&models.CarBrand{}).
		Where("id = ?", brand.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// Deleting again reports not found.
	err = svc.DeleteCarBrand(ctx, brand.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSupplierPhoneNumbersRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSupplier(ctx, DirectoryInput{
		Name:         "Auto Parts Co",
		Location:     "Cairo",
		PhoneNumbers: []string{"0100000000", "0111111111"},
	})
	require.NoError(t, err)

	loaded, err := svc.SupplierByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"0100000000", "0111111111"}, []string(loaded.PhoneNumbers))
}
