package comments

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AhmedSalahALghzaly/lats-go/internal/products"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Product{}, &models.Comment{}))

	client := db.FromGorm(gdb)
	logg := logger.New(logger.Options{ServiceName: "test"})
	productSvc := products.NewService(products.NewRepo(client), logg)
	product, err := productSvc.Create(context.Background(), products.Input{
		Name:  "Oil Filter",
		Price: decimal.RequireFromString("120"),
	}, "")
	require.NoError(t, err)

	return NewService(client, productSvc, logg), product.ID
}

func TestCreateValidatesRating(t *testing.T) {
	svc, productID := newTestService(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, "usr_1", "Buyer", Input{ProductID: productID, Rating: rating})
		require.Error(t, err)
		require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}

	comment, err := svc.Create(ctx, "usr_1", "Buyer", Input{ProductID: productID, Text: "solid part", Rating: 5})
	require.NoError(t, err)
	require.Equal(t, 5, comment.Rating)
}

func TestCreateUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "usr_1", "Buyer", Input{ProductID: "prod_missing", Rating: 3})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteOwnershipRules(t *testing.T) {
	svc, productID := newTestService(t)
	ctx := context.Background()

	comment, err := svc.Create(ctx, "usr_1", "Buyer", Input{ProductID: productID, Rating: 4})
	require.NoError(t, err)

	err = svc.Delete(ctx, comment.ID, "usr_2", enums.RoleUser)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	require.NoError(t, svc.Delete(ctx, comment.ID, "usr_staff", enums.RoleAdmin))

	listed, err := svc.ListForProduct(ctx, productID)
	require.NoError(t, err)
	require.Empty(t, listed)
}
