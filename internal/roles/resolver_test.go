package roles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
)

func newTestDB(t *testing.T) *db.Client {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Partner{}, &models.Admin{}, &models.Subscriber{}))
	return db.FromGorm(gdb)
}

func TestResolveOwner(t *testing.T) {
	client := newTestDB(t)
	resolver := NewResolver(client, "Owner@Example.com")

	role, err := resolver.Resolve(context.Background(), "owner@example.com")
	require.NoError(t, err)
	require.Equal(t, enums.RoleOwner, role)
}

func TestResolvePrecedence(t *testing.T) {
	client := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, client.Gorm(ctx).Create(&models.Partner{
		ID: models.NewID("ptr"), Email: "both@example.com",
	}).Error)
	require.NoError(t, client.Gorm(ctx).Create(&models.Admin{
		ID: models.NewID("adm"), Email: "both@example.com",
	}).Error)

	resolver := NewResolver(client, "owner@example.com")
	role, err := resolver.Resolve(ctx, "both@example.com")
	require.NoError(t, err)
	require.Equal(t, enums.RolePartner, role)
}

func TestResolveSubscriberAndFallback(t *testing.T) {
	client := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, client.Gorm(ctx).Create(&models.Subscriber{
		ID: models.NewID("sub"), Email: "shop@example.com",
	}).Error)

	resolver := NewResolver(client, "owner@example.com")

	role, err := resolver.Resolve(ctx, "SHOP@example.com")
	require.NoError(t, err)
	require.Equal(t, enums.RoleSubscriber, role)

	role, err = resolver.Resolve(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Equal(t, enums.RoleUser, role)

	role, err = resolver.Resolve(ctx, "")
	require.NoError(t, err)
	require.Equal(t, enums.RoleGuest, role)
}

func TestRevocationTakesEffectImmediately(t *testing.T) {
	client := newTestDB(t)
	ctx := context.Background()

	admin := models.Admin{ID: models.NewID("adm"), Email: "staff@example.com"}
	require.NoError(t, client.Gorm(ctx).Create(&admin).Error)

	resolver := NewResolver(client, "owner@example.com")
	role, err := resolver.Resolve(ctx, "staff@example.com")
	require.NoError(t, err)
	require.Equal(t, enums.RoleAdmin, role)

	require.NoError(t, client.Gorm(ctx).Delete(&admin).Error)

	role, err = resolver.Resolve(ctx, "staff@example.com")
	require.NoError(t, err)
	require.Equal(t, enums.RoleUser, role)
}
