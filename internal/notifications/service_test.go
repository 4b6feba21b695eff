package notifications

import (
	"context"
	"sync"
	"testing"

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

type capturePusher struct {
	mu     sync.Mutex
	sends  []string
	frames []any
}

func (p *capturePusher) SendToUser(userID string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sends = append(p.sends, userID)
	p.frames = append(p.frames, payload)
}

func newTestService(t *testing.T) (*Service, *Repo, *capturePusher) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Notification{}))

	repo := NewRepo(db.FromGorm(gdb))
	pusher := &capturePusher{}
	svc := NewService(repo, pusher, logger.New(logger.Options{ServiceName: "test"}))
	return svc, repo, pusher
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	svc, repo, pusher := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, "usr_1", enums.NotificationOrderPlaced, "New order", "ORD-1", "ord_1"))

	items, err := repo.ListForUser(ctx, "usr_1", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, enums.NotificationOrderPlaced, items[0].Type)
	require.False(t, items[0].Read)

	require.Equal(t, []string{"usr_1"}, pusher.sends)

	frame, ok := pusher.frames[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "notification", frame["type"])
	pushed, ok := frame["data"].(models.Notification)
	require.True(t, ok)
	require.Equal(t, items[0].ID, pushed.ID)
}

func TestNotifyByEmailUnknownRecipientIsSkipped(t *testing.T) {
	svc, _, pusher := newTestService(t)

	err := svc.NotifyByEmail(context.Background(), "ghost@example.com", enums.NotificationGeneral, "hi", "", "")
	require.NoError(t, err)
	require.Empty(t, pusher.sends)
}

func TestMarkReadScopedToOwner(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, "usr_1", enums.NotificationGeneral, "hello", "", ""))
	items, err := repo.ListForUser(ctx, "usr_1", 10)
	require.NoError(t, err)

	err = svc.MarkRead(ctx, "usr_other", items[0].ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	require.NoError(t, svc.MarkRead(ctx, "usr_1", items[0].ID))

	count, err := svc.UnreadCount(ctx, "usr_1")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestMarkAllRead(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(ctx, "usr_1", enums.NotificationGeneral, "hello", "", ""))
	}
	require.NoError(t, svc.MarkAllRead(ctx, "usr_1"))

	count, err := svc.UnreadCount(ctx, "usr_1")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestDeleteNotification(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, "usr_1", enums.NotificationGeneral, "hello", "", ""))
	items, err := repo.ListForUser(ctx, "usr_1", 10)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "usr_1", items[0].ID))

	items, err = repo.ListForUser(ctx, "usr_1", 10)
	require.NoError(t, err)
	require.Empty(t, items)
}
