package notification_test

import (
	"context"
	"testing"

	"teampulse/internal/notification"
	"teampulse/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupNotificationRepoTest(t *testing.T) (*gorm.DB, notification.Repository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	err = db.AutoMigrate(&user.User{}, &notification.Notification{})
	assert.NoError(t, err)

	return db, notification.NewRepository(db)
}

func seedNotification(t *testing.T, repo notification.Repository, userID uuid.UUID, title string) *notification.Notification {
	t.Helper()
	n := &notification.Notification{
		ID:     uuid.New(),
		UserID: userID,
		Type:   notification.TypeInfo,
		Title:  title,
	}
	assert.NoError(t, repo.Create(context.Background(), n))
	return n
}

func TestNotificationRepository_OwnershipScoping(t *testing.T) {
	ctx := context.Background()
	_, repo := setupNotificationRepoTest(t)

	owner := uuid.New()
	stranger := uuid.New()
	n := seedNotification(t, repo, owner, "For the owner only")

	affected, err := repo.MarkRead(ctx, n.ID.String(), stranger.String())
	assert.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Delete(ctx, n.ID.String(), stranger.String())
	assert.NoError(t, err)
	assert.Zero(t, affected)

	rows, err := repo.FindByUser(ctx, owner.String())
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.False(t, rows[0].Read)

	affected, err = repo.MarkRead(ctx, n.ID.String(), owner.String())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rows, err = repo.FindByUser(ctx, owner.String())
	assert.NoError(t, err)
	assert.True(t, rows[0].Read)

	affected, err = repo.Delete(ctx, n.ID.String(), owner.String())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	ctx := context.Background()
	_, repo := setupNotificationRepoTest(t)

	owner := uuid.New()
	seedNotification(t, repo, owner, "first")
	seedNotification(t, repo, owner, "second")
	other := seedNotification(t, repo, uuid.New(), "someone else's")

	affected, err := repo.MarkAllRead(ctx, owner.String())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	rows, err := repo.FindByUser(ctx, other.UserID.String())
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.False(t, rows[0].Read)
}
