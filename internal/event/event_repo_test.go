package event_test

import (
	"context"
	"testing"
	"time"

	"teampulse/internal/event"
	"teampulse/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupEventRepoTest(t *testing.T) (*gorm.DB, event.Repository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	err = db.AutoMigrate(&user.User{}, &event.Event{}, &event.EventRsvp{})
	assert.NoError(t, err)

	return db, event.NewRepository(db)
}

func seedUser(t *testing.T, db *gorm.DB, name string) user.User {
	t.Helper()
	u := user.User{
		ID:    uuid.New(),
		Name:  name,
		Email: uuid.New().String() + "@example.com",
		Role:  user.RoleTeamMember,
		Team:  "Engineering",
	}
	assert.NoError(t, db.Create(&u).Error)
	return u
}

func TestEventRepository_UpsertRsvp(t *testing.T) {
	ctx := context.Background()
	db, repo := setupEventRepoTest(t)

	creator := seedUser(t, db, "John Manager")
	responder := seedUser(t, db, "Jane Employee")

	e := &event.Event{
		ID:        uuid.New(),
		Title:     "After Work Drinks",
		EventType: "after_work",
		StartTime: time.Date(2026, 7, 10, 17, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC),
		CreatedBy: creator.ID,
	}
	assert.NoError(t, repo.Create(ctx, e))

	first := &event.EventRsvp{
		ID:          uuid.New(),
		EventID:     e.ID,
		UserID:      responder.ID,
		Response:    event.ResponseAttending,
		RespondedAt: time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, repo.UpsertRsvp(ctx, first))

	second := &event.EventRsvp{
		ID:          uuid.New(),
		EventID:     e.ID,
		UserID:      responder.ID,
		Response:    event.ResponseMaybe,
		RespondedAt: time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, repo.UpsertRsvp(ctx, second))

	var count int64
	assert.NoError(t, db.Model(&event.EventRsvp{}).
		Where("event_id = ? AND user_id = ?", e.ID, responder.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	rows, err := repo.FindRsvps(ctx, e.ID.String())
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, event.ResponseMaybe, rows[0].Response)
	assert.Equal(t, "Jane Employee", rows[0].UserName)
	assert.True(t, rows[0].RespondedAt.Equal(second.RespondedAt))
}

func TestEventRepository_FindAllOrdersByStartTime(t *testing.T) {
	ctx := context.Background()
	db, repo := setupEventRepoTest(t)

	creator := seedUser(t, db, "John Manager")

	later := &event.Event{
		ID:        uuid.New(),
		Title:     "Team Training",
		EventType: "training",
		StartTime: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		CreatedBy: creator.ID,
	}
	earlier := &event.Event{
		ID:        uuid.New(),
		Title:     "Launch Celebration",
		EventType: "celebration",
		StartTime: time.Date(2026, 8, 15, 16, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 15, 18, 0, 0, 0, time.UTC),
		CreatedBy: creator.ID,
	}
	assert.NoError(t, repo.Create(ctx, later))
	assert.NoError(t, repo.Create(ctx, earlier))

	rows, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Launch Celebration", rows[0].Title)
	assert.Equal(t, "Team Training", rows[1].Title)
	assert.Equal(t, "John Manager", rows[0].CreatorName)
}
