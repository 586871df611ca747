package event

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Event) error
	FindAll(ctx context.Context) ([]EventWithCreator, error)
	FindByID(ctx context.Context, id string) (*Event, error)
	UpsertRsvp(ctx context.Context, rsvp *EventRsvp) error
	FindRsvps(ctx context.Context, eventID string) ([]RsvpWithUser, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]EventWithCreator, error) {
	var rows []EventWithCreator
	err := r.db.WithContext(ctx).
		Table("events").
		Select("events.*, users.name AS creator_name").
		Joins("JOIN users ON users.id = events.created_by").
		Order("events.start_time ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

// UpsertRsvp keeps exactly one row per (event_id, user_id); a conflicting
// insert overwrites the previous response and timestamp.
func (r *repository) UpsertRsvp(ctx context.Context, rsvp *EventRsvp) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"response", "responded_at"}),
		}).
		Create(rsvp).Error
}

func (r *repository) FindRsvps(ctx context.Context, eventID string) ([]RsvpWithUser, error) {
	var rows []RsvpWithUser
	err := r.db.WithContext(ctx).
		Table("event_rsvps").
		Select("event_rsvps.*, users.name AS user_name").
		Joins("JOIN users ON users.id = event_rsvps.user_id").
		Where("event_rsvps.event_id = ?", eventID).
		Order("event_rsvps.responded_at ASC").
		Scan(&rows).Error
	return rows, err
}
