package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	VisibilityTeam       = "team"
	VisibilityDepartment = "department"
	VisibilityAll        = "all"
	VisibilityCustom     = "custom"
)

const (
	ResponseAttending    = "attending"
	ResponseMaybe        = "maybe"
	ResponseNotAttending = "not_attending"
)

type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Title       string    `gorm:"type:varchar(200);not null"`
	EventType   string    `gorm:"type:varchar(20);not null"`
	StartTime   time.Time `gorm:"not null;index"`
	EndTime     time.Time `gorm:"not null"`
	Description string    `gorm:"type:text"`

	CreatedBy    uuid.UUID `gorm:"type:uuid;not null"`
	Visibility   string    `gorm:"type:varchar(20);not null;default:'team'"`
	RsvpRequired bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Event) TableName() string { return "events" }

// EventRsvp holds one row per (event, user); re-submissions overwrite it.
type EventRsvp struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_rsvps_event_user"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_rsvps_event_user"`

	Response    string    `gorm:"type:varchar(20);not null"`
	RespondedAt time.Time `gorm:"not null"`
}

func (EventRsvp) TableName() string { return "event_rsvps" }

// EventWithCreator is the list row shape: an event joined with its
// creator's name.
type EventWithCreator struct {
	ID           uuid.UUID
	Title        string
	EventType    string
	StartTime    time.Time
	EndTime      time.Time
	Description  string
	CreatedBy    uuid.UUID
	CreatorName  string
	Visibility   string
	RsvpRequired bool
	CreatedAt    time.Time
}

// RsvpWithUser is an RSVP joined with the responder's name.
type RsvpWithUser struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	UserID      uuid.UUID
	UserName    string
	Response    string
	RespondedAt time.Time
}
