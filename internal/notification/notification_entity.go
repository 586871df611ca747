package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_created"`

	Type    string `gorm:"type:varchar(20);not null;default:'info'"`
	Title   string `gorm:"type:varchar(200);not null"`
	Message string `gorm:"type:text"`
	Read    bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"index:idx_notifications_user_created"`
}

func (Notification) TableName() string { return "notifications" }
