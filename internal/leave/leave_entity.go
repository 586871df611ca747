package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type LeaveRequest struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user_dates"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	Reason    string    `gorm:"type:text"`

	Status         string `gorm:"type:varchar(20);not null;default:'pending';index"`
	ManagerComment string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string { return "leave_requests" }

// LeaveWithUser is the list-all row shape: a request joined with the
// requester's name and team for the manager view.
type LeaveWithUser struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	UserName       string
	UserTeam       string
	LeaveType      string
	StartDate      time.Time
	EndDate        time.Time
	Reason         string
	Status         string
	ManagerComment string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
