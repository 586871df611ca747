package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleManager    = "manager"
	RoleTeamMember = "team_member"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string    `gorm:"type:varchar(255);not null"`
	Role     string    `gorm:"type:varchar(20);not null;default:'team_member'"`
	Team     string    `gorm:"type:varchar(100);not null"`
	Avatar   string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string { return "users" }

func IsValidRole(role string) bool {
	return role == RoleManager || role == RoleTeamMember
}

// PublicUser is the projection safe to hand to clients: no password hash.
type PublicUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Team   string `json:"team"`
	Avatar string `json:"avatar,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Team:   u.Team,
		Avatar: u.Avatar,
	}
}
