package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleAdmin  UserRole = "Admin"
	RoleMentor UserRole = "Mentor"
	RoleIntern UserRole = "Intern"
)

// ParseUserRole parses a role name case-insensitively, falling back to Intern
// for anything it does not recognize.
func ParseUserRole(s string) UserRole {
	switch {
	case strings.EqualFold(s, string(RoleAdmin)):
		return RoleAdmin
	case strings.EqualFold(s, string(RoleMentor)):
		return RoleMentor
	default:
		return RoleIntern
	}
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'Intern'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	AssignedTasks []Task        `gorm:"foreignKey:AssignedToUserID" json:"-"`
	CreatedTasks  []Task        `gorm:"foreignKey:CreatedByUserID" json:"-"`
	Comments      []Comment     `gorm:"foreignKey:UserID" json:"-"`
	Activities    []ActivityLog `gorm:"foreignKey:UserID" json:"-"`
}
