package models

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusSubmitted  TaskStatus = "Submitted"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// taskStatusValues is the wire encoding used by the status patch endpoint.
var taskStatusValues = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusSubmitted,
	TaskStatusCompleted,
}

// TaskStatusFromValue maps the numeric wire value onto a status.
func TaskStatusFromValue(v int) (TaskStatus, error) {
	if v < 0 || v >= len(taskStatusValues) {
		return "", fmt.Errorf("unknown task status value %d", v)
	}
	return taskStatusValues[v], nil
}

type Task struct {
	ID               uint64     `gorm:"primarykey" json:"id"`
	Title            string     `gorm:"not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	Status           TaskStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	AssignedToUserID uint64     `gorm:"not null" json:"assigned_to_user_id"`
	CreatedByUserID  uint64     `gorm:"not null" json:"created_by_user_id"`
	DueDate          *time.Time `json:"due_date"`
	CompletedAt      *time.Time `json:"completed_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Relations
	AssignedTo User      `gorm:"foreignKey:AssignedToUserID" json:"assigned_to,omitempty"`
	CreatedBy  User      `gorm:"foreignKey:CreatedByUserID" json:"created_by,omitempty"`
	Comments   []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}
