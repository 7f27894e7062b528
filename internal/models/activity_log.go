package models

import "time"

// ActivityLog is an append-only audit entry. TaskID is nullable: it is cleared
// when the referenced task is deleted, and absent for user-scoped actions.
type ActivityLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Action    string    `gorm:"type:varchar(512);not null" json:"action"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	TaskID    *uint64   `json:"task_id"`
	Timestamp time.Time `json:"timestamp"`

	// Relations
	User User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Task *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
