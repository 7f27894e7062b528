package dto

import (
	"time"

	"github.com/internos/internos-api/internal/models"
)

// ActivityEntryDTO is one audit trail entry with denormalized names.
type ActivityEntryDTO struct {
	ID        uint64    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	UserName  string    `json:"userName"`
	TaskTitle string    `json:"taskTitle"`
}

// ToActivityEntryDTO converts an entry with actor and task preloaded. Missing
// references fall back to "Unknown"/"N/A".
func ToActivityEntryDTO(entry models.ActivityLog) ActivityEntryDTO {
	out := ActivityEntryDTO{
		ID:        entry.ID,
		Action:    entry.Action,
		Timestamp: entry.Timestamp,
		UserName:  "Unknown",
		TaskTitle: "N/A",
	}

	if entry.User.ID != 0 {
		out.UserName = entry.User.FullName
	}
	if entry.Task != nil && entry.Task.ID != 0 {
		out.TaskTitle = entry.Task.Title
	}

	return out
}
