package dto

import (
	"sort"
	"time"

	"github.com/internos/internos-api/internal/models"
)

// TaskDTO represents a single task in API responses
type TaskDTO struct {
	ID               uint64     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	AssignedToUserID uint64     `json:"assignedToUserId"`
	CreatedByUserID  uint64     `json:"createdByUserId"`
	DueDate          *time.Time `json:"dueDate"`
	CreatedAt        time.Time  `json:"createdAt"`
	CompletedAt      *time.Time `json:"completedAt"`
}

// TaskListItemDTO is a task in the "all tasks" listing, carrying the comment
// rollup the board view displays.
type TaskListItemDTO struct {
	TaskDTO
	CommentCount  int     `json:"commentCount"`
	LatestComment *string `json:"latestComment"`
}

// MyTaskDTO is a task in the caller's own listing.
type MyTaskDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   *UserDTO  `json:"createdBy,omitempty"`
}

// SubmissionDTO describes one uploaded submission file.
type SubmissionDTO struct {
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		Status:           string(task.Status),
		AssignedToUserID: task.AssignedToUserID,
		CreatedByUserID:  task.CreatedByUserID,
		DueDate:          task.DueDate,
		CreatedAt:        task.CreatedAt,
		CompletedAt:      task.CompletedAt,
	}
}

// ToTaskListItemDTO converts a task with preloaded comments into a list item.
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	item := TaskListItemDTO{
		TaskDTO:      ToTaskDTO(task),
		CommentCount: len(task.Comments),
	}

	if len(task.Comments) > 0 {
		comments := make([]models.Comment, len(task.Comments))
		copy(comments, task.Comments)
		sort.Slice(comments, func(i, j int) bool {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		})
		item.LatestComment = &comments[0].Content
	}

	return item
}

// ToMyTaskDTO converts a task with its creator preloaded.
func ToMyTaskDTO(task models.Task) MyTaskDTO {
	item := MyTaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
	}

	if task.CreatedBy.ID != 0 {
		creator := ToUserDTO(task.CreatedBy)
		item.CreatedBy = &creator
	}

	return item
}
