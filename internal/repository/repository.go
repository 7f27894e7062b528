package repository

import (
	"time"

	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/utils"
)

// DependencyCounts summarizes the rows that reference a user and would block
// its deletion.
type DependencyCounts struct {
	AssignedTasks int64 `json:"assignedTasks"`
	CreatedTasks  int64 `json:"createdTasks"`
	Comments      int64 `json:"comments"`
	Activities    int64 `json:"activities"`
}

// Total returns the number of dependent rows across all categories.
func (d DependencyCounts) Total() int64 {
	return d.AssignedTasks + d.CreatedTasks + d.Comments + d.Activities
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// EmailInUse reports whether another user already holds the email
	EmailInUse(email string, excludeID uint64) (bool, error)

	// List retrieves all users
	List() ([]models.User, error)

	// ListByRole retrieves users holding the given role
	ListByRole(role models.UserRole) ([]models.User, error)

	// CountByRole counts users holding the given role
	CountByRole(role models.UserRole) (int64, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete removes a user with no dependent rows
	Delete(id uint64) error

	// CountDependencies counts the rows that reference the user
	CountDependencies(userID uint64) (DependencyCounts, error)

	// ReassignAndDelete moves every dependent row's owning foreign key to the
	// replacement and deletes the user, all inside one transaction.
	ReassignAndDelete(userID, replacementID uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListAll retrieves every task with its users and comments preloaded
	ListAll() ([]models.Task, error)

	// ListByAssignee retrieves tasks assigned to a user, newest first
	ListByAssignee(userID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes the task, its comments, and nulls the task reference on
	// activity entries, inside one transaction.
	Delete(id uint64) error

	// Count counts all tasks
	Count() (int64, error)

	// CountByStatus counts tasks holding the given status
	CountByStatus(status models.TaskStatus) (int64, error)

	// CountOverdue counts tasks whose due date has passed and which are
	// neither completed nor submitted.
	CountOverdue(now time.Time) (int64, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// ListByTask retrieves a task's comments oldest first with authors loaded
	ListByTask(taskID uint64) ([]models.Comment, error)

	// CountSince counts comments created at or after the given instant
	CountSince(t time.Time) (int64, error)
}

// ActivityLogRepository defines the interface for the audit trail
type ActivityLogRepository interface {
	// Add appends one entry
	Add(entry *models.ActivityLog) error

	// List retrieves entries newest first with actor and task loaded
	List(params utils.PaginationParams) ([]models.ActivityLog, int64, error)

	// Recent retrieves the n most recent entries with actors loaded
	Recent(n int) ([]models.ActivityLog, error)
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create persists one message
	Create(message *models.Message) error

	// ListForUser retrieves every message touching the user, newest first
	ListForUser(userID uint64) ([]models.Message, error)

	// ListConversation retrieves all messages between two users, oldest first
	ListConversation(userIDA, userIDB uint64) ([]models.Message, error)
}
