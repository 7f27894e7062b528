package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListAll retrieves every task with its users and comments preloaded
func (r *GormTaskRepository) ListAll() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("Comments").
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByAssignee retrieves tasks assigned to a user, newest first
func (r *GormTaskRepository) ListByAssignee(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("CreatedBy").
		Where("assigned_to_user_id = ?", userID).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes the task row together with its comments. Activity entries
// that referenced the task survive with a NULL task id.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ActivityLog{}).
			Where("task_id = ?", id).
			Update("task_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// Count counts all tasks
func (r *GormTaskRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Count(&count).Error
	return count, err
}

// CountByStatus counts tasks holding the given status
func (r *GormTaskRepository) CountByStatus(status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountOverdue counts tasks past their due date that are neither completed
// nor submitted.
func (r *GormTaskRepository) CountOverdue(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Where("status NOT IN ?", []models.TaskStatus{models.TaskStatusCompleted, models.TaskStatusSubmitted}).
		Count(&count).Error
	return count, err
}
