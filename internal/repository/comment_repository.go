package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/models"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListByTask retrieves a task's comments oldest first with authors loaded
func (r *GormCommentRepository) ListByTask(taskID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountSince counts comments created at or after the given instant
func (r *GormCommentRepository) CountSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("created_at >= ?", t).
		Count(&count).Error
	return count, err
}
