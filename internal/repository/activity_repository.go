package repository

import (
	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/database"
	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/utils"
)

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Add appends one entry
func (r *GormActivityLogRepository) Add(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// List retrieves entries newest first with actor and task loaded
func (r *GormActivityLogRepository) List(params utils.PaginationParams) ([]models.ActivityLog, int64, error) {
	var total int64
	if err := r.db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.ActivityLog
	err := r.db.
		Preload("User").
		Preload("Task").
		Order("timestamp DESC").
		Scopes(database.Paginate(params)).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Recent retrieves the n most recent entries with actors loaded
func (r *GormActivityLogRepository) Recent(n int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := r.db.
		Preload("User").
		Order("timestamp DESC").
		Limit(n).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
