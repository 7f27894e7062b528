package services

import (
	"fmt"

	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
	"github.com/internos/internos-api/internal/utils"
)

// ActivityService serves the read side of the audit trail. Writes happen as
// side effects inside TaskService.
type ActivityService struct {
	activityRepo repository.ActivityLogRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// List returns a page of entries, newest first, plus the total count.
func (s *ActivityService) List(params utils.PaginationParams) ([]models.ActivityLog, int64, error) {
	entries, total, err := s.activityRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, total, nil
}
