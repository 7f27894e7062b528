package services

import (
	"fmt"
	"math"
	"time"

	"github.com/internos/internos-api/internal/dto"
	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
)

const recentActivityCount = 5

// DashboardService computes the read-only rollup. Nothing is cached; every
// call recomputes against the store.
type DashboardService struct {
	taskRepo     repository.TaskRepository
	userRepo     repository.UserRepository
	commentRepo  repository.CommentRepository
	activityRepo repository.ActivityLogRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	activityRepo repository.ActivityLogRepository,
) *DashboardService {
	return &DashboardService{
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
	}
}

// Stats assembles the dashboard counters.
func (s *DashboardService) Stats() (dto.DashboardStatsDTO, error) {
	var stats dto.DashboardStatsDTO
	var err error

	if stats.TotalTasks, err = s.taskRepo.Count(); err != nil {
		return stats, fmt.Errorf("failed to count tasks: %w", err)
	}

	statusCounts := []struct {
		status models.TaskStatus
		target *int64
	}{
		{models.TaskStatusPending, &stats.PendingTasks},
		{models.TaskStatusInProgress, &stats.InProgressTasks},
		{models.TaskStatusSubmitted, &stats.SubmittedTasks},
		{models.TaskStatusCompleted, &stats.CompletedTasks},
	}
	for _, sc := range statusCounts {
		if *sc.target, err = s.taskRepo.CountByStatus(sc.status); err != nil {
			return stats, fmt.Errorf("failed to count %s tasks: %w", sc.status, err)
		}
	}

	now := time.Now().UTC()
	if stats.OverdueTasks, err = s.taskRepo.CountOverdue(now); err != nil {
		return stats, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	if stats.TotalInterns, err = s.userRepo.CountByRole(models.RoleIntern); err != nil {
		return stats, fmt.Errorf("failed to count interns: %w", err)
	}
	if stats.ActiveMentors, err = s.userRepo.CountByRole(models.RoleMentor); err != nil {
		return stats, fmt.Errorf("failed to count mentors: %w", err)
	}
	if stats.TotalAdmins, err = s.userRepo.CountByRole(models.RoleAdmin); err != nil {
		return stats, fmt.Errorf("failed to count admins: %w", err)
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if stats.CommentsToday, err = s.commentRepo.CountSince(startOfDay); err != nil {
		return stats, fmt.Errorf("failed to count today's comments: %w", err)
	}

	stats.HealthScore = HealthScore(stats.CompletedTasks, stats.TotalTasks)

	recent, err := s.activityRepo.Recent(recentActivityCount)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch recent activity: %w", err)
	}
	stats.RecentActivity = make([]dto.RecentActivityDTO, len(recent))
	for i, entry := range recent {
		userName := "Unknown"
		if entry.User.ID != 0 {
			userName = entry.User.FullName
		}
		stats.RecentActivity[i] = dto.RecentActivityDTO{
			Action:    entry.Action,
			UserName:  userName,
			Timestamp: entry.Timestamp,
		}
	}

	return stats, nil
}

// HealthScore is completed/total as a rounded percentage, or 100 when there
// are no tasks at all.
func HealthScore(completed, total int64) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
