package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
)

func TestHealthScore(t *testing.T) {
	require.Equal(t, 100, HealthScore(0, 0))
	require.Equal(t, 75, HealthScore(3, 4))
	require.Equal(t, 0, HealthScore(0, 10))
	require.Equal(t, 100, HealthScore(10, 10))
	require.Equal(t, 33, HealthScore(1, 3))
}

func setupDashboardService(t *testing.T) (*DashboardService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Comment{},
		&models.ActivityLog{},
		&models.Message{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	svc := NewDashboardService(
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
		repository.NewCommentRepository(db),
		repository.NewActivityLogRepository(db),
	)
	return svc, db
}

func TestDashboardService_Stats_Empty(t *testing.T) {
	svc, _ := setupDashboardService(t)

	stats, err := svc.Stats()
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.TotalTasks)
	require.Equal(t, 100, stats.HealthScore)
	require.Empty(t, stats.RecentActivity)
}

func TestDashboardService_Stats(t *testing.T) {
	svc, db := setupDashboardService(t)

	admin := &models.User{FullName: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	mentor := &models.User{FullName: "Mentor", Email: "mentor@example.com", PasswordHash: "x", Role: models.RoleMentor}
	intern := &models.User{FullName: "Intern", Email: "intern@example.com", PasswordHash: "x", Role: models.RoleIntern}
	for _, u := range []*models.User{admin, mentor, intern} {
		require.NoError(t, db.Create(u).Error)
	}

	now := time.Now().UTC()
	past := now.Add(-48 * time.Hour)
	tasks := []*models.Task{
		{Title: "a", Status: models.TaskStatusPending, AssignedToUserID: intern.ID, CreatedByUserID: mentor.ID, DueDate: &past},
		{Title: "b", Status: models.TaskStatusInProgress, AssignedToUserID: intern.ID, CreatedByUserID: mentor.ID},
		{Title: "c", Status: models.TaskStatusSubmitted, AssignedToUserID: intern.ID, CreatedByUserID: mentor.ID, DueDate: &past},
		{Title: "d", Status: models.TaskStatusCompleted, AssignedToUserID: intern.ID, CreatedByUserID: mentor.ID},
	}
	for _, task := range tasks {
		require.NoError(t, db.Create(task).Error)
	}

	require.NoError(t, db.Create(&models.Comment{
		TaskID: tasks[0].ID, UserID: intern.ID, Content: "today", CreatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&models.Comment{
		TaskID: tasks[0].ID, UserID: intern.ID, Content: "yesterday", CreatedAt: now.Add(-26 * time.Hour),
	}).Error)

	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&models.ActivityLog{
			Action: "Task Created", UserID: mentor.ID, TaskID: &tasks[0].ID,
			Timestamp: now.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	stats, err := svc.Stats()
	require.NoError(t, err)

	require.Equal(t, int64(4), stats.TotalTasks)
	require.Equal(t, int64(1), stats.PendingTasks)
	require.Equal(t, int64(1), stats.InProgressTasks)
	require.Equal(t, int64(1), stats.SubmittedTasks)
	require.Equal(t, int64(1), stats.CompletedTasks)

	// Only the pending overdue task counts; a submitted one awaiting review
	// does not.
	require.Equal(t, int64(1), stats.OverdueTasks)

	require.Equal(t, int64(1), stats.TotalInterns)
	require.Equal(t, int64(1), stats.ActiveMentors)
	require.Equal(t, int64(1), stats.TotalAdmins)
	require.Equal(t, int64(1), stats.CommentsToday)
	require.Equal(t, 25, stats.HealthScore)
	require.Len(t, stats.RecentActivity, 5)
	require.Equal(t, "Mentor", stats.RecentActivity[0].UserName)
}
