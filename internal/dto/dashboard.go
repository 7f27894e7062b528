package dto

import "time"

// DashboardStatsDTO is the read-only rollup shown on the admin dashboard.
type DashboardStatsDTO struct {
	TotalTasks      int64               `json:"totalTasks"`
	PendingTasks    int64               `json:"pendingTasks"`
	InProgressTasks int64               `json:"inProgressTasks"`
	SubmittedTasks  int64               `json:"submittedTasks"`
	CompletedTasks  int64               `json:"completedTasks"`
	OverdueTasks    int64               `json:"overdueTasks"`
	TotalInterns    int64               `json:"totalInterns"`
	ActiveMentors   int64               `json:"activeMentors"`
	TotalAdmins     int64               `json:"totalAdmins"`
	CommentsToday   int64               `json:"commentsToday"`
	HealthScore     int                 `json:"healthScore"`
	RecentActivity  []RecentActivityDTO `json:"recentActivity"`
}

// RecentActivityDTO is one of the latest audit entries on the dashboard.
type RecentActivityDTO struct {
	Action    string    `json:"action"`
	UserName  string    `json:"userName"`
	Timestamp time.Time `json:"timestamp"`
}
