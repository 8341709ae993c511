package domain

import "time"

const (
	ActivityCreated = "created"
	ActivityUpdated = "updated"
)

// ActivityEvent is a synthetic created/updated event derived from a task.
type ActivityEvent struct {
	Type      string    `json:"type"`
	TaskID    string    `json:"taskId"`
	Timestamp time.Time `json:"timestamp"`
}

// UserActivity is the per-user report shown to administrators.
type UserActivity struct {
	UserID               string          `json:"userId"`
	TaskBreakdown        map[string]int  `json:"taskBreakdown"`
	RecentActivity       []ActivityEvent `json:"recentActivity"`
	CompletionPercentage float64         `json:"completionPercentage"`
}

// TrendBucket counts tasks completed on one UTC calendar date.
type TrendBucket struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
}

// SystemAnalytics aggregates the whole document.
type SystemAnalytics struct {
	TotalUsers           int           `json:"totalUsers"`
	TotalTasks           int           `json:"totalTasks"`
	ActiveTasks          int           `json:"activeTasks"`
	CompletedTasks       int           `json:"completedTasks"`
	CompletionRate       float64       `json:"completionRate"`
	TaskCompletionTrends []TrendBucket `json:"taskCompletionTrends"`
	AverageTasksPerUser  float64       `json:"averageTasksPerUser"`
	MostUsedCategories   []string      `json:"mostUsedCategories"`
}

// UserStats is the credential-free admin projection of a user.
type UserStats struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Profile            Profile    `json:"profile"`
	LastLogin          *time.Time `json:"lastLogin"`
	TaskCount          int        `json:"taskCount"`
	CompletedTaskCount int        `json:"completedTaskCount"`
}
