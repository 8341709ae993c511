package ports

import (
	"context"

	"github.com/smarttodo/tasks-api/internal/core/domain"
	"github.com/smarttodo/tasks-api/internal/core/query"
)

// TaskService defines the scoped task use cases.
type TaskService interface {
	ListTasks(ctx context.Context, userID string, filter query.Filter, sort query.Sort) ([]domain.Task, error)
	CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	AddSubtask(ctx context.Context, userID, taskID, title string) (*domain.Subtask, error)
	UpdateSubtask(ctx context.Context, userID, subtaskID string, patch domain.SubtaskPatch) (*domain.Subtask, error)
	DeleteSubtask(ctx context.Context, userID, subtaskID string) error
}

// AnalyticsService defines the administrator reports.
type AnalyticsService interface {
	UserActivity(ctx context.Context, userID string) (*domain.UserActivity, error)
	System(ctx context.Context) (*domain.SystemAnalytics, error)
	UsersWithStats(ctx context.Context) ([]domain.UserStats, error)
}
