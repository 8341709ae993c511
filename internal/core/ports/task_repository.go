package ports

import (
	"context"

	"github.com/smarttodo/tasks-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks and their subtasks.
// Every lookup is scoped to the owning user.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
	// Create stores task. Returns domain.ErrUserNotFound when task.UserID does
	// not reference an existing user.
	Create(ctx context.Context, task domain.Task) error
	// Update applies mutate to the task and commits it. The task's id and
	// owner are restored after mutate runs.
	Update(ctx context.Context, userID, taskID string, mutate func(*domain.Task) error) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	// MutateSubtask locates subtaskID across the caller's tasks and hands the
	// parent task and the subtask index to mutate.
	MutateSubtask(ctx context.Context, userID, subtaskID string, mutate func(parent *domain.Task, i int) error) (*domain.Task, error)
}

// SnapshotReader exposes read-only access to the whole document.
type SnapshotReader interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
}
