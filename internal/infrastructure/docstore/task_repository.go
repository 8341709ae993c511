package docstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/smarttodo/tasks-api/internal/core/domain"
)

type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]domain.Task, 0)
	for _, t := range snap.Tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) error {
	err := r.store.Update(ctx, func(snap *domain.Snapshot) error {
		if snap.FindUser(task.UserID) < 0 {
			return domain.ErrUserNotFound
		}
		if task.Subtasks == nil {
			task.Subtasks = []domain.Subtask{}
		}
		snap.Tasks = append(snap.Tasks, task)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, userID, taskID string, mutate func(*domain.Task) error) (*domain.Task, error) {
	var updated domain.Task
	err := r.store.Update(ctx, func(snap *domain.Snapshot) error {
		i := snap.FindOwnedTask(userID, taskID)
		if i < 0 {
			return domain.ErrTaskNotFound
		}
		t := &snap.Tasks[i]
		if err := mutate(t); err != nil {
			return err
		}
		t.ID, t.UserID = taskID, userID
		updated = *t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	err := r.store.Update(ctx, func(snap *domain.Snapshot) error {
		i := snap.FindOwnedTask(userID, taskID)
		if i < 0 {
			return domain.ErrTaskNotFound
		}
		snap.Tasks = slices.Delete(snap.Tasks, i, i+1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (r *TaskRepository) MutateSubtask(ctx context.Context, userID, subtaskID string, mutate func(*domain.Task, int) error) (*domain.Task, error) {
	var parent domain.Task
	err := r.store.Update(ctx, func(snap *domain.Snapshot) error {
		ti, si := snap.FindOwnedSubtask(userID, subtaskID)
		if ti < 0 {
			return domain.ErrSubtaskNotFound
		}
		t := &snap.Tasks[ti]
		if err := mutate(t, si); err != nil {
			return err
		}
		parent = *t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mutate subtask: %w", err)
	}
	return &parent, nil
}
