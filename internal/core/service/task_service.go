package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smarttodo/tasks-api/internal/core/domain"
	"github.com/smarttodo/tasks-api/internal/core/ports"
	"github.com/smarttodo/tasks-api/internal/core/query"
)

type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger, now: utcNow, newID: uuid.NewString}
}

func utcNow() time.Time { return time.Now().UTC() }

// ListTasks returns the caller's tasks matching filter, ordered by sort.
func (s *TaskService) ListTasks(ctx context.Context, userID string, filter query.Filter, sort query.Sort) ([]domain.Task, error) {
	if err := sort.Validate(); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return query.Apply(tasks, userID, filter, sort)
}

// CreateTask stores a new task owned by userID with defaults applied.
func (s *TaskService) CreateTask(ctx context.Context, userID string, in domain.CreateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrTitleRequired
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}
	category := in.Category
	if category == "" {
		category = domain.DefaultCategory
	}

	now := s.now()
	task := domain.Task{
		ID:          s.newID(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
		Category:    category,
		Completed:   false,
		Recurring:   in.Recurring,
		Subtasks:    []domain.Subtask{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logFailure(err, "create task", userID)
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("user_id", userID).Msg("task created")
	return &task, nil
}

// UpdateTask merges patch onto the caller's task and refreshes updatedAt.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	task, err := s.repo.Update(ctx, userID, taskID, func(t *domain.Task) error {
		t.Apply(patch)
		t.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.logFailure(err, "update task", userID)
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.repo.Delete(ctx, userID, taskID); err != nil {
		s.logFailure(err, "delete task", userID)
		return err
	}
	s.logger.Info().Str("task_id", taskID).Str("user_id", userID).Msg("task deleted")
	return nil
}

// AddSubtask appends a new subtask to the caller's task.
func (s *TaskService) AddSubtask(ctx context.Context, userID, taskID, title string) (*domain.Subtask, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.ErrSubtaskTitleRequired
	}
	now := s.now()
	sub := domain.Subtask{ID: s.newID(), Title: title, Completed: false, CreatedAt: now}

	_, err := s.repo.Update(ctx, userID, taskID, func(t *domain.Task) error {
		t.Subtasks = append(t.Subtasks, sub)
		t.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.logFailure(err, "add subtask", userID)
		return nil, err
	}
	return &sub, nil
}

// UpdateSubtask locates subtaskID among the caller's tasks and applies patch.
func (s *TaskService) UpdateSubtask(ctx context.Context, userID, subtaskID string, patch domain.SubtaskPatch) (*domain.Subtask, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	var updated domain.Subtask
	_, err := s.repo.MutateSubtask(ctx, userID, subtaskID, func(parent *domain.Task, i int) error {
		parent.Subtasks[i].Apply(patch)
		parent.UpdatedAt = now
		updated = parent.Subtasks[i]
		return nil
	})
	if err != nil {
		s.logFailure(err, "update subtask", userID)
		return nil, err
	}
	return &updated, nil
}

func (s *TaskService) DeleteSubtask(ctx context.Context, userID, subtaskID string) error {
	now := s.now()
	_, err := s.repo.MutateSubtask(ctx, userID, subtaskID, func(parent *domain.Task, i int) error {
		parent.Subtasks = slices.Delete(parent.Subtasks, i, i+1)
		parent.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.logFailure(err, "delete subtask", userID)
		return err
	}
	return nil
}

// logFailure logs store faults. Validation and not-found outcomes are
// ordinary results and stay quiet.
func (s *TaskService) logFailure(err error, op, userID string) {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		s.logger.Error().Err(err).Str("user_id", userID).Msg(op + " failed")
	}
}
