package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

// UseCase implements the owner-scoped task and activity operations. Every
// mutation is write-through: the task is loaded for its owner, mutated in
// memory, and persisted before the result is returned.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return uc.tasks.ListByOwner(ctx, ownerID)
}

func (uc *UseCase) CreateTask(ctx context.Context, ownerID, title string) (*domain.Task, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task title must not be empty")
	}

	task := &domain.Task{
		OwnerID:    ownerID,
		Title:      title,
		Activities: []domain.Activity{},
	}
	return uc.tasks.Create(ctx, task)
}

func (uc *UseCase) RenameTask(ctx context.Context, ownerID, taskID, title string) (*domain.Task, error) {
	return uc.mutate(ctx, ownerID, taskID, func(t *domain.Task) error {
		return t.Rename(title)
	})
}

// DeleteTask removes the task and, implicitly, all its activities.
func (uc *UseCase) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, taskID, ownerID)
}

func (uc *UseCase) AddActivity(ctx context.Context, ownerID, taskID, title string) (*domain.Task, error) {
	return uc.mutate(ctx, ownerID, taskID, func(t *domain.Task) error {
		_, err := t.AddActivity(title)
		return err
	})
}

func (uc *UseCase) CompleteActivity(ctx context.Context, ownerID, taskID, activityID string) (*domain.Task, error) {
	return uc.mutate(ctx, ownerID, taskID, func(t *domain.Task) error {
		return t.CompleteActivity(activityID)
	})
}

func (uc *UseCase) RenameActivity(ctx context.Context, ownerID, taskID, activityID, title string) (*domain.Task, error) {
	return uc.mutate(ctx, ownerID, taskID, func(t *domain.Task) error {
		return t.RenameActivity(activityID, title)
	})
}

func (uc *UseCase) DeleteActivity(ctx context.Context, ownerID, taskID, activityID string) (*domain.Task, error) {
	return uc.mutate(ctx, ownerID, taskID, func(t *domain.Task) error {
		return t.RemoveActivity(activityID)
	})
}

// mutate loads the owner's task, applies the domain operation and persists
// the result. A failed persistence leaves the stored record untouched; the
// caller re-renders from whatever it had.
func (uc *UseCase) mutate(ctx context.Context, ownerID, taskID string, op func(*domain.Task) error) (*domain.Task, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	task, err := uc.tasks.GetByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := op(task); err != nil {
		return nil, err
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		uc.logger.Error("task write-through failed",
			zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}
	return task, nil
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return domain.NewError(domain.ErrCodeUnauthorized, "missing user id")
	}
	return nil
}
