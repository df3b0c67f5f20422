package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

// TaskRepository is the owner-scoped task store. Every lookup and mutation
// carries the owner id so ownership is enforced at the store layer, not by
// filtering on the way out.
type TaskRepository interface {
	GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id, ownerID string) error
}
