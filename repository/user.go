package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}
