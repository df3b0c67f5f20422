package directory

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

// Entry is one row of the public user directory.
type Entry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UseCase serves the registered-user directory. Concurrent page loads
// coalesce into a single store read.
type UseCase struct {
	users  repository.UserRepository
	group  singleflight.Group
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) ListUsers(ctx context.Context) ([]Entry, error) {
	result, err, _ := uc.group.Do("directory", func() (interface{}, error) {
		users, err := uc.users.List(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(users))
		for i := range users {
			entries = append(entries, toEntry(&users[i]))
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Entry), nil
}

func toEntry(user *domain.User) Entry {
	email := user.Email
	if email == "" {
		email = "(no email)"
	}
	return Entry{
		ID:    user.ID,
		Name:  user.DirectoryName(),
		Email: email,
	}
}
