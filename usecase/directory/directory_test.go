package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/taskdeck/backend/domain"
)

type fakeUserRepo struct {
	listFn func(ctx context.Context) ([]domain.User, error)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserRepo) Upsert(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error)     { return f.listFn(ctx) }

func TestListUsers(t *testing.T) {
	repo := &fakeUserRepo{listFn: func(ctx context.Context) ([]domain.User, error) {
		return []domain.User{
			{ID: "u1", Email: "ana@example.com", DisplayName: "Ana"},
			{ID: "u2", Email: "bob@example.com"},
		}, nil
	}}
	uc := New(repo, nil)

	entries, err := uc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() err=%v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries=%d, want 2", len(entries))
	}
	if entries[0].Name != "Ana" || entries[0].Email != "ana@example.com" {
		t.Fatalf("entry[0]=%+v", entries[0])
	}
	if entries[1].Name != "(no name)" {
		t.Fatalf("missing display name must fall back, got %q", entries[1].Name)
	}
}

func TestListUsersEmpty(t *testing.T) {
	repo := &fakeUserRepo{listFn: func(ctx context.Context) ([]domain.User, error) {
		return nil, nil
	}}
	uc := New(repo, nil)

	entries, err := uc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() err=%v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries=%d, want 0", len(entries))
	}
}

func TestListUsersStoreFailure(t *testing.T) {
	repo := &fakeUserRepo{listFn: func(ctx context.Context) ([]domain.User, error) {
		return nil, domain.StoreError("list users", errors.New("connection refused"))
	}}
	uc := New(repo, nil)

	if _, err := uc.ListUsers(context.Background()); !domain.IsDomainError(err, domain.ErrCodeStore) {
		t.Fatalf("ListUsers(store down) err=%v, want STORE", err)
	}
}
