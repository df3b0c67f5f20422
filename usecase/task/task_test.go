package task

import (
	"context"
	"testing"

	"github.com/taskdeck/backend/domain"
)

// --- fakes ---

type fakeTaskRepo struct {
	getFn    func(ctx context.Context, id, ownerID string) (*domain.Task, error)
	listFn   func(ctx context.Context, ownerID string) ([]domain.Task, error)
	createFn func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	updateFn func(ctx context.Context, task *domain.Task) error
	deleteFn func(ctx context.Context, id, ownerID string) error
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	return f.getFn(ctx, id, ownerID)
}
func (f *fakeTaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return f.listFn(ctx, ownerID)
}
func (f *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return f.createFn(ctx, task)
}
func (f *fakeTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	return f.updateFn(ctx, task)
}
func (f *fakeTaskRepo) Delete(ctx context.Context, id, ownerID string) error {
	return f.deleteFn(ctx, id, ownerID)
}

func storedTask() *domain.Task {
	return &domain.Task{
		ID:      "t1",
		OwnerID: "u1",
		Title:   "Groceries",
		Activities: []domain.Activity{
			{ID: "a1", Title: "Milk", Completed: true},
			{ID: "a2", Title: "Bread"},
		},
	}
}

// --- tests ---

func TestCreateTask(t *testing.T) {
	var created *domain.Task
	repo := &fakeTaskRepo{
		createFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			created = task
			task.ID = "t1"
			return task, nil
		},
	}
	uc := New(repo, nil)

	got, err := uc.CreateTask(context.Background(), "u1", "  Groceries  ")
	if err != nil {
		t.Fatalf("CreateTask() err=%v", err)
	}
	if got.Title != "Groceries" {
		t.Fatalf("title=%q, want %q", got.Title, "Groceries")
	}
	if created.OwnerID != "u1" {
		t.Fatalf("owner=%q, want %q", created.OwnerID, "u1")
	}
	if created.Completed {
		t.Fatalf("new task must start open")
	}
	if created.Activities == nil || len(created.Activities) != 0 {
		t.Fatalf("new task must start with an empty activity list")
	}
}

func TestCreateTaskEmptyTitle(t *testing.T) {
	uc := New(&fakeTaskRepo{}, nil)
	if _, err := uc.CreateTask(context.Background(), "u1", "  "); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("CreateTask(blank) err=%v, want INVALID", err)
	}
}

func TestMissingOwnerRejected(t *testing.T) {
	uc := New(&fakeTaskRepo{}, nil)
	if _, err := uc.ListTasks(context.Background(), ""); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Fatalf("ListTasks(no owner) err=%v, want UNAUTHORIZED", err)
	}
	if _, err := uc.AddActivity(context.Background(), "", "t1", "x"); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Fatalf("AddActivity(no owner) err=%v, want UNAUTHORIZED", err)
	}
	if err := uc.DeleteTask(context.Background(), "", "t1"); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Fatalf("DeleteTask(no owner) err=%v, want UNAUTHORIZED", err)
	}
}

func TestCompleteActivityWritesThrough(t *testing.T) {
	var updated *domain.Task
	repo := &fakeTaskRepo{
		getFn: func(ctx context.Context, id, ownerID string) (*domain.Task, error) {
			if id != "t1" || ownerID != "u1" {
				t.Fatalf("lookup id=%q owner=%q, want t1/u1", id, ownerID)
			}
			return storedTask(), nil
		},
		updateFn: func(ctx context.Context, task *domain.Task) error {
			updated = task
			return nil
		},
	}
	uc := New(repo, nil)

	got, err := uc.CompleteActivity(context.Background(), "u1", "t1", "a2")
	if err != nil {
		t.Fatalf("CompleteActivity() err=%v", err)
	}
	if updated == nil {
		t.Fatalf("mutation must persist before returning")
	}
	if !got.Completed {
		t.Fatalf("completing the last activity must close the task")
	}
	if !updated.Activities[1].Completed {
		t.Fatalf("persisted record must carry the completed activity")
	}
}

func TestCompleteActivityUnknownActivity(t *testing.T) {
	repo := &fakeTaskRepo{
		getFn: func(ctx context.Context, id, ownerID string) (*domain.Task, error) {
			return storedTask(), nil
		},
		updateFn: func(ctx context.Context, task *domain.Task) error {
			t.Fatalf("failed mutation must not persist")
			return nil
		},
	}
	uc := New(repo, nil)

	if _, err := uc.CompleteActivity(context.Background(), "u1", "t1", "missing"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("CompleteActivity(missing) err=%v, want NOT_FOUND", err)
	}
}

func TestMutationOnForeignTask(t *testing.T) {
	// The store scopes lookups by owner, so a foreign task surfaces as
	// NOT_FOUND rather than leaking its existence.
	repo := &fakeTaskRepo{
		getFn: func(ctx context.Context, id, ownerID string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	uc := New(repo, nil)

	if _, err := uc.AddActivity(context.Background(), "intruder", "t1", "x"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("AddActivity(foreign) err=%v, want NOT_FOUND", err)
	}
}

func TestAddActivityResetsCompletion(t *testing.T) {
	task := storedTask()
	task.Activities[1].Completed = true
	task.Completed = true

	var updated *domain.Task
	repo := &fakeTaskRepo{
		getFn: func(ctx context.Context, id, ownerID string) (*domain.Task, error) {
			return task, nil
		},
		updateFn: func(ctx context.Context, task *domain.Task) error {
			updated = task
			return nil
		},
	}
	uc := New(repo, nil)

	got, err := uc.AddActivity(context.Background(), "u1", "t1", "Eggs")
	if err != nil {
		t.Fatalf("AddActivity() err=%v", err)
	}
	if got.Completed || updated.Completed {
		t.Fatalf("adding an activity must reopen the task in memory and in the store")
	}
}

func TestStoreFailureSurfaces(t *testing.T) {
	repo := &fakeTaskRepo{
		getFn: func(ctx context.Context, id, ownerID string) (*domain.Task, error) {
			return storedTask(), nil
		},
		updateFn: func(ctx context.Context, task *domain.Task) error {
			return domain.StoreError("update", context.DeadlineExceeded)
		},
	}
	uc := New(repo, nil)

	if _, err := uc.CompleteActivity(context.Background(), "u1", "t1", "a2"); !domain.IsDomainError(err, domain.ErrCodeStore) {
		t.Fatalf("CompleteActivity(store down) err=%v, want STORE", err)
	}
}

func TestDeleteTask(t *testing.T) {
	var deletedID, deletedOwner string
	repo := &fakeTaskRepo{
		deleteFn: func(ctx context.Context, id, ownerID string) error {
			deletedID, deletedOwner = id, ownerID
			return nil
		},
	}
	uc := New(repo, nil)

	if err := uc.DeleteTask(context.Background(), "u1", "t1"); err != nil {
		t.Fatalf("DeleteTask() err=%v", err)
	}
	if deletedID != "t1" || deletedOwner != "u1" {
		t.Fatalf("delete id=%q owner=%q, want t1/u1", deletedID, deletedOwner)
	}
}
