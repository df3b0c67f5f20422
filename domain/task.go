package domain

import (
	"strconv"
	"strings"
	"time"
)

// Activity is a unit of work inside a Task. Identifiers are
// millisecond-timestamp strings generated at creation time, unique within
// the owning task.
type Activity struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task represents a user-owned list of activities. Completed is derived
// from the activities but persisted redundantly for cheap querying.
type Task struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
	Completed  bool       `json:"completed"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// AllCompleted reports whether a non-empty activity list is fully completed.
// An empty list is never considered completed.
func AllCompleted(activities []Activity) bool {
	if len(activities) == 0 {
		return false
	}
	for _, a := range activities {
		if !a.Completed {
			return false
		}
	}
	return true
}

// CompletionPercent returns the completed share of activities in whole
// percent, rounded down. Empty lists yield 0.
func CompletionPercent(activities []Activity) int {
	if len(activities) == 0 {
		return 0
	}
	done := 0
	for _, a := range activities {
		if a.Completed {
			done++
		}
	}
	return done * 100 / len(activities)
}

// Percent is CompletionPercent over the task's own activities.
func (t *Task) Percent() int {
	if t == nil {
		return 0
	}
	return CompletionPercent(t.Activities)
}

// AddActivity appends a new pending activity. Adding work always reopens
// the task: a done task cannot stay done once something new is on it.
func (t *Task) AddActivity(title string) (*Activity, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewError(ErrCodeInvalid, "activity title must not be empty")
	}

	activity := Activity{
		ID:    t.nextActivityID(time.Now()),
		Title: title,
	}
	t.Activities = append(t.Activities, activity)
	t.recompute()
	return &t.Activities[len(t.Activities)-1], nil
}

// CompleteActivity marks the activity as completed and recomputes the
// task's completion state. Completing an already-completed activity is a
// no-op; there is no transition back to pending.
func (t *Task) CompleteActivity(activityID string) error {
	idx := t.indexOf(activityID)
	if idx < 0 {
		return ErrActivityNotFound
	}
	t.Activities[idx].Completed = true
	t.recompute()
	return nil
}

// RenameActivity replaces the activity title.
func (t *Task) RenameActivity(activityID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return NewError(ErrCodeInvalid, "activity title must not be empty")
	}
	idx := t.indexOf(activityID)
	if idx < 0 {
		return ErrActivityNotFound
	}
	t.Activities[idx].Title = title
	t.recompute()
	return nil
}

// RemoveActivity deletes the activity and recomputes completion, so
// removing the last pending activity closes the task and emptying a task
// reopens it.
func (t *Task) RemoveActivity(activityID string) error {
	idx := t.indexOf(activityID)
	if idx < 0 {
		return ErrActivityNotFound
	}
	t.Activities = append(t.Activities[:idx], t.Activities[idx+1:]...)
	t.recompute()
	return nil
}

// Rename replaces the task title.
func (t *Task) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return NewError(ErrCodeInvalid, "task title must not be empty")
	}
	t.Title = title
	return nil
}

// recompute derives Completed from the activity list. It runs after every
// activity mutation so the persisted flag never drifts from the reduction.
func (t *Task) recompute() {
	t.Completed = AllCompleted(t.Activities)
}

func (t *Task) indexOf(activityID string) int {
	for i, a := range t.Activities {
		if a.ID == activityID {
			return i
		}
	}
	return -1
}

// nextActivityID yields a millisecond-timestamp id, bumped until it does
// not collide with an existing activity of this task.
func (t *Task) nextActivityID(now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if t.indexOf(id) < 0 {
			return id
		}
		ms++
	}
}
