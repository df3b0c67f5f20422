package domain

import (
	"testing"
)

func TestAllCompleted(t *testing.T) {
	cases := []struct {
		name       string
		activities []Activity
		want       bool
	}{
		{"empty list is never completed", nil, false},
		{"single pending", []Activity{{ID: "1", Title: "a"}}, false},
		{"single completed", []Activity{{ID: "1", Title: "a", Completed: true}}, true},
		{"mixed", []Activity{{ID: "1", Completed: true}, {ID: "2"}}, false},
		{"all completed", []Activity{{ID: "1", Completed: true}, {ID: "2", Completed: true}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AllCompleted(tc.activities); got != tc.want {
				t.Fatalf("AllCompleted()=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestCompletionPercent(t *testing.T) {
	if got := CompletionPercent(nil); got != 0 {
		t.Fatalf("CompletionPercent(empty)=%d, want 0", got)
	}
	if got := CompletionPercent([]Activity{{Completed: true}}); got != 100 {
		t.Fatalf("CompletionPercent(1/1)=%d, want 100", got)
	}
	if got := CompletionPercent([]Activity{{Completed: true}, {}}); got != 50 {
		t.Fatalf("CompletionPercent(1/2)=%d, want 50", got)
	}
	if got := CompletionPercent([]Activity{{Completed: true}, {Completed: true}, {}}); got != 66 {
		t.Fatalf("CompletionPercent(2/3)=%d, want 66", got)
	}
}

func TestAddActivity(t *testing.T) {
	task := &Task{Title: "t"}

	a, err := task.AddActivity("  Milk  ")
	if err != nil {
		t.Fatalf("AddActivity() err=%v", err)
	}
	if a.Title != "Milk" {
		t.Fatalf("title=%q, want %q", a.Title, "Milk")
	}
	if a.Completed {
		t.Fatalf("new activity must start pending")
	}
	if a.ID == "" {
		t.Fatalf("new activity must get an id")
	}
}

func TestAddActivityEmptyTitle(t *testing.T) {
	task := &Task{Title: "t"}
	if _, err := task.AddActivity("   "); !IsDomainError(err, ErrCodeInvalid) {
		t.Fatalf("AddActivity(blank) err=%v, want INVALID", err)
	}
	if len(task.Activities) != 0 {
		t.Fatalf("blank add must not append")
	}
}

func TestAddActivityReopensCompletedTask(t *testing.T) {
	task := &Task{
		Title:      "t",
		Activities: []Activity{{ID: "1", Title: "a", Completed: true}},
		Completed:  true,
	}

	a, err := task.AddActivity("b")
	if err != nil {
		t.Fatalf("AddActivity() err=%v", err)
	}
	if task.Completed {
		t.Fatalf("adding work must reopen the task")
	}
	if a.Completed {
		t.Fatalf("new activity must be pending")
	}
}

func TestAddActivityIDsUnique(t *testing.T) {
	task := &Task{Title: "t"}
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		a, err := task.AddActivity("x")
		if err != nil {
			t.Fatalf("AddActivity() err=%v", err)
		}
		if seen[a.ID] {
			t.Fatalf("duplicate activity id %q", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestCompleteActivity(t *testing.T) {
	task := &Task{
		Title:      "t",
		Activities: []Activity{{ID: "1", Title: "a"}, {ID: "2", Title: "b"}},
	}

	if err := task.CompleteActivity("1"); err != nil {
		t.Fatalf("CompleteActivity() err=%v", err)
	}
	if task.Completed {
		t.Fatalf("task must stay open with a pending activity left")
	}

	if err := task.CompleteActivity("2"); err != nil {
		t.Fatalf("CompleteActivity() err=%v", err)
	}
	if !task.Completed {
		t.Fatalf("task must close when the last activity completes")
	}
}

func TestCompleteActivityIdempotent(t *testing.T) {
	task := &Task{
		Title:      "t",
		Activities: []Activity{{ID: "1", Title: "a"}},
	}

	if err := task.CompleteActivity("1"); err != nil {
		t.Fatalf("first complete err=%v", err)
	}
	before := *task
	if err := task.CompleteActivity("1"); err != nil {
		t.Fatalf("second complete err=%v", err)
	}
	if task.Completed != before.Completed || len(task.Activities) != len(before.Activities) {
		t.Fatalf("second complete changed state")
	}
}

func TestCompleteActivityNotFound(t *testing.T) {
	task := &Task{Title: "t", Activities: []Activity{{ID: "1", Title: "a"}}}
	if err := task.CompleteActivity("missing"); !IsDomainError(err, ErrCodeNotFound) {
		t.Fatalf("CompleteActivity(missing) err=%v, want NOT_FOUND", err)
	}
}

func TestRemoveActivityRecomputes(t *testing.T) {
	task := &Task{
		Title: "t",
		Activities: []Activity{
			{ID: "1", Title: "a", Completed: true},
			{ID: "2", Title: "b"},
		},
	}

	// Removing the only pending activity leaves everything completed.
	if err := task.RemoveActivity("2"); err != nil {
		t.Fatalf("RemoveActivity() err=%v", err)
	}
	if !task.Completed {
		t.Fatalf("task must close once only completed activities remain")
	}

	// Emptying the task reopens it: an empty list is never completed.
	if err := task.RemoveActivity("1"); err != nil {
		t.Fatalf("RemoveActivity() err=%v", err)
	}
	if task.Completed {
		t.Fatalf("empty task must not be completed")
	}
}

func TestRemoveActivityNotFound(t *testing.T) {
	task := &Task{Title: "t"}
	if err := task.RemoveActivity("1"); !IsDomainError(err, ErrCodeNotFound) {
		t.Fatalf("RemoveActivity(missing) err=%v, want NOT_FOUND", err)
	}
}

func TestRenameActivity(t *testing.T) {
	task := &Task{Title: "t", Activities: []Activity{{ID: "1", Title: "a"}}}

	if err := task.RenameActivity("1", "renamed"); err != nil {
		t.Fatalf("RenameActivity() err=%v", err)
	}
	if task.Activities[0].Title != "renamed" {
		t.Fatalf("title=%q, want %q", task.Activities[0].Title, "renamed")
	}
	if err := task.RenameActivity("1", " "); !IsDomainError(err, ErrCodeInvalid) {
		t.Fatalf("RenameActivity(blank) err=%v, want INVALID", err)
	}
	if err := task.RenameActivity("missing", "x"); !IsDomainError(err, ErrCodeNotFound) {
		t.Fatalf("RenameActivity(missing) err=%v, want NOT_FOUND", err)
	}
}

// Mirrors a full dashboard session: two activities completed one by one,
// then new work arrives.
func TestGroceriesScenario(t *testing.T) {
	task := &Task{Title: "Groceries"}

	a1, err := task.AddActivity("Milk")
	if err != nil {
		t.Fatalf("add Milk err=%v", err)
	}
	a2, err := task.AddActivity("Bread")
	if err != nil {
		t.Fatalf("add Bread err=%v", err)
	}
	if task.Completed || task.Percent() != 0 {
		t.Fatalf("fresh task: completed=%v percent=%d, want false/0", task.Completed, task.Percent())
	}

	if err := task.CompleteActivity(a1.ID); err != nil {
		t.Fatalf("complete Milk err=%v", err)
	}
	if task.Completed || task.Percent() != 50 {
		t.Fatalf("after Milk: completed=%v percent=%d, want false/50", task.Completed, task.Percent())
	}

	if err := task.CompleteActivity(a2.ID); err != nil {
		t.Fatalf("complete Bread err=%v", err)
	}
	if !task.Completed || task.Percent() != 100 {
		t.Fatalf("after Bread: completed=%v percent=%d, want true/100", task.Completed, task.Percent())
	}

	if _, err := task.AddActivity("Eggs"); err != nil {
		t.Fatalf("add Eggs err=%v", err)
	}
	if task.Completed {
		t.Fatalf("new activity must reset completion")
	}
	if task.Percent() != 66 {
		t.Fatalf("after Eggs: percent=%d, want 66", task.Percent())
	}
}

func TestTaskRename(t *testing.T) {
	task := &Task{Title: "old"}
	if err := task.Rename("new"); err != nil {
		t.Fatalf("Rename() err=%v", err)
	}
	if task.Title != "new" {
		t.Fatalf("title=%q, want %q", task.Title, "new")
	}
	if err := task.Rename(""); !IsDomainError(err, ErrCodeInvalid) {
		t.Fatalf("Rename(blank) err=%v, want INVALID", err)
	}
}
