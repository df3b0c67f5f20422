package statestore

import (
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "states.db"), "")
	if err != nil {
		t.Fatalf("Open() err=%v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutTake(t *testing.T) {
	store := openStore(t)

	if err := store.Put("s1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Put() err=%v", err)
	}

	found, err := store.Take("s1")
	if err != nil {
		t.Fatalf("Take() err=%v", err)
	}
	if !found {
		t.Fatalf("Take(live)=false, want true")
	}

	// States are single-use.
	found, err = store.Take("s1")
	if err != nil {
		t.Fatalf("second Take() err=%v", err)
	}
	if found {
		t.Fatalf("Take(consumed)=true, want false")
	}
}

func TestTakeUnknown(t *testing.T) {
	store := openStore(t)
	found, err := store.Take("missing")
	if err != nil {
		t.Fatalf("Take() err=%v", err)
	}
	if found {
		t.Fatalf("Take(unknown)=true, want false")
	}
}

func TestTakeExpired(t *testing.T) {
	store := openStore(t)

	if err := store.Put("old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Put() err=%v", err)
	}
	found, err := store.Take("old")
	if err != nil {
		t.Fatalf("Take() err=%v", err)
	}
	if found {
		t.Fatalf("Take(expired)=true, want false")
	}
}

func TestCleanup(t *testing.T) {
	store := openStore(t)

	if err := store.Put("old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Put() err=%v", err)
	}
	if err := store.Put("live", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Put() err=%v", err)
	}

	removed, err := store.Cleanup(time.Now())
	if err != nil {
		t.Fatalf("Cleanup() err=%v", err)
	}
	if removed != 1 {
		t.Fatalf("removed=%d, want 1", removed)
	}

	size, err := store.Size()
	if err != nil {
		t.Fatalf("Size() err=%v", err)
	}
	if size != 1 {
		t.Fatalf("size=%d, want 1", size)
	}
}
