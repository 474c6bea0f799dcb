// SPDX-License-Identifier: GPL-3.0-only

package counters

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreIncrementAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	n, err := store.IncrementWithExpiry(ctx, "k", 1, time.Hour)
	if err != nil {
		t.Fatalf("IncrementWithExpiry failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 after first increment, got %d", n)
	}

	n, err = store.IncrementWithExpiry(ctx, "k", 1, time.Hour)
	if err != nil {
		t.Fatalf("Second IncrementWithExpiry failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 after second increment, got %d", n)
	}

	val, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != 2 {
		t.Errorf("Expected 2 from Get, got %d", val)
	}
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestMemoryStoreLazyExpiry(t *testing.T) {
	now := time.Now()
	store := NewMemoryStoreWithClock(func() time.Time { return now })
	ctx := context.Background()

	if _, err := store.IncrementWithExpiry(ctx, "k", 1, time.Hour); err != nil {
		t.Fatalf("IncrementWithExpiry failed: %v", err)
	}

	now = now.Add(59 * time.Minute)
	if val, err := store.Get(ctx, "k"); err != nil || val != 1 {
		t.Errorf("Expected 1 before the window elapses, got %d (%v)", val, err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound after the window elapses, got %v", err)
	}

	// The next increment starts a fresh window at 1.
	n, err := store.IncrementWithExpiry(ctx, "k", 1, time.Hour)
	if err != nil {
		t.Fatalf("IncrementWithExpiry after expiry failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected counter to restart at 1, got %d", n)
	}
}

func TestMemoryStoreWindowFixedAtFirstIncrement(t *testing.T) {
	now := time.Now()
	store := NewMemoryStoreWithClock(func() time.Time { return now })
	ctx := context.Background()

	if _, err := store.IncrementWithExpiry(ctx, "k", 1, time.Hour); err != nil {
		t.Fatalf("IncrementWithExpiry failed: %v", err)
	}

	// Later increments must not push the expiry out.
	now = now.Add(50 * time.Minute)
	if _, err := store.IncrementWithExpiry(ctx, "k", 1, time.Hour); err != nil {
		t.Fatalf("IncrementWithExpiry failed: %v", err)
	}

	now = now.Add(11 * time.Minute)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Error("Window should expire one hour after the first increment")
	}
}

func TestMemoryStoreConcurrentIncrements(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.IncrementWithExpiry(ctx, "k", 1, time.Hour); err != nil {
				t.Errorf("IncrementWithExpiry failed: %v", err)
			}
		}()
	}
	wg.Wait()

	val, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != 100 {
		t.Errorf("Expected 100 after 100 concurrent increments, got %d", val)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.IncrementWithExpiry(ctx, "k", 1, time.Hour); err != nil {
		t.Fatalf("IncrementWithExpiry failed: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.IncrementWithExpiry(ctx, "k", 1, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
