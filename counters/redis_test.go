// SPDX-License-Identifier: GPL-3.0-only

package counters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisConfig{Address: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRedisStoreIncrementAndGet(t *testing.T) {
	store := newTestRedisStore(t)
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

func TestRedisStoreMissingKey(t *testing.T) {
	store := newTestRedisStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestRedisStoreWindowExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisConfig{Address: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if _, err := store.IncrementWithExpiry(ctx, "k", 1, time.Hour); err != nil {
		t.Fatalf("IncrementWithExpiry failed: %v", err)
	}

	mr.FastForward(time.Hour + time.Second)

	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound after the window elapses, got %v", err)
	}

	n, err := store.IncrementWithExpiry(ctx, "k", 1, time.Hour)
	if err != nil {
		t.Fatalf("IncrementWithExpiry after expiry failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected counter to restart at 1, got %d", n)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store := newTestRedisStore(t)
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
