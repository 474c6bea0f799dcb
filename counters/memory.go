// SPDX-License-Identifier: GPL-3.0-only

package counters

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value      int64
	expiration time.Time
}

// MemoryStore is the in-process Store backend. Expiry is evaluated lazily
// on access; no background sweep runs.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]*entry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates a store with a custom time source.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*entry),
		now:  now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok || s.expired(e) {
		delete(s.data, key)
		return 0, ErrKeyNotFound
	}
	return e.value, nil
}

func (s *MemoryStore) IncrementWithExpiry(ctx context.Context, key string, delta int64, expiration time.Duration) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok || s.expired(e) {
		e = &entry{value: delta}
		if expiration > 0 {
			e.expiration = s.now().Add(expiration)
		}
		s.data[key] = e
		return e.value, nil
	}
	e.value += delta
	return e.value, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) expired(e *entry) bool {
	return !e.expiration.IsZero() && s.now().After(e.expiration)
}
