// SPDX-License-Identifier: GPL-3.0-only

// Package counters provides the shared counter storage behind API key
// rate limiting: atomic increment-and-get with a per-key expiry window.
package counters

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when a counter does not exist or its
// window has elapsed.
var ErrKeyNotFound = errors.New("counter not found")

type Store interface {
	// Get returns the current value for the key, or ErrKeyNotFound when
	// the key is absent or expired.
	Get(ctx context.Context, key string) (int64, error)

	// IncrementWithExpiry atomically increments the key by delta and
	// returns the post-increment value. The expiration is applied only
	// when the increment creates the key, so the window is fixed from
	// the first increment.
	IncrementWithExpiry(ctx context.Context, key string, delta int64, expiration time.Duration) (int64, error)

	// Delete removes the key.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
