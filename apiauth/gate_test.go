// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"propman-server/counters"
	"propman-server/models"
)

func resolvedKey(key models.APIKey) *ResolvedKey {
	if key.ID == 0 {
		key.ID = 1
	}
	return &ResolvedKey{
		Key:        key,
		User:       models.User{ID: 1},
		VerifiedAt: time.Now(),
		ClientIP:   "192.0.2.1",
	}
}

func TestGateRateLimit(t *testing.T) {
	gate := NewGate(counters.NewMemoryStore())
	ctx := context.Background()
	rk := resolvedKey(models.APIKey{RateLimit: 2, CanRead: true})

	for i := 1; i <= 2; i++ {
		if err := gate.Admit(ctx, rk, http.MethodGet); err != nil {
			t.Fatalf("Request %d should be admitted: %v", i, err)
		}
	}

	err := gate.Admit(ctx, rk, http.MethodGet)
	if !IsReason(err, ReasonRateLimitExceeded) {
		t.Fatalf("Third request should be rate_limit_exceeded, got %v", err)
	}

	authErr := err.(*Error)
	if authErr.Limit != 2 {
		t.Errorf("Rejection should carry the limit, got %d", authErr.Limit)
	}
	if authErr.Window != time.Hour {
		t.Errorf("Rejection should carry the window, got %v", authErr.Window)
	}
	if authErr.Status != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", authErr.Status)
	}
}

func TestGateWindowReset(t *testing.T) {
	now := time.Now()
	store := counters.NewMemoryStoreWithClock(func() time.Time { return now })
	gate := NewGate(store)
	ctx := context.Background()
	rk := resolvedKey(models.APIKey{RateLimit: 1, CanRead: true})

	if err := gate.Admit(ctx, rk, http.MethodGet); err != nil {
		t.Fatalf("First request should be admitted: %v", err)
	}
	if err := gate.Admit(ctx, rk, http.MethodGet); !IsReason(err, ReasonRateLimitExceeded) {
		t.Fatalf("Second request should be rejected, got %v", err)
	}

	now = now.Add(time.Hour + time.Second)

	if err := gate.Admit(ctx, rk, http.MethodGet); err != nil {
		t.Fatalf("Request after the window elapses should be admitted: %v", err)
	}

	// The counter restarted at 1 for the admitted request above.
	count, err := store.Get(ctx, "api_key_rate_limit_1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected counter to restart at 1, got %d", count)
	}
}

func TestGatePermissions(t *testing.T) {
	cases := []struct {
		name   string
		key    models.APIKey
		method string
		denied bool
	}{
		{"read only GET", models.APIKey{CanRead: true}, http.MethodGet, false},
		{"read only HEAD", models.APIKey{CanRead: true}, http.MethodHead, false},
		{"read only OPTIONS", models.APIKey{CanRead: true}, http.MethodOptions, false},
		{"no read GET", models.APIKey{}, http.MethodGet, true},
		{"read only POST", models.APIKey{CanRead: true}, http.MethodPost, true},
		{"write POST", models.APIKey{CanWrite: true}, http.MethodPost, false},
		{"write PUT", models.APIKey{CanWrite: true}, http.MethodPut, false},
		{"write PATCH", models.APIKey{CanWrite: true}, http.MethodPatch, false},
		{"write DELETE", models.APIKey{CanWrite: true}, http.MethodDelete, true},
		{"delete DELETE", models.APIKey{CanDelete: true}, http.MethodDelete, false},
	}

	for _, tc := range cases {
		tc.key.RateLimit = 1000
		gate := NewGate(counters.NewMemoryStore())
		err := gate.Admit(context.Background(), resolvedKey(tc.key), tc.method)
		if tc.denied && !IsReason(err, ReasonPermissionDenied) {
			t.Errorf("%s: expected permission_denied, got %v", tc.name, err)
		}
		if !tc.denied && err != nil {
			t.Errorf("%s: expected admission, got %v", tc.name, err)
		}
	}
}

func TestGatePermissionDeniedNamesCapability(t *testing.T) {
	gate := NewGate(counters.NewMemoryStore())
	rk := resolvedKey(models.APIKey{RateLimit: 1000, CanRead: true, CanWrite: true})

	err := gate.Admit(context.Background(), rk, http.MethodDelete)
	if !IsReason(err, ReasonPermissionDenied) {
		t.Fatalf("Expected permission_denied, got %v", err)
	}
	authErr := err.(*Error)
	if authErr.Status != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", authErr.Status)
	}
	if want := "This API key does not have delete permission"; authErr.Message != want {
		t.Errorf("Expected message %q, got %q", want, authErr.Message)
	}
}

// Quota is consumed before the capability check and is not refunded when
// the check denies; this preserves the upstream accounting behavior.
func TestGatePermissionDenialConsumesQuota(t *testing.T) {
	gate := NewGate(counters.NewMemoryStore())
	ctx := context.Background()
	rk := resolvedKey(models.APIKey{RateLimit: 2, CanRead: true})

	for i := 0; i < 2; i++ {
		if err := gate.Admit(ctx, rk, http.MethodPost); !IsReason(err, ReasonPermissionDenied) {
			t.Fatalf("POST without write should be permission_denied, got %v", err)
		}
	}

	// Both denied POSTs consumed quota, so a permitted GET now hits the
	// rate limit instead.
	if err := gate.Admit(ctx, rk, http.MethodGet); !IsReason(err, ReasonRateLimitExceeded) {
		t.Errorf("Expected rate_limit_exceeded after denied calls consumed quota, got %v", err)
	}
}

func TestGateFailsOpenOnCounterError(t *testing.T) {
	gate := NewGate(failingStore{})
	rk := resolvedKey(models.APIKey{RateLimit: 1, CanRead: true})

	for i := 0; i < 3; i++ {
		if err := gate.Admit(context.Background(), rk, http.MethodGet); err != nil {
			t.Errorf("Gate should fail open when the counter store errors, got %v", err)
		}
	}
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (int64, error) {
	return 0, context.DeadlineExceeded
}

func (failingStore) IncrementWithExpiry(ctx context.Context, key string, delta int64, expiration time.Duration) (int64, error) {
	return 0, context.DeadlineExceeded
}

func (failingStore) Delete(ctx context.Context, key string) error { return nil }
func (failingStore) Close() error                                 { return nil }
