// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"propman-server/models"
)

func TestRecorderWritesEntry(t *testing.T) {
	store := newFakeStore()
	recorder := &Recorder{Usage: store, Keys: store}

	verified := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	finished := verified.Add(250 * time.Millisecond)
	rk := &ResolvedKey{
		Key:        models.APIKey{ID: 7},
		VerifiedAt: verified,
		ClientIP:   "192.0.2.1",
	}

	recorder.Record(rk, RequestInfo{
		Method:     "GET",
		Path:       "/v1/properties",
		UserAgent:  "curl/8.5.0",
		ClientIP:   rk.ClientIP,
		StatusCode: 200,
		FinishedAt: finished,
	})

	if len(store.entries) != 1 {
		t.Fatalf("Expected one usage entry, got %d", len(store.entries))
	}
	entry := store.entries[0]
	if entry.APIKeyID != 7 {
		t.Errorf("Expected key ID 7, got %d", entry.APIKeyID)
	}
	if entry.Endpoint != "/v1/properties" || entry.Method != "GET" {
		t.Errorf("Unexpected endpoint/method: %s %s", entry.Method, entry.Endpoint)
	}
	if entry.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", entry.StatusCode)
	}
	if entry.ResponseTime != 0.25 {
		t.Errorf("Expected response time 0.25s, got %v", entry.ResponseTime)
	}
	if store.touched != 1 {
		t.Errorf("Expected usage counters to be touched once, got %d", store.touched)
	}
	if !store.lastTouched.Equal(finished) {
		t.Errorf("Expected last_used_at %v, got %v", finished, store.lastTouched)
	}
}

func TestRecorderTruncatesUserAgent(t *testing.T) {
	store := newFakeStore()
	recorder := &Recorder{Usage: store, Keys: store}
	rk := &ResolvedKey{Key: models.APIKey{ID: 1}, VerifiedAt: time.Now()}

	recorder.Record(rk, RequestInfo{
		Method:     "GET",
		Path:       "/v1/tenants",
		UserAgent:  strings.Repeat("x", MaxUserAgentLength+100),
		StatusCode: 200,
		FinishedAt: time.Now(),
	})

	if got := len(store.entries[0].UserAgent); got != MaxUserAgentLength {
		t.Errorf("Expected user agent truncated to %d chars, got %d", MaxUserAgentLength, got)
	}
}

func TestTruncateUserAgentKeepsRunesWhole(t *testing.T) {
	// Each rune is 3 bytes, so the byte cap lands mid-rune.
	ua := strings.Repeat("日", MaxUserAgentLength)

	got := truncateUserAgent(ua)
	if len(got) > MaxUserAgentLength {
		t.Errorf("Expected at most %d bytes, got %d", MaxUserAgentLength, len(got))
	}
	if !utf8.ValidString(got) {
		t.Error("Truncated user agent must remain valid UTF-8")
	}
	if len(got) != MaxUserAgentLength-MaxUserAgentLength%3 {
		t.Errorf("Expected truncation to back off to the last whole rune, got %d bytes", len(got))
	}

	if got := truncateUserAgent("curl/8.5.0"); got != "curl/8.5.0" {
		t.Errorf("Short user agent should pass through unchanged, got %q", got)
	}
}

func TestRecorderSkipsTouchWhenWriteFails(t *testing.T) {
	store := newFakeStore()
	store.writeErr = errors.New("disk full")
	recorder := &Recorder{Usage: store, Keys: store}
	rk := &ResolvedKey{Key: models.APIKey{ID: 1}, VerifiedAt: time.Now()}

	// Must not panic and must not return; failures stay internal.
	recorder.Record(rk, RequestInfo{Method: "GET", Path: "/v1/leases", StatusCode: 200, FinishedAt: time.Now()})

	if len(store.entries) != 0 {
		t.Errorf("Expected no entries after write failure, got %d", len(store.entries))
	}
	if store.touched != 0 {
		t.Errorf("Counters must not be touched when the log write fails, got %d touches", store.touched)
	}
}

func TestRecorderSwallowsTouchFailure(t *testing.T) {
	store := newFakeStore()
	store.touchErr = errors.New("deadlock")
	recorder := &Recorder{Usage: store, Keys: store}
	rk := &ResolvedKey{Key: models.APIKey{ID: 1}, VerifiedAt: time.Now()}

	recorder.Record(rk, RequestInfo{Method: "DELETE", Path: "/v1/leases/3", StatusCode: 204, FinishedAt: time.Now()})

	if len(store.entries) != 1 {
		t.Errorf("Entry should still be written when the touch fails, got %d", len(store.entries))
	}
}
