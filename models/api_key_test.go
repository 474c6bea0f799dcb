// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"strings"
	"testing"
	"time"
)

func TestAPIKeyMaskedKey(t *testing.T) {
	key := APIKey{KeyPrefix: "abcd1234"}

	masked := key.MaskedKey()
	if !strings.HasPrefix(masked, "abcd1234") {
		t.Errorf("Masked key should start with the prefix, got %s", masked)
	}
	if len(masked) != 8+MaskedKeyLength {
		t.Errorf("Expected masked key length %d, got %d", 8+MaskedKeyLength, len(masked))
	}
	if strings.Contains(masked[8:], "a") {
		t.Error("Masked portion should contain only mask characters")
	}
}

func TestAPIKeyIsExpired(t *testing.T) {
	now := time.Now()

	key := APIKey{}
	if key.IsExpired(now) {
		t.Error("Key without expiry should never be expired")
	}

	past := now.Add(-time.Hour)
	key.ExpiresAt = &past
	if !key.IsExpired(now) {
		t.Error("Key with past expiry should be expired")
	}

	future := now.Add(time.Hour)
	key.ExpiresAt = &future
	if key.IsExpired(now) {
		t.Error("Key with future expiry should not be expired")
	}
}

func TestAPIKeyIsValid(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	key := APIKey{IsActive: true, ExpiresAt: &future}
	if !key.IsValid(now) {
		t.Error("Active, unexpired key should be valid")
	}

	key.IsActive = false
	if key.IsValid(now) {
		t.Error("Inactive key should not be valid")
	}

	key.IsActive = true
	key.ExpiresAt = &past
	if key.IsValid(now) {
		t.Error("Expired key should not be valid")
	}
}

func TestAPIKeyIPAllowed(t *testing.T) {
	key := APIKey{}
	if !key.IPAllowed("203.0.113.9") {
		t.Error("Empty allow-list should admit any IP")
	}

	key.AllowedIPs = "192.0.2.1, 198.51.100.7"
	if !key.IPAllowed("192.0.2.1") {
		t.Error("Listed IP should be allowed")
	}
	if !key.IPAllowed("198.51.100.7") {
		t.Error("Listed IP with surrounding whitespace should be allowed")
	}
	if key.IPAllowed("203.0.113.9") {
		t.Error("Unlisted IP should be rejected")
	}
	if key.IPAllowed("192.0.2.10") {
		t.Error("Exact matching only, no prefix matching")
	}
}
