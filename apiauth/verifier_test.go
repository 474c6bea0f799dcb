// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"testing"
	"time"

	"propman-server/models"
)

func TestVerifyIgnoresOtherSchemes(t *testing.T) {
	verifier := NewVerifier(newFakeStore())

	for _, header := range []string{"", "Bearer some.jwt.token", "Basic dXNlcjpwYXNz", "ApiKey"} {
		rk, err := verifier.Verify(header, "192.0.2.1")
		if err != nil {
			t.Errorf("Header %q should pass through without error, got %v", header, err)
		}
		if rk != nil {
			t.Errorf("Header %q should not resolve a key", header)
		}
	}
}

func TestVerifyMalformedCredential(t *testing.T) {
	verifier := NewVerifier(newFakeStore())

	_, err := verifier.Verify("ApiKey ", "192.0.2.1")
	if !IsReason(err, ReasonMalformedCredential) {
		t.Errorf("Empty token should be malformed_credential, got %v", err)
	}

	_, err = verifier.Verify("ApiKey short", "192.0.2.1")
	if !IsReason(err, ReasonMalformedCredential) {
		t.Errorf("Token shorter than the prefix should be malformed_credential, got %v", err)
	}
}

func TestVerifyUnknownKey(t *testing.T) {
	verifier := NewVerifier(newFakeStore())

	_, err := verifier.Verify("ApiKey nosuchprefix1234567890", "192.0.2.1")
	if !IsReason(err, ReasonUnknownKey) {
		t.Errorf("Unmatched prefix should be unknown_key, got %v", err)
	}
}

func TestVerifyInvalidSecret(t *testing.T) {
	store := newFakeStore()
	token, _ := issueKey(t, store, nil)
	verifier := NewVerifier(store)

	// Correct prefix, altered trailing character.
	altered := token[:len(token)-1]
	if token[len(token)-1] == 'A' {
		altered += "B"
	} else {
		altered += "A"
	}

	_, err := verifier.Verify("ApiKey "+altered, "192.0.2.1")
	if !IsReason(err, ReasonInvalidSecret) {
		t.Errorf("Altered secret should be invalid_secret, got %v", err)
	}
}

func TestVerifyInactiveKey(t *testing.T) {
	store := newFakeStore()
	token, _ := issueKey(t, store, func(k *models.APIKey) { k.IsActive = false })
	verifier := NewVerifier(store)

	_, err := verifier.Verify("ApiKey "+token, "192.0.2.1")
	if !IsReason(err, ReasonKeyInactive) {
		t.Errorf("Inactive key should be key_inactive, got %v", err)
	}
}

func TestVerifyExpiredKey(t *testing.T) {
	store := newFakeStore()
	past := time.Now().Add(-time.Hour)
	token, _ := issueKey(t, store, func(k *models.APIKey) { k.ExpiresAt = &past })
	verifier := NewVerifier(store)

	// Correct secret and IP; expiry alone must reject.
	_, err := verifier.Verify("ApiKey "+token, "192.0.2.1")
	if !IsReason(err, ReasonKeyExpired) {
		t.Errorf("Expired key should be key_expired, got %v", err)
	}
}

func TestVerifyIPAllowList(t *testing.T) {
	store := newFakeStore()
	token, _ := issueKey(t, store, func(k *models.APIKey) { k.AllowedIPs = "192.0.2.1,198.51.100.7" })
	verifier := NewVerifier(store)

	if _, err := verifier.Verify("ApiKey "+token, "192.0.2.1"); err != nil {
		t.Errorf("Listed IP should verify, got %v", err)
	}

	_, err := verifier.Verify("ApiKey "+token, "203.0.113.9")
	if !IsReason(err, ReasonIPNotAllowed) {
		t.Errorf("Unlisted IP should be ip_not_allowed, got %v", err)
	}
}

func TestVerifySuccess(t *testing.T) {
	store := newFakeStore()
	token, key := issueKey(t, store, nil)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	verifier := &Verifier{Keys: store, Now: func() time.Time { return now }}

	rk, err := verifier.Verify("ApiKey "+token, "192.0.2.1")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if rk == nil {
		t.Fatal("Expected a resolved key")
	}
	if rk.Key.ID != key.ID {
		t.Errorf("Expected key ID %d, got %d", key.ID, rk.Key.ID)
	}
	if rk.User.ID != key.UserID {
		t.Errorf("Expected user ID %d, got %d", key.UserID, rk.User.ID)
	}
	if !rk.VerifiedAt.Equal(now) {
		t.Errorf("Expected VerifiedAt %v, got %v", now, rk.VerifiedAt)
	}
	if rk.ClientIP != "192.0.2.1" {
		t.Errorf("Expected client IP to be carried, got %s", rk.ClientIP)
	}
}
