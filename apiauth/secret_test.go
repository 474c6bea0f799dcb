// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"strings"
	"testing"

	"propman-server/crypto"
)

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}

	if len(secret.Plain) != 43 {
		t.Errorf("Expected 43-char token, got %d", len(secret.Plain))
	}
	if strings.ContainsAny(secret.Plain, "+/=") {
		t.Errorf("Token should be URL-safe, got %q", secret.Plain)
	}
	if secret.Prefix != secret.Plain[:PrefixLength] {
		t.Errorf("Prefix should be the first %d chars of the token", PrefixLength)
	}
	if secret.Hash != crypto.HashAPIKey(secret.Plain) {
		t.Error("Hash should be the digest of the full token")
	}
	if !crypto.VerifyAPIKeyHash(secret.Plain, secret.Hash) {
		t.Error("Generated token should verify against its own hash")
	}
}

func TestGenerateSecretUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		secret, err := GenerateSecret()
		if err != nil {
			t.Fatalf("GenerateSecret failed: %v", err)
		}
		if seen[secret.Plain] {
			t.Fatal("Duplicate token generated")
		}
		seen[secret.Plain] = true
	}
}
