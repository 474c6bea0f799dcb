// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	crypto := NewCrypto()
	password := "testpassword123"

	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "" {
		t.Error("Hash should not be empty")
	}

	hash2, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("Second HashPassword failed: %v", err)
	}

	if hash == hash2 {
		t.Error("Two hashes of same password should be different (due to salt)")
	}
}

func TestVerifyPassword(t *testing.T) {
	crypto := NewCrypto()
	password := "testpassword123"
	wrongPassword := "wrongpassword"

	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	err = crypto.VerifyPassword(password, hash)
	if err != nil {
		t.Errorf("VerifyPassword failed for correct password: %v", err)
	}

	err = crypto.VerifyPassword(wrongPassword, hash)
	if err == nil {
		t.Error("VerifyPassword should fail for wrong password")
	}

	err = crypto.VerifyPassword(password, "invalid-hash")
	if err == nil {
		t.Error("VerifyPassword should fail for invalid hash")
	}
}

func TestHashAPIKey(t *testing.T) {
	key := "pk_testkey_1234567890abcdef"

	hash := HashAPIKey(key)
	if hash == "" {
		t.Fatal("Hash should not be empty")
	}
	if hash == key {
		t.Error("Hash should never equal the key itself")
	}
	if len(hash) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(hash))
	}

	hash2 := HashAPIKey(key)
	if hash != hash2 {
		t.Error("Same key should produce same hash")
	}

	otherHash := HashAPIKey(key + "x")
	if hash == otherHash {
		t.Error("Different keys should produce different hashes")
	}
}

func TestVerifyAPIKeyHash(t *testing.T) {
	key := "pk_testkey_1234567890abcdef"
	hash := HashAPIKey(key)

	if !VerifyAPIKeyHash(key, hash) {
		t.Error("Verification should succeed for correct key")
	}

	altered := key[:len(key)-1] + "Z"
	if VerifyAPIKeyHash(altered, hash) {
		t.Error("Verification should fail when a trailing character is altered")
	}

	if VerifyAPIKeyHash(key, "not-a-hash") {
		t.Error("Verification should fail against a bogus stored hash")
	}
}

func TestGenerateRandomString(t *testing.T) {
	hexToken, err := GenerateRandomString("id_", 16, "hex")
	if err != nil {
		t.Fatalf("GenerateRandomString hex failed: %v", err)
	}
	if !strings.HasPrefix(hexToken, "id_") {
		t.Errorf("Expected id_ prefix, got %s", hexToken)
	}
	if len(hexToken) != 3+32 {
		t.Errorf("Expected 35 characters, got %d", len(hexToken))
	}

	b64Token, err := GenerateRandomString("", 32, "base64")
	if err != nil {
		t.Fatalf("GenerateRandomString base64 failed: %v", err)
	}
	if len(b64Token) != 44 {
		t.Errorf("Expected 44 characters, got %d", len(b64Token))
	}

	urlToken, err := GenerateRandomString("", 32, "base64url")
	if err != nil {
		t.Fatalf("GenerateRandomString base64url failed: %v", err)
	}
	if len(urlToken) != 43 {
		t.Errorf("Expected 43 characters, got %d", len(urlToken))
	}
	if strings.ContainsAny(urlToken, "+/=") {
		t.Errorf("base64url token should not contain +, / or =: %s", urlToken)
	}

	if _, err := GenerateRandomString("", 16, "rot13"); err == nil {
		t.Error("GenerateRandomString should fail for unsupported encoding")
	}

	other, err := GenerateRandomString("", 32, "base64url")
	if err != nil {
		t.Fatalf("GenerateRandomString base64url failed: %v", err)
	}
	if other == urlToken {
		t.Error("Two generated tokens should differ")
	}
}
