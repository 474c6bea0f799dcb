// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"testing"
)

func TestCreateAPIKeyRequestStructure(t *testing.T) {
	jsonPayload := `{
		"name": "CI pipeline",
		"allowed_ips": "192.0.2.1,198.51.100.7",
		"rate_limit": 500,
		"can_write": true,
		"expires_at": "2026-01-01T00:00:00Z"
	}`

	var req CreateAPIKeyRequest
	err := json.Unmarshal([]byte(jsonPayload), &req)
	if err != nil {
		t.Fatalf("Failed to unmarshal CreateAPIKeyRequest: %v", err)
	}

	if req.Name != "CI pipeline" {
		t.Errorf("Expected name 'CI pipeline', got %s", req.Name)
	}
	if req.AllowedIPs != "192.0.2.1,198.51.100.7" {
		t.Errorf("Unexpected allowed_ips: %s", req.AllowedIPs)
	}
	if req.RateLimit == nil || *req.RateLimit != 500 {
		t.Errorf("Expected rate_limit 500, got %v", req.RateLimit)
	}
	if req.CanWrite == nil || !*req.CanWrite {
		t.Errorf("Expected can_write true, got %v", req.CanWrite)
	}
	if req.CanRead != nil {
		t.Errorf("Absent can_read should stay nil so the default applies, got %v", req.CanRead)
	}
	if req.ExpiresAt == nil || *req.ExpiresAt != "2026-01-01T00:00:00Z" {
		t.Errorf("Unexpected expires_at: %v", req.ExpiresAt)
	}
}

func TestCreateAPIKeyRequestMinimal(t *testing.T) {
	var req CreateAPIKeyRequest
	err := json.Unmarshal([]byte(`{"name": "readonly"}`), &req)
	if err != nil {
		t.Fatalf("Failed to unmarshal CreateAPIKeyRequest: %v", err)
	}

	if req.Name != "readonly" {
		t.Errorf("Expected name 'readonly', got %s", req.Name)
	}
	if req.RateLimit != nil || req.CanRead != nil || req.CanWrite != nil || req.CanDelete != nil || req.ExpiresAt != nil {
		t.Error("Optional fields should stay nil when absent")
	}
}
