// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		forwarded  string
		expected   string
	}{
		{"direct peer", "192.0.2.1:54321", "", "192.0.2.1"},
		{"forwarded single", "10.0.0.5:80", "203.0.113.9", "203.0.113.9"},
		{"forwarded chain takes first", "10.0.0.5:80", "203.0.113.9, 10.0.0.5, 10.0.0.1", "203.0.113.9"},
		{"forwarded with whitespace", "10.0.0.5:80", "  203.0.113.9 , 10.0.0.5", "203.0.113.9"},
		{"remote addr without port", "192.0.2.1", "", "192.0.2.1"},
		{"ipv6 peer", "[2001:db8::1]:443", "", "2001:db8::1"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/v1/properties", nil)
		req.RemoteAddr = tc.remoteAddr
		if tc.forwarded != "" {
			req.Header.Set("X-Forwarded-For", tc.forwarded)
		}
		if got := ClientIP(req); got != tc.expected {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.expected, got)
		}
	}
}
