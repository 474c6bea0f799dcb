// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the caller address: the first comma-separated entry of
// X-Forwarded-For when present, otherwise the direct peer address. The
// verifier's allow-list check and the usage recorder must agree on the
// caller address, so both go through here.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := xff
		if i := strings.Index(xff, ","); i >= 0 {
			first = xff[:i]
		}
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
