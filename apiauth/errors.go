// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Reason is the machine-readable rejection code carried to API consumers.
type Reason string

const (
	ReasonMalformedCredential Reason = "malformed_credential"
	ReasonUnknownKey          Reason = "unknown_key"
	ReasonInvalidSecret       Reason = "invalid_secret"
	ReasonKeyInactive         Reason = "key_inactive"
	ReasonKeyExpired          Reason = "key_expired"
	ReasonIPNotAllowed        Reason = "ip_not_allowed"
	ReasonRateLimitExceeded   Reason = "rate_limit_exceeded"
	ReasonPermissionDenied    Reason = "permission_denied"
)

// Error is a terminal rejection of a single request. Credential problems
// map to 401, policy blocks to 403, quota to 429; all are request-scoped.
type Error struct {
	Reason  Reason
	Message string
	Status  int

	// Limit and Window are set for rate_limit_exceeded only.
	Limit  int
	Window time.Duration
}

func (e *Error) Error() string {
	return string(e.Reason) + ": " + e.Message
}

// IsReason reports whether err is an apiauth rejection with the given code.
func IsReason(err error, reason Reason) bool {
	var authErr *Error
	return errors.As(err, &authErr) && authErr.Reason == reason
}

func malformedCredential(message string) *Error {
	return &Error{Reason: ReasonMalformedCredential, Message: message, Status: http.StatusUnauthorized}
}

func unknownKey() *Error {
	return &Error{Reason: ReasonUnknownKey, Message: "Invalid API key", Status: http.StatusUnauthorized}
}

func invalidSecret() *Error {
	return &Error{Reason: ReasonInvalidSecret, Message: "Invalid API key", Status: http.StatusUnauthorized}
}

func keyInactive() *Error {
	return &Error{Reason: ReasonKeyInactive, Message: "API key is inactive", Status: http.StatusForbidden}
}

func keyExpired() *Error {
	return &Error{Reason: ReasonKeyExpired, Message: "API key has expired", Status: http.StatusForbidden}
}

func ipNotAllowed(ip string) *Error {
	return &Error{
		Reason:  ReasonIPNotAllowed,
		Message: fmt.Sprintf("Access denied from IP address: %s", ip),
		Status:  http.StatusForbidden,
	}
}

func rateLimitExceeded(limit int, window time.Duration) *Error {
	return &Error{
		Reason:  ReasonRateLimitExceeded,
		Message: fmt.Sprintf("You have exceeded the rate limit of %d requests per hour", limit),
		Status:  http.StatusTooManyRequests,
		Limit:   limit,
		Window:  window,
	}
}

func permissionDenied(capability string) *Error {
	return &Error{
		Reason:  ReasonPermissionDenied,
		Message: fmt.Sprintf("This API key does not have %s permission", capability),
		Status:  http.StatusForbidden,
	}
}
