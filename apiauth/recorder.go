// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"time"
	"unicode/utf8"

	"propman-server/commons"
	"propman-server/models"
)

// MaxUserAgentLength bounds the stored user agent.
const MaxUserAgentLength = 500

// Recorder writes one audit entry per completed request that carried a
// resolved key, then bumps the key's usage counters. It is strictly
// best-effort: no failure here may alter the primary response.
type Recorder struct {
	Usage UsageStore
	Keys  KeyStore
}

// RequestInfo captures the response-side facts the audit entry needs.
type RequestInfo struct {
	Method     string
	Path       string
	UserAgent  string
	ClientIP   string
	StatusCode int
	FinishedAt time.Time
}

func (r *Recorder) Record(rk *ResolvedKey, info RequestInfo) {
	userAgent := truncateUserAgent(info.UserAgent)

	entry := &models.APIKeyUsageLog{
		APIKeyID:     rk.Key.ID,
		Endpoint:     info.Path,
		Method:       info.Method,
		IPAddress:    info.ClientIP,
		UserAgent:    userAgent,
		StatusCode:   info.StatusCode,
		ResponseTime: info.FinishedAt.Sub(rk.VerifiedAt).Seconds(),
	}

	if err := r.Usage.Write(entry); err != nil {
		commons.Logger.Errorf("Failed to write API key usage log: %v", err)
		return
	}

	if err := r.Keys.Touch(rk.Key.ID, info.FinishedAt); err != nil {
		commons.Logger.Errorf("Failed to update API key usage counters: %v", err)
	}
}

// truncateUserAgent caps the value at MaxUserAgentLength bytes without
// cutting through a multi-byte rune.
func truncateUserAgent(userAgent string) string {
	if len(userAgent) <= MaxUserAgentLength {
		return userAgent
	}
	cut := MaxUserAgentLength
	for cut > 0 && !utf8.RuneStart(userAgent[cut]) {
		cut--
	}
	return userAgent[:cut]
}
