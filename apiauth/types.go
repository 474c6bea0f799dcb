// SPDX-License-Identifier: GPL-3.0-only

// Package apiauth implements the API key request pipeline: credential
// verification, rate-limit and capability gating, and best-effort usage
// audit logging. The pipeline passes an immutable ResolvedKey between
// steps instead of mutating shared request state.
package apiauth

import (
	"propman-server/models"
	"time"
)

// ResolvedKey is the authenticated principal produced by the Verifier and
// consumed by the Gate, the protected handler and the Recorder. It is a
// value snapshot; pipeline steps never write back into it.
type ResolvedKey struct {
	Key        models.APIKey
	User       models.User
	VerifiedAt time.Time
	ClientIP   string
}
