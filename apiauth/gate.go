// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"context"
	"fmt"
	"net/http"

	"propman-server/commons"
	"propman-server/counters"
	"propman-server/models"
	"time"
)

// RateLimitWindow is the fixed accounting window for per-key quotas.
const RateLimitWindow = time.Hour

// Gate admits or rejects a verified request: quota first, then method
// capabilities. Rejections short-circuit before the protected handler.
type Gate struct {
	Counters counters.Store
	Window   time.Duration
}

func NewGate(store counters.Store) *Gate {
	return &Gate{Counters: store, Window: RateLimitWindow}
}

// Admit consumes one unit of the key's quota and checks the method
// against the key's capabilities. The quota is consumed before the
// capability check and is not refunded when that check denies the
// request; permission-denied calls still count against the window.
func (g *Gate) Admit(ctx context.Context, rk *ResolvedKey, method string) error {
	counterKey := fmt.Sprintf("api_key_rate_limit_%d", rk.Key.ID)
	count, err := g.Counters.IncrementWithExpiry(ctx, counterKey, 1, g.Window)
	if err != nil {
		// The gate fails open: a broken counter backend must not take
		// every API consumer down with it.
		commons.Logger.Errorf("Rate limit counter unavailable for key %d, admitting request: %v", rk.Key.ID, err)
	} else if count > int64(rk.Key.RateLimit) {
		return rateLimitExceeded(rk.Key.RateLimit, g.Window)
	}

	return checkPermission(&rk.Key, method)
}

func checkPermission(key *models.APIKey, method string) error {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		if !key.CanRead {
			return permissionDenied("read")
		}
	case http.MethodDelete:
		if !key.CanDelete {
			return permissionDenied("delete")
		}
	default:
		if !key.CanWrite {
			return permissionDenied("write")
		}
	}
	return nil
}
