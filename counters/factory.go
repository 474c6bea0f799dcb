// SPDX-License-Identifier: GPL-3.0-only

package counters

import (
	"context"
	"propman-server/commons"
	"strconv"
)

// NewFromEnv selects the counter backend from COUNTER_BACKEND: "redis"
// for a shared Redis store, anything else for the in-process store.
func NewFromEnv() Store {
	if commons.GetEnv("COUNTER_BACKEND") != "redis" {
		commons.Logger.Debug("Using in-memory counter store")
		return NewMemoryStore()
	}

	cfg := RedisConfig{
		Address:  commons.GetEnv("REDIS_ADDR", "localhost:6379"),
		Password: commons.GetEnv("REDIS_PASSWORD"),
	}
	if v := commons.GetEnv("REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.DB = i
		}
	}

	store, err := NewRedisStore(context.Background(), cfg)
	if err != nil {
		commons.Logger.Errorf("Redis counter store unavailable, falling back to in-memory: %v", err)
		return NewMemoryStore()
	}
	commons.Logger.Infof("Using Redis counter store at %s", cfg.Address)
	return store
}
