// SPDX-License-Identifier: GPL-3.0-only

package counters

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrementWithExpiryScript applies the expiry only when the increment
// created the key, keeping the window fixed from the first increment.
// KEYS[1] = key, ARGV[1] = delta, ARGV[2] = expiration in seconds.
var incrementWithExpiryScript = redis.NewScript(`
	local current = redis.call('INCRBY', KEYS[1], ARGV[1])
	if current == tonumber(ARGV[1]) then
		redis.call('EXPIRE', KEYS[1], ARGV[2])
	end
	return current
`)

// RedisStore is the Redis-backed Store, for deployments where several
// server processes must share rate-limit counters.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = "propman:counters:"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (int64, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrKeyNotFound
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

func (s *RedisStore) IncrementWithExpiry(ctx context.Context, key string, delta int64, expiration time.Duration) (int64, error) {
	seconds := int64(expiration / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	result, err := incrementWithExpiryScript.Run(ctx, s.client, []string{s.prefix + key}, delta, seconds).Int64()
	if err != nil {
		return 0, err
	}
	return result, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
