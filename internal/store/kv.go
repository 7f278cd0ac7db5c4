package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	ErrMiss    = errors.New("cache miss")
	ErrCorrupt = errors.New("cached value cannot be decoded")
)

// KV string key-value store with per-key expiry.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	// Set stores value; ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisKV KV on Redis. Every key is stored under prefix.
type RedisKV struct {
	c      *redis.Client
	prefix string
}

func NewRedisKV(c *redis.Client, prefix string) *RedisKV {
	return &RedisKV{c: c, prefix: prefix}
}

func (r *RedisKV) key(k string) string { return r.prefix + k }

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.c.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

func (r *RedisKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.c.Set(ctx, r.key(key), value, ttl).Err()
}

func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return r.c.Del(ctx, full...).Err()
}

// GetJSON decodes the value at key into dst. It returns ErrMiss when the key
// is absent and ErrCorrupt when the stored value is not valid JSON for dst.
func GetJSON(ctx context.Context, kv KV, key string, dst any) error {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// SetJSON stores v encoded as JSON.
func SetJSON(ctx context.Context, kv KV, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(data), ttl)
}
