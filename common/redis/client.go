package redis

import (
	"context"
	"fmt"
	"time"

	"relief-dispatch/common/config"

	"github.com/go-redis/redis/v8"
)

// Client go-redis client alias so callers need not import go-redis directly.
type Client = redis.Client

const defaultConnectTimeout = 3 * time.Second

// NewRedisClient builds a client from cfg. It does not dial.
func NewRedisClient(cfg *config.RedisConfig) *Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: defaultConnectTimeout,
	})
}

// Connect builds a client and verifies it with PING. The client is closed
// again when the server does not answer.
func Connect(ctx context.Context, cfg *config.RedisConfig) (*Client, error) {
	client := NewRedisClient(cfg)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func Close(client *Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
