package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// clientName shows up in CLIENT LIST, so operators can tell this
	// service's connections apart from other Redis users.
	clientName = "household-api"

	dialTimeout = 5 * time.Second
)

// Config holds the connection settings for the reset-code store.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// clientOptions builds the go-redis options for this service's connection.
func clientOptions(cfg Config, timeout time.Duration) *redis.Options {
	return &redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		ClientName:  clientName,
		DialTimeout: timeout,
	}
}

// Connect initialises a Redis client and verifies connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}

	client := redis.NewClient(clientOptions(cfg, timeout))

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
