package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const resetCodeKey = "admin:reset_code:consumed"

// ResetCodeGuard tracks whether the one-time admin reset code has been spent.
// The marker has no TTL: a consumed code stays consumed until the key is
// removed operationally alongside issuing a new code.
type ResetCodeGuard struct {
	client *redis.Client
}

// NewResetCodeGuard creates a ResetCodeGuard wrapping the given Redis client.
func NewResetCodeGuard(client *redis.Client) *ResetCodeGuard {
	return &ResetCodeGuard{client: client}
}

// Consumed reports whether the reset code has already been used.
func (g *ResetCodeGuard) Consumed(ctx context.Context) (bool, error) {
	n, err := g.client.Exists(ctx, resetCodeKey).Result()
	if err != nil {
		return false, fmt.Errorf("reset code check: %w", err)
	}
	return n > 0, nil
}

// MarkConsumed records that the reset code has been used.
func (g *ResetCodeGuard) MarkConsumed(ctx context.Context) error {
	return g.client.Set(ctx, resetCodeKey, "1", 0).Err()
}
