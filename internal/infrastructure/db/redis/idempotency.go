package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const signupKeyTTL = 24 * time.Hour

// SignupGuard provides signup idempotency checks backed by Redis.
// Key format: signup:<idempotency_key>
type SignupGuard struct {
	client *redis.Client
}

// NewSignupGuard creates a SignupGuard wrapping the given Redis client.
func NewSignupGuard(client *redis.Client) *SignupGuard {
	return &SignupGuard{client: client}
}

// IsDuplicate reports whether a signup with this key was already accepted.
func (g *SignupGuard) IsDuplicate(ctx context.Context, key string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("signup idempotency check: %w", err)
	}
	return n > 0, nil
}

// Mark records that a signup with this key succeeded (expires after
// signupKeyTTL).
func (g *SignupGuard) Mark(ctx context.Context, key string) error {
	return g.client.Set(ctx, g.key(key), "1", signupKeyTTL).Err()
}

func (g *SignupGuard) key(key string) string {
	return "signup:" + key
}
