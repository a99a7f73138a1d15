package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 10
	defaultWindow      = 15 * time.Minute
)

// SignInThrottle counts failed sign-in attempts per username in Redis.
// Key format: signin_fail:<username>, expiring after the window so a quiet
// account unblocks itself.
type SignInThrottle struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewSignInThrottle creates a throttle blocking a username after maxFailures
// failed attempts within window. Non-positive arguments fall back to the
// defaults (10 failures / 15 minutes).
func NewSignInThrottle(client *redis.Client, maxFailures int, window time.Duration) *SignInThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &SignInThrottle{client: client, maxFailures: int64(maxFailures), window: window}
}

// Blocked reports whether the username has exhausted its failure budget.
func (t *SignInThrottle) Blocked(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle get: %w", err)
	}
	return n >= t.maxFailures, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (t *SignInThrottle) RecordFailure(ctx context.Context, username string) error {
	key := t.key(username)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful sign-in.
func (t *SignInThrottle) Reset(ctx context.Context, username string) error {
	if err := t.client.Del(ctx, t.key(username)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *SignInThrottle) key(username string) string {
	return "signin_fail:" + username
}
