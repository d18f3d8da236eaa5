package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit reserves an action slot for the identifier. Returns
// false when the slot is still held from a previous attempt. A nil client
// disables limiting.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, identifier string, limit time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:%s", identifier)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// ClearRateLimit releases the slot early.
func ClearRateLimit(ctx context.Context, rdb *redis.Client, identifier string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:%s", identifier)
	_, err := rdb.Del(ctx, key).Result()
	return err
}
