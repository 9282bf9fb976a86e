package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes a key only while it is still pending, so a late
// release can never erase a completed result.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisStore keeps keys in Redis with SETNX semantics.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed Store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ttl: TTL}
}

func (r *RedisStore) Claim(ctx context.Context, key string) (Claim, error) {
	ok, err := r.client.SetNX(ctx, key, pendingValue, r.ttl).Result()
	if err != nil {
		return Claim{}, fmt.Errorf("claim idempotency key: %w", err)
	}
	if ok {
		return Claim{Status: Claimed}, nil
	}

	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; try once more.
		return r.Claim(ctx, key)
	}
	if err != nil {
		return Claim{}, fmt.Errorf("read idempotency key: %w", err)
	}
	return decode(value), nil
}

func (r *RedisStore) Complete(ctx context.Context, key, resultID string) error {
	if err := r.client.Set(ctx, key, donePrefix+resultID, r.ttl).Err(); err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

func (r *RedisStore) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, r.client, []string{key}, pendingValue).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
