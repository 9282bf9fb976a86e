package idempotency

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tokenvest/internal/uuid"

	"github.com/redis/go-redis/v9"
)

// redisClient returns a client for REDIS_ADDR, or nil when Redis is not
// reachable.
func redisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Logf("Redis not available, skipping redis store: %v", err)
		client.Close()
		return nil
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func stores(t *testing.T) map[string]Store {
	out := map[string]Store{"memory": NewMemoryStore()}
	if testing.Short() {
		return out
	}
	if client := redisClient(t); client != nil {
		out["redis"] = NewRedisStore(client)
	}
	return out
}

func TestClaimLifecycle(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := Key("purchase", uuid.New(), "retry-1")

			claim, err := store.Claim(ctx, key)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claim.Status != Claimed {
				t.Fatalf("expected Claimed, got %v", claim.Status)
			}

			claim, _ = store.Claim(ctx, key)
			if claim.Status != InFlight {
				t.Fatalf("expected InFlight, got %v", claim.Status)
			}

			if err := store.Complete(ctx, key, "token-42"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			claim, _ = store.Claim(ctx, key)
			if claim.Status != Completed || claim.ResultID != "token-42" {
				t.Fatalf("expected Completed token-42, got %+v", claim)
			}

			// Release must not erase a completed result.
			_ = store.Release(ctx, key)
			claim, _ = store.Claim(ctx, key)
			if claim.Status != Completed {
				t.Errorf("expected key to stay Completed, got %v", claim.Status)
			}
		})
	}
}

func TestReleaseFreesPendingKey(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := Key("purchase", uuid.New(), "retry-2")

			if claim, _ := store.Claim(ctx, key); claim.Status != Claimed {
				t.Fatalf("expected Claimed, got %v", claim.Status)
			}
			if err := store.Release(ctx, key); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claim, _ := store.Claim(ctx, key); claim.Status != Claimed {
				t.Errorf("expected key to be claimable after release, got %v", claim.Status)
			}
		})
	}
}

func TestConcurrentClaimSingleWinner(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := Key("purchase", uuid.New(), "race")

			var wg sync.WaitGroup
			var winners atomic.Int32
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if claim, err := store.Claim(ctx, key); err == nil && claim.Status == Claimed {
						winners.Add(1)
					}
				}()
			}
			wg.Wait()

			if winners.Load() != 1 {
				t.Errorf("expected exactly one winner, got %d", winners.Load())
			}
		})
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = store.Claim(ctx, "k")
	_ = store.Complete(ctx, "k", "t1")

	now = now.Add(TTL + time.Second)
	if claim, _ := store.Claim(ctx, "k"); claim.Status != Claimed {
		t.Errorf("expected expired key to be claimable, got %v", claim.Status)
	}
}

func TestKey(t *testing.T) {
	if got := Key("purchase", "u1", "abc"); got != "idem:purchase:u1:abc" {
		t.Errorf("unexpected key %q", got)
	}
}
