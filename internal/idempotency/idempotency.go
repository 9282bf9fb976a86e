// Package idempotency remembers client-supplied Idempotency-Key values so a
// retried purchase returns the original record instead of buying twice.
package idempotency

import (
	"context"
	"strings"
	"time"
)

// TTL is how long a key is remembered.
const TTL = 24 * time.Hour

const (
	keyPrefix    = "idem:"
	pendingValue = "pending"
	donePrefix   = "done:"
)

// Status is the outcome of claiming a key.
type Status int

const (
	// Claimed means the caller owns the key and must Complete or Release it.
	Claimed Status = iota
	// InFlight means another request holds the key and has not finished.
	InFlight
	// Completed means the key already produced a result.
	Completed
)

// Claim is returned by Store.Claim. ResultID is set when Status is Completed.
type Claim struct {
	Status   Status
	ResultID string
}

// Store is implemented by the Redis and in-memory stores.
type Store interface {
	Claim(ctx context.Context, key string) (Claim, error)
	Complete(ctx context.Context, key, resultID string) error
	Release(ctx context.Context, key string) error
}

// Key builds the storage key for a client key within a scope, typically the
// operation name and the user id.
func Key(scope ...string) string {
	return keyPrefix + strings.Join(scope, ":")
}

func decode(value string) Claim {
	if strings.HasPrefix(value, donePrefix) {
		return Claim{Status: Completed, ResultID: strings.TrimPrefix(value, donePrefix)}
	}
	return Claim{Status: InFlight}
}
