package idempotency

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a process-local Store used when no Redis is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     TTL,
		now:     time.Now,
	}
}

func (m *MemoryStore) Claim(_ context.Context, key string) (Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.entries[key]; ok && now.Before(e.expiresAt) {
		return decode(e.value), nil
	}
	m.entries[key] = entry{value: pendingValue, expiresAt: now.Add(m.ttl)}
	return Claim{Status: Claimed}, nil
}

func (m *MemoryStore) Complete(_ context.Context, key, resultID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{value: donePrefix + resultID, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[key]; ok && e.value == pendingValue {
		delete(m.entries, key)
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
