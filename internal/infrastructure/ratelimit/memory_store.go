package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryCounter struct {
	value     int64
	expiresAt time.Time
}

// memoryStore is a process-local counter store for single-instance
// deployments and tests.
type memoryStore struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter
}

// NewMemoryStore creates an in-memory counter store
func NewMemoryStore() CounterStore {
	return &memoryStore{counters: make(map[string]*memoryCounter)}
}

func (s *memoryStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	counter, ok := s.counters[key]
	if !ok || now.After(counter.expiresAt) {
		counter = &memoryCounter{expiresAt: now.Add(ttl)}
		s.counters[key] = counter
	}

	counter.value++
	return counter.value, nil
}
