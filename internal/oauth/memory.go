package oauth

import (
	"context"
	"sync"
	"time"
)

// stateEntry holds one pending login attempt.
type stateEntry struct {
	nextOrigin string
	expiresAt  time.Time
}

// MemoryStore keeps pending login state in process memory. Suitable for a
// single instance; multi-instance deployments need the redis store so a
// callback can land on any instance.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]stateEntry
	ttl     time.Duration
}

// NewMemoryStore creates an in-memory state store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]stateEntry),
		ttl:     ttl,
	}
}

// Create stores nextOrigin under a fresh token. Entries left behind by
// abandoned logins are evicted here, so the map stays bounded without a
// background sweeper.
func (s *MemoryStore) Create(ctx context.Context, nextOrigin string) (string, error) {
	state, err := GenerateStateToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}

	s.entries[state] = stateEntry{
		nextOrigin: nextOrigin,
		expiresAt:  now.Add(s.ttl),
	}
	return state, nil
}

// Consume removes and returns the entry for state. Lookup and delete happen
// under one lock, so a token can be consumed at most once.
func (s *MemoryStore) Consume(ctx context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[state]
	if !ok {
		return "", ErrStateNotFound
	}

	delete(s.entries, state)

	if time.Now().After(entry.expiresAt) {
		return "", ErrStateNotFound
	}
	return entry.nextOrigin, nil
}

// Close implements StateStore. A memory store holds no resources.
func (s *MemoryStore) Close() error {
	return nil
}
