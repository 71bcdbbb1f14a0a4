package revocation

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable wraps backend I/O failures. When a store cannot answer,
// authentication status is unknowable; callers must surface this as an
// infrastructure fault, never as an authentication rejection.
var ErrUnavailable = errors.New("revocation store unavailable")

// Store is the existence-set of revoked token ids.
//
// Add is idempotent: revoking an already revoked id is a no-op, and
// at-least-once insertion is sufficient. There is no removal operation;
// entries are permanent.
type Store interface {
	// Contains reports whether the token id has been revoked.
	Contains(ctx context.Context, tokenID string) (bool, error)

	// Add records the token id as revoked. Unknown ids are accepted;
	// revoking an id that was never issued is harmless.
	Add(ctx context.Context, tokenID string) error
}

// MemoryStore is a process-local Store for embedding without Redis and
// for tests. Safe for concurrent use.
type MemoryStore struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewMemoryStore returns an empty in-memory revocation set.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[string]struct{})}
}

// Contains reports membership of the in-memory set.
func (s *MemoryStore) Contains(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	_, ok := s.ids[tokenID]
	s.mu.RUnlock()
	return ok, nil
}

// Add inserts the id. Repeated inserts are no-ops.
func (s *MemoryStore) Add(_ context.Context, tokenID string) error {
	s.mu.Lock()
	s.ids[tokenID] = struct{}{}
	s.mu.Unlock()
	return nil
}
