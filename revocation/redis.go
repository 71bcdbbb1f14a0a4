package revocation

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "ag"

// RedisStore keeps the revocation set in a single Redis SET key, so
// Contains/Add are one SISMEMBER/SADD round-trip each. Redis supplies
// the concurrency guarantee; no client-side locking is needed.
//
// Entries carry no TTL. The set grows for as long as ids are revoked;
// retention is an operational concern outside this store.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore returns a store backed by the given client. The set key
// is "<prefix>:revoked"; an empty prefix selects the default.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultPrefix
	}

	return &RedisStore{
		client: client,
		key:    prefix + ":revoked",
	}
}

// Contains reports whether the id is a member of the revocation set.
func (s *RedisStore) Contains(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := s.client.SIsMember(ctx, s.key, tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return revoked, nil
}

// Add inserts the id into the revocation set. SADD already ignores
// duplicate members, which gives the idempotent-add semantics.
func (s *RedisStore) Add(ctx context.Context, tokenID string) error {
	if err := s.client.SAdd(ctx, s.key, tokenID).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
