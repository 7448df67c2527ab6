package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// seenKeyPrefix namespaces the dedup markers inside the shared Redis.
const seenKeyPrefix = "argus:seen:"

// RedisSeenStore is a SeenStore backed by Redis SETNX markers.
type RedisSeenStore struct {
	client *redis.Client
	ttl    time.Duration // 0 keeps markers forever
}

// NewRedisSeenStore creates a Redis-backed seen store. ttl bounds how long
// a document stays marked; zero disables expiry.
func NewRedisSeenStore(client *redis.Client, ttl time.Duration) *RedisSeenStore {
	return &RedisSeenStore{client: client, ttl: ttl}
}

// MarkIfNew marks the key and reports whether it was previously unseen.
func (s *RedisSeenStore) MarkIfNew(ctx context.Context, key string) (bool, error) {
	isNew, err := s.client.SetNX(ctx, seenKeyPrefix+key, 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark document as seen: %w", err)
	}
	return isNew, nil
}

// MemorySeenStore is an in-memory SeenStore for tests and single-process
// runs.
type MemorySeenStore struct {
	mutex sync.Mutex
	seen  map[string]struct{}
}

// NewMemorySeenStore creates an empty in-memory seen store.
func NewMemorySeenStore() *MemorySeenStore {
	return &MemorySeenStore{seen: make(map[string]struct{})}
}

// MarkIfNew marks the key and reports whether it was previously unseen.
func (s *MemorySeenStore) MarkIfNew(ctx context.Context, key string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = struct{}{}
	return true, nil
}
