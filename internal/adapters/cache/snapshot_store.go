package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

const SnapshotTTL = 7 * 24 * time.Hour

var (
	_ domain.SnapshotStore = (*RedisSnapshotStore)(nil)
	_ domain.SnapshotStore = (*MemorySnapshotStore)(nil)
)

// RedisSnapshotStore keeps the last statistics per user as JSON. Entries
// expire so inactive users do not pin memory forever.
type RedisSnapshotStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSnapshotStore(rdb *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{rdb: rdb, ttl: SnapshotTTL}
}

func snapshotKey(userID string) string {
	return fmt.Sprintf("stats:snapshot:%s", userID)
}

func (s *RedisSnapshotStore) Get(ctx context.Context, userID string) (*domain.Statistics, error) {
	val, err := s.rdb.Get(ctx, snapshotKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("snapshot read failed: %w", err)
	}

	var stats domain.Statistics
	if err := json.Unmarshal(val, &stats); err != nil {
		return nil, fmt.Errorf("snapshot decode failed: %w", err)
	}
	return &stats, nil
}

func (s *RedisSnapshotStore) Set(ctx context.Context, userID string, stats domain.Statistics) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, snapshotKey(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("snapshot write failed: %w", err)
	}
	return nil
}

// MemorySnapshotStore is used when no redis is configured.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data map[string]domain.Statistics
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string]domain.Statistics)}
}

func (s *MemorySnapshotStore) Get(ctx context.Context, userID string) (*domain.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.data[userID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return &stats, nil
}

func (s *MemorySnapshotStore) Set(ctx context.Context, userID string, stats domain.Statistics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[userID] = stats
	return nil
}
