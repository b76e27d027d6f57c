package repository

import (
	"context"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func connectRedis(t *testing.T) *redis.Client {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	rdb, err := cache.NewRedisClient(config.RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", "secret_redis_pass_local"),
		DB:       2,
	})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.FlushDB(context.Background()).Err())
	return rdb
}

func TestCachedHabitRepository_Integration(t *testing.T) {
	rdb := connectRedis(t)
	ctx := context.Background()

	t.Run("Contract", func(t *testing.T) {
		runHabitRepositoryContract(t, NewCachedHabitRepository(NewInMemoryHabitRepository(), rdb, nil))
	})

	t.Run("List is served from cache until a completion changes", func(t *testing.T) {
		inner := NewInMemoryHabitRepository()
		repo := NewCachedHabitRepository(inner, rdb, nil)

		h := habitFixture("cache-user", "Read", time.Now().UTC())
		require.NoError(t, repo.Create(ctx, h))

		list, err := repo.ListByUserID(ctx, "cache-user")
		require.NoError(t, err)
		require.Len(t, list, 1)

		exists, err := rdb.Exists(ctx, "habits:cache-user").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)

		// Bypass the decorator: the cached list must still be returned.
		require.NoError(t, inner.SetCompletion(ctx, h.ID, "2026-10-17", true))
		list, err = repo.ListByUserID(ctx, "cache-user")
		require.NoError(t, err)
		assert.Empty(t, list[0].CompletedDates)

		require.NoError(t, repo.SetCompletion(ctx, h.ID, "2026-10-16", true))
		list, err = repo.ListByUserID(ctx, "cache-user")
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-10-16", "2026-10-17"}, list[0].CompletedDates)
	})

	t.Run("Corrupted entry falls back to the store", func(t *testing.T) {
		inner := NewInMemoryHabitRepository()
		repo := NewCachedHabitRepository(inner, rdb, nil)
		require.NoError(t, inner.Create(ctx, habitFixture("corrupt-user", "Read", time.Now().UTC())))
		require.NoError(t, rdb.Set(ctx, "habits:corrupt-user", "not-json", time.Minute).Err())

		list, err := repo.ListByUserID(ctx, "corrupt-user")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestCachedHabitRepository_RedisDown(t *testing.T) {
	ctx := context.Background()
	dead := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer dead.Close()

	inner := NewInMemoryHabitRepository()
	repo := NewCachedHabitRepository(inner, dead, nil)
	h := habitFixture("u1", "Read", time.Now().UTC())

	require.NoError(t, repo.Create(ctx, h))
	require.NoError(t, repo.SetCompletion(ctx, h.ID, "2026-10-17", true))

	list, err := repo.ListByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"2026-10-17"}, list[0].CompletedDates)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}
