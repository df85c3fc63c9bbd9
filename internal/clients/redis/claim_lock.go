package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/focustown-backend/internal/logger"
)

// ClaimLock guards a reward id so exactly one claim attempt wins.
// Acquire reports false when another holder already has the lock.
type ClaimLock interface {
	Acquire(ctx context.Context, rewardID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, rewardID string) error
	Close() error
}

type redisClaimLock struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewClaimLock connects to REDIS_ADDR. Callers should fall back to
// NewLocalClaimLock when the address is unset.
func NewClaimLock(log *logger.Logger) (ClaimLock, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisClaimLock{
		log: log.With("service", "RedisClaimLock"),
		rdb: rdb,
	}, nil
}

func (cl *redisClaimLock) Acquire(ctx context.Context, rewardID string, ttl time.Duration) (bool, error) {
	ok, err := cl.rdb.SetNX(ctx, claimKey(rewardID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim lock setnx: %w", err)
	}
	return ok, nil
}

func (cl *redisClaimLock) Release(ctx context.Context, rewardID string) error {
	return cl.rdb.Del(ctx, claimKey(rewardID)).Err()
}

func (cl *redisClaimLock) Close() error {
	return cl.rdb.Close()
}

func claimKey(rewardID string) string {
	return "claim:" + rewardID
}

// localClaimLock is the single-process fallback used when no redis is
// configured (and in tests).
type localClaimLock struct {
	mu   sync.Mutex
	held map[string]time.Time
}

func NewLocalClaimLock() ClaimLock {
	return &localClaimLock{held: map[string]time.Time{}}
}

func (ll *localClaimLock) Acquire(_ context.Context, rewardID string, ttl time.Duration) (bool, error) {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	now := time.Now()
	if expiry, ok := ll.held[rewardID]; ok && expiry.After(now) {
		return false, nil
	}
	ll.held[rewardID] = now.Add(ttl)
	return true, nil
}

func (ll *localClaimLock) Release(_ context.Context, rewardID string) error {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	delete(ll.held, rewardID)
	return nil
}

func (ll *localClaimLock) Close() error { return nil }
