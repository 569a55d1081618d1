package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
	"github.com/redis/go-redis/v9"
)

// DefaultStatsTTL bounds how stale a cached statistics snapshot can get.
// Statistics depend on wall-clock time (windowed profits), so even an
// unchanged ledger needs periodic recomputation.
const DefaultStatsTTL = 30 * time.Second

// StatsCache stores BankrollStatistics snapshots in Redis
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a statistics cache with the given TTL.
// A zero TTL falls back to DefaultStatsTTL.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{
		client: client,
		ttl:    ttl,
	}
}

// key builds the cache key for a user's statistics snapshot
func key(userID string) string {
	return fmt.Sprintf("bankroll:stats:%s", userID)
}

// Get returns the cached snapshot, or (nil, nil) on a miss
func (c *StatsCache) Get(ctx context.Context, userID string) (*models.BankrollStatistics, error) {
	data, err := c.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	var stats models.BankrollStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}

	return &stats, nil
}

// Set stores a snapshot with the configured TTL
func (c *StatsCache) Set(ctx context.Context, userID string, stats *models.BankrollStatistics) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	return c.client.Set(ctx, key(userID), data, c.ttl).Err()
}

// Invalidate drops the snapshot, forcing the next read to recompute
func (c *StatsCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, key(userID)).Err()
}
