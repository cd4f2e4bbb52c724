package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/solvetrack/solvetrack/internal/stats"
)

const (
	statsKeyPrefix  = "stats:"
	chartsKeyPrefix = "charts:"
)

// StatsCache caches computed stats and chart payloads per user in Redis.
// It is strictly best-effort: every failure is treated as a cache miss and
// logged at debug level, so a Redis outage never breaks the dashboard.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache connects a cache to the Redis instance at addr.
func NewStatsCache(addr, password string, db int, ttl time.Duration) *StatsCache {
	return &StatsCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Ping verifies the Redis connection.
func (c *StatsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetStats returns the cached stats for userID, if present.
func (c *StatsCache) GetStats(ctx context.Context, userID string) (*stats.Stats, bool) {
	var s stats.Stats
	if !c.get(ctx, statsKeyPrefix+userID, &s) {
		return nil, false
	}
	return &s, true
}

// SetStats caches stats for userID.
func (c *StatsCache) SetStats(ctx context.Context, userID string, s stats.Stats) {
	c.set(ctx, statsKeyPrefix+userID, s)
}

// GetCharts returns the cached chart series for userID, if present.
func (c *StatsCache) GetCharts(ctx context.Context, userID string) (*stats.Charts, bool) {
	var ch stats.Charts
	if !c.get(ctx, chartsKeyPrefix+userID, &ch) {
		return nil, false
	}
	return &ch, true
}

// SetCharts caches chart series for userID.
func (c *StatsCache) SetCharts(ctx context.Context, userID string, ch stats.Charts) {
	c.set(ctx, chartsKeyPrefix+userID, ch)
}

// Invalidate drops both cached payloads for userID. Called after any
// mutation of the user's records.
func (c *StatsCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, statsKeyPrefix+userID, chartsKeyPrefix+userID).Err(); err != nil {
		slog.Debug("stats cache invalidate failed", "user_id", userID, "error", err)
	}
}

func (c *StatsCache) get(ctx context.Context, key string, v any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Debug("stats cache read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Debug("stats cache payload invalid", "key", key, "error", err)
		return false
	}
	return true
}

func (c *StatsCache) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Debug("stats cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Debug("stats cache write failed", "key", key, "error", err)
	}
}
