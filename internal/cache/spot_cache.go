package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/parking-service/internal/domain"
)

const snapshotKey = "parking:spots:snapshot"

// SpotCache is a Redis-backed read-through cache of the full spot
// snapshot. Every miss or Redis failure degrades to the repository
// read; allocation and release invalidate the key.
type SpotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSpotCache wraps a redis client. A nil client disables caching.
func NewSpotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SpotCache {
	return &SpotCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached snapshot, or (nil, false) on miss.
func (c *SpotCache) Get(ctx context.Context) ([]domain.Spot, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("spot cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var spots []domain.Spot
	if err := json.Unmarshal(raw, &spots); err != nil {
		c.logger.Warn("spot cache payload corrupt; dropping", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}
	return spots, true
}

// Set stores the snapshot for the configured TTL.
func (c *SpotCache) Set(ctx context.Context, spots []domain.Spot) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(spots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("spot cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached snapshot after an occupancy change.
func (c *SpotCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		c.logger.Warn("spot cache invalidation failed", zap.Error(err))
	}
}
