package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"valuepm/pkg/metrics"
)

// DashboardCache holds rendered dashboard payloads in redis. Fail-open: any
// redis error is treated as a miss and the caller recomputes.
type DashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDashboardCache(rdb *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{rdb: rdb, ttl: ttl}
}

func key(projectID string) string {
	return "dashboard:" + projectID
}

// Get unmarshals the cached dashboard into dest; returns false on miss.
func (c *DashboardCache) Get(ctx context.Context, projectID string, dest any) bool {
	data, err := c.rdb.Get(ctx, key(projectID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.IncrementDashboardCache("miss")
		} else {
			metrics.IncrementDashboardCache("error")
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		metrics.IncrementDashboardCache("error")
		return false
	}
	metrics.IncrementDashboardCache("hit")
	return true
}

func (c *DashboardCache) Set(ctx context.Context, projectID string, dashboard any) {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key(projectID), data, c.ttl).Err()
}

// Invalidate drops the cached dashboard, e.g. after a new measurement.
func (c *DashboardCache) Invalidate(ctx context.Context, projectID string) {
	_ = c.rdb.Del(ctx, key(projectID)).Err()
}
