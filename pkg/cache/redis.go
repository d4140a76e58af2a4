// Package cache keeps short-lived JSON snapshots in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"loadlab/internal/models"

	"github.com/redis/go-redis/v9"
)

// AnalyticsKey is where the analytics snapshot lives.
const AnalyticsKey = "loadlab:analytics"

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// SetJSON stores value under key as JSON for ttl.
func SetJSON(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// GetJSON loads key into dest. A missing key is (false, nil).
func GetJSON[T any](ctx context.Context, rdb *redis.Client, key string, dest *T) (bool, error) {
	res, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// AnalyticsCache stores analytics snapshots in Redis.
type AnalyticsCache struct {
	rdb *redis.Client
	key string
}

func NewAnalyticsCache(rdb *redis.Client) *AnalyticsCache {
	return &AnalyticsCache{rdb: rdb, key: AnalyticsKey}
}

func (c *AnalyticsCache) Get(ctx context.Context) (*models.Analytics, bool, error) {
	var snapshot models.Analytics
	ok, err := GetJSON(ctx, c.rdb, c.key, &snapshot)
	if err != nil || !ok {
		return nil, false, err
	}
	return &snapshot, true, nil
}

func (c *AnalyticsCache) Set(ctx context.Context, snapshot *models.Analytics, ttl time.Duration) error {
	return SetJSON(ctx, c.rdb, c.key, snapshot, ttl)
}

// Invalidate drops the current snapshot.
func (c *AnalyticsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, c.key).Err()
}

// Ping checks the connection, for startup.
func (c *AnalyticsCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
