package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	categoryKeyPrefix = "category:%s"
	locationsKey      = "locations:published"
)

const (
	// CategoryTTL bounds staleness of slug lookups; admin mutations
	// invalidate eagerly.
	CategoryTTL  = 10 * time.Minute
	LocationsTTL = 10 * time.Minute
)

// CategoryKey returns the cache key for a category slug lookup.
func CategoryKey(slug string) string {
	return fmt.Sprintf(categoryKeyPrefix, slug)
}

// LocationsKey returns the cache key for the published locations listing.
func LocationsKey() string {
	return locationsKey
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which should populate dest),
// then stores the result in Redis with ttl. fetch must write into dest.
// Cache read/write failures are treated as misses so the source of truth wins.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes a key from the cache.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateCategory drops the cached slug lookup for a category.
func InvalidateCategory(ctx context.Context, slug string) {
	Invalidate(ctx, CategoryKey(slug))
}

// InvalidateLocations drops the cached published locations listing.
func InvalidateLocations(ctx context.Context) {
	Invalidate(ctx, locationsKey)
}
