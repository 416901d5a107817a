package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wallet-roaster/internal/types"
)

// CacheService provides high-level caching for wallet snapshots and roast
// results. Values are JSON-serialized and expire after the configured TTL.
type CacheService struct {
	redis *RedisCache
	ttl   time.Duration
}

// NewCacheService creates a new cache service
func NewCacheService(redis *RedisCache, ttl time.Duration) *CacheService {
	return &CacheService{
		redis: redis,
		ttl:   ttl,
	}
}

// CacheKeyType represents different types of cache keys
type CacheKeyType string

const (
	// CacheKeySnapshot is for normalized wallet snapshots
	CacheKeySnapshot CacheKeyType = "snapshot"
	// CacheKeyRoast is for generated roast results
	CacheKeyRoast CacheKeyType = "roast"
)

// GenerateCacheKey generates a cache key for a given type and parameters.
// Format: <type>:<param1>:<param2>:...
func (c *CacheService) GenerateCacheKey(keyType CacheKeyType, params ...string) string {
	// Normalize all parameters to lowercase for consistency
	normalizedParams := make([]string, len(params))
	for i, param := range params {
		normalizedParams[i] = strings.ToLower(param)
	}

	parts := append([]string{string(keyType)}, normalizedParams...)
	return strings.Join(parts, ":")
}

// GenerateSnapshotKey generates a cache key for a wallet snapshot.
// Format: snapshot:<address>
func (c *CacheService) GenerateSnapshotKey(address string) string {
	return c.GenerateCacheKey(CacheKeySnapshot, address)
}

// GenerateRoastKey generates a cache key for a roast result.
// Format: roast:<roast-id>
func (c *CacheService) GenerateRoastKey(roastID string) string {
	return c.GenerateCacheKey(CacheKeyRoast, roastID)
}

// Set stores a value in cache with the configured TTL
func (c *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return c.SetWithTTL(ctx, key, value, c.ttl)
}

// SetWithTTL stores a value in cache with a custom TTL
func (c *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.redis.Set(ctx, key, data, ttl)
}

// Get retrieves a value from cache and deserializes it. A missing key is a
// cache miss, not an error.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.redis.Get(ctx, key)
	if err != nil {
		if err.Error() == "redis: nil" {
			return false, nil
		}
		return false, fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	return true, nil
}

// GetSnapshot retrieves a cached wallet snapshot by address
func (c *CacheService) GetSnapshot(ctx context.Context, address string) (*types.WalletData, bool, error) {
	var snapshot types.WalletData
	found, err := c.Get(ctx, c.GenerateSnapshotKey(address), &snapshot)
	if err != nil || !found {
		return nil, false, err
	}
	return &snapshot, true, nil
}

// SetSnapshot caches a wallet snapshot under its address
func (c *CacheService) SetSnapshot(ctx context.Context, snapshot *types.WalletData) error {
	return c.Set(ctx, c.GenerateSnapshotKey(snapshot.Address), snapshot)
}

// Invalidate removes one or more keys from cache
func (c *CacheService) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.redis.Del(ctx, keys...)
}

// InvalidatePattern removes all keys matching a pattern.
// Pattern examples: "snapshot:0x123*", "roast:*"
func (c *CacheService) InvalidatePattern(ctx context.Context, pattern string) error {
	keys, err := c.redis.Keys(ctx, pattern)
	if err != nil {
		return fmt.Errorf("failed to find keys matching pattern: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	return c.redis.Del(ctx, keys...)
}

// InvalidateAddress removes the cached snapshot for an address, forcing the
// next request to fetch fresh upstream data
func (c *CacheService) InvalidateAddress(ctx context.Context, address string) error {
	return c.Invalidate(ctx, c.GenerateSnapshotKey(address))
}

// Exists checks if a key exists in cache
func (c *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	return c.redis.Exists(ctx, key)
}

// Refresh updates the TTL on an existing key
func (c *CacheService) Refresh(ctx context.Context, key string) error {
	return c.redis.Expire(ctx, key, c.ttl)
}

// GetTTL returns the configured TTL for this cache service
func (c *CacheService) GetTTL() time.Duration {
	return c.ttl
}
