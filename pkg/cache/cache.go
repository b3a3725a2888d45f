package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLProfile = 5 * time.Minute  // user profiles (changed rarely)
	TTLFeed    = 30 * time.Second // post feed pages (refreshed often)
	TTLBadges  = 30 * time.Second // badge state snapshots
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixProfile = "profile:"
	PrefixFeed    = "feed:"
	PrefixBadges  = "badges:"
)

// Service is the Redis cache interface
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetProfile(ctx context.Context, email string) ([]byte, error)
	SetProfile(ctx context.Context, email string, data interface{}) error
	InvalidateProfile(ctx context.Context, email string) error

	GetFeed(ctx context.Context, page, limit int) ([]byte, error)
	SetFeed(ctx context.Context, page, limit int, data interface{}) error
	InvalidateFeed(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether the Redis client is usable
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads and unmarshals a cached value
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set marshals and stores a value with a TTL
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // ignore when Redis is absent
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if ttl <= 0 {
		ttl = TTLDefault
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists checks whether a key is present
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *redisCache) GetProfile(ctx context.Context, email string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, PrefixProfile+email).Bytes()
}

func (c *redisCache) SetProfile(ctx context.Context, email string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, PrefixProfile+email, raw, TTLProfile).Err()
}

func (c *redisCache) InvalidateProfile(ctx context.Context, email string) error {
	return c.Delete(ctx, PrefixProfile+email)
}

func (c *redisCache) GetFeed(ctx context.Context, page, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, feedKey(page, limit)).Bytes()
}

func (c *redisCache) SetFeed(ctx context.Context, page, limit int, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, feedKey(page, limit), raw, TTLFeed).Err()
}

func (c *redisCache) InvalidateFeed(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	// Feed pages are short-lived; scan and drop whatever is there now.
	iter := c.client.Scan(ctx, 0, PrefixFeed+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Delete(ctx, keys...)
}

func feedKey(page, limit int) string {
	return fmt.Sprintf("%sp%d:l%d", PrefixFeed, page, limit)
}
