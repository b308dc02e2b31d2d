package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// UniverseCacheTTL is the time-to-live for cached universe summaries.
	UniverseCacheTTL = 24 * time.Hour

	universeCacheKeyPrefix = "universe"
)

// CachedUniverse is the denormalized universe read model stored in Redis.
// Serves non-tracking reads; any mutating flow must load through the
// repository instead.
type CachedUniverse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// UniverseCache provides structured read/write operations for universe cache
// entries. Key format: "universe:{id}".
type UniverseCache struct {
	client *RedisClient
}

// NewUniverseCache creates a UniverseCache backed by the given RedisClient.
func NewUniverseCache(r *RedisClient) *UniverseCache {
	return &UniverseCache{client: r}
}

// Get retrieves a cached universe by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *UniverseCache) Get(ctx context.Context, id int64) (*CachedUniverse, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	cachedID, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedUniverse{
		ID:          cachedID,
		Name:        vals["name"],
		Description: vals["description"],
		CreatedAt:   createdAt,
	}, nil
}

// Set writes a cached universe as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *UniverseCache) Set(ctx context.Context, u *CachedUniverse) error {
	key := c.key(u.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", strconv.FormatInt(u.ID, 10),
		"name", u.Name,
		"description", u.Description,
		"created_at", u.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, UniverseCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached universe.
func (c *UniverseCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "universe:{id}"
func (c *UniverseCache) key(id int64) string {
	return fmt.Sprintf("%s:%d", universeCacheKeyPrefix, id)
}
