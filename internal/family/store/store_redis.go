package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"famcard/internal/family/models"
	"famcard/pkg/platform/sentinel"
)

const familyKeyPrefix = "famcard:family:"

// RedisCache shares profiles across instances. Expiry is delegated to Redis.
type RedisCache struct {
	client   redis.UniversalClient
	cacheTTL time.Duration
}

// NewRedisCache constructs a Redis-backed cache.
func NewRedisCache(client redis.UniversalClient, cacheTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, cacheTTL: cacheTTL}
}

func (c *RedisCache) Save(ctx context.Context, iin string, family *models.Family) error {
	if family == nil {
		return nil
	}
	payload, err := encode(family)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, familyKeyPrefix+iin, payload, c.cacheTTL).Err(); err != nil {
		return fmt.Errorf("save family cache: %w", err)
	}
	return nil
}

func (c *RedisCache) Find(ctx context.Context, iin string) (*models.Family, error) {
	payload, err := c.client.Get(ctx, familyKeyPrefix+iin).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find family cache: %w", err)
	}
	return decode(payload)
}

func (c *RedisCache) Delete(ctx context.Context, iin string) error {
	return c.client.Del(ctx, familyKeyPrefix+iin).Err()
}
