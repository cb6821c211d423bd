package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Pesokrava/ratingfy/internal/domain"
)

// VisibilityCache stores resolved storefront visibility per shop and product
type VisibilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVisibilityCache creates a new Redis-backed visibility cache
func NewVisibilityCache(client *redis.Client, ttl time.Duration) *VisibilityCache {
	return &VisibilityCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *VisibilityCache) visibilityKey(shop string, productID domain.ProductID) string {
	scope := productID.String()
	if scope == "" {
		scope = "all"
	}
	return fmt.Sprintf("visibility:%s:%s", shop, scope)
}

func (c *VisibilityCache) shopCacheKeysSet(shop string) string {
	return fmt.Sprintf("visibility:%s:keys", shop)
}

// Get returns the cached visibility, or domain.ErrNotFound on a miss.
// Entries that no longer decode are dropped and reported as a miss.
func (c *VisibilityCache) Get(ctx context.Context, shop string, productID domain.ProductID) (*domain.Visibility, error) {
	key := c.visibilityKey(shop, productID)
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var visibility domain.Visibility
	if err := json.Unmarshal(val, &visibility); err != nil {
		c.client.Unlink(ctx, key)
		return nil, domain.ErrNotFound
	}

	return &visibility, nil
}

// Set stores visibility and tracks the key under its shop
func (c *VisibilityCache) Set(ctx context.Context, shop string, productID domain.ProductID, visibility *domain.Visibility) error {
	key := c.visibilityKey(shop, productID)
	trackingKey := c.shopCacheKeysSet(shop)

	data, err := json.Marshal(visibility)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, trackingKey, key)
	pipe.Expire(ctx, trackingKey, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateShop removes every cached visibility of a shop using SET-based tracking
func (c *VisibilityCache) InvalidateShop(ctx context.Context, shop string) error {
	trackingKey := c.shopCacheKeysSet(shop)

	keys, err := c.client.SMembers(ctx, trackingKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	if len(keys) > 0 {
		keys = append(keys, trackingKey)
		return c.client.Unlink(ctx, keys...).Err()
	}

	return nil
}
