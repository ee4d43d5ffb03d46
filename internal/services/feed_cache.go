package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// FirstPageCacheKey caches the first feed page, the one every visitor hits.
const FirstPageCacheKey = "feed:first"

const feedCacheTTL = 30 * time.Second

// FeedCache is a small Redis-backed cache for feed pages. It is optional:
// a nil cache (no Redis configured) degrades to pass-through, and a Redis
// error is treated as a miss so the cache can never fail a read path.
type FeedCache struct {
	client *redis.Client
}

// NewFeedCache creates a new FeedCache. A nil client disables caching.
func NewFeedCache(client *redis.Client) *FeedCache {
	if client == nil {
		return nil
	}
	return &FeedCache{client: client}
}

// Get loads a cached value into dest, reporting whether it was present.
func (c *FeedCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}
	return true
}

// Set stores a value under key for the feed TTL.
func (c *FeedCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, feedCacheTTL)
}

// Invalidate drops a cached key, called after any write that changes the feed.
func (c *FeedCache) Invalidate(ctx context.Context, key string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, key)
}
