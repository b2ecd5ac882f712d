// Package redis holds the read-side caches. Only derived state lives here;
// Postgres stays the source of truth.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnlockCache caches unlock-record existence per (viewer, target) pair so the
// profile-view path can skip a database read on the hot path. Entries are
// written through on unlock and never invalidated: unlocks are permanent.
type UnlockCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUnlockCache(client *redis.Client, ttl time.Duration) *UnlockCache {
	return &UnlockCache{client: client, ttl: ttl}
}

func key(viewerID, targetProfileID int) string {
	return fmt.Sprintf("unlock:%d:%d", viewerID, targetProfileID)
}

// Get returns (unlocked, known). A cache miss reports known=false and the
// caller falls back to storage; only positive results are cached.
func (c *UnlockCache) Get(ctx context.Context, viewerID, targetProfileID int) (bool, bool) {
	// Cache misses and cache errors both degrade to a storage read, never to
	// a request failure.
	val, err := c.client.Get(ctx, key(viewerID, targetProfileID)).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

func (c *UnlockCache) Set(ctx context.Context, viewerID, targetProfileID int) {
	c.client.Set(ctx, key(viewerID, targetProfileID), "1", c.ttl)
}
