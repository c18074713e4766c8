// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// nav.go provides a Valkey-backed cache for assembled API responses.
// The navigation tree and the featured/latest product strips are read on
// every storefront page load but change only on admin edits, so they are
// cached as serialized JSON and invalidated on mutation.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// navKeyPrefix is the Valkey key prefix for cached API payloads.
	navKeyPrefix = "api:"

	// DefaultNavTTL is how long a cached payload stays before expiring on
	// its own. Invalidation on writes is the primary mechanism; the TTL
	// just bounds staleness if an invalidation is missed.
	DefaultNavTTL = 10 * time.Minute
)

// Well-known cache keys.
const (
	KeyNavTree  = "nav"
	KeyFeatured = "products:featured"
	KeyLatest   = "products:latest"
)

// NavCache manages cached JSON payloads in Valkey.
type NavCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewNavCache creates a payload cache backed by the given Valkey client.
func NewNavCache(client *redis.Client, ttl time.Duration) *NavCache {
	if ttl == 0 {
		ttl = DefaultNavTTL
	}
	return &NavCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. Returns false on miss or error; cache
// failures degrade to a database read, never to a request failure.
func (nc *NavCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := nc.client.Get(ctx, navKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("nav cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("nav cache hit", "key", key)
	return val, true
}

// Set stores a serialized payload with the configured TTL.
func (nc *NavCache) Set(ctx context.Context, key string, payload []byte) {
	if err := nc.client.Set(ctx, navKeyPrefix+key, payload, nc.ttl).Err(); err != nil {
		slog.Warn("nav cache set error", "key", key, "error", err)
	}
}

// Invalidate removes one cached payload.
func (nc *NavCache) Invalidate(ctx context.Context, key string) {
	if err := nc.client.Del(ctx, navKeyPrefix+key).Err(); err != nil {
		slog.Warn("nav cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("nav cache invalidated", "key", key)
}

// InvalidateNav drops the navigation tree after a category or
// subcategory mutation.
func (nc *NavCache) InvalidateNav(ctx context.Context) {
	nc.Invalidate(ctx, KeyNavTree)
}

// InvalidateProducts drops the product strips after a product mutation.
func (nc *NavCache) InvalidateProducts(ctx context.Context) {
	nc.Invalidate(ctx, KeyFeatured)
	nc.Invalidate(ctx, KeyLatest)
}

// InvalidateAll removes every cached payload by scanning for the prefix.
func (nc *NavCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := nc.client.Scan(ctx, cursor, navKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("nav cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := nc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("nav cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("nav cache fully cleared", "deleted", deleted)
	}
}
