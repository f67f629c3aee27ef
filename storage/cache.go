/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	memcachestore "github.com/eko/gocache/store/memcache/v4"
	redisstore "github.com/eko/gocache/store/redis/v4"
	gocacheclient "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

var _ Cache = (*gocacheCache)(nil)

// gocacheCache adapts a gocache store to the Cache interface.
// Values are stored as JSON, since the Redis and memcached stores only accept bytes.
type gocacheCache struct {
	underlying *cache.Cache[any]
	prefix     string
}

func newInMemoryCache(pruneInterval time.Duration) *gocacheCache {
	client := gocacheclient.New(gocacheclient.NoExpiration, pruneInterval)
	return &gocacheCache{underlying: cache.New[any](gocachestore.NewGoCache(client))}
}

func newRedisCache(client redis.UniversalClient, prefix string) *gocacheCache {
	return &gocacheCache{underlying: cache.New[any](redisstore.NewRedis(client)), prefix: prefix}
}

func newMemcachedCache(client *memcache.Client) *gocacheCache {
	return &gocacheCache{underlying: cache.New[any](memcachestore.NewMemcache(client))}
}

// newMemcachedClient creates a memcached client and checks the servers are reachable.
func newMemcachedClient(config MemcachedConfig) (*memcache.Client, error) {
	client := memcache.New(config.Address...)
	if err := client.Ping(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to connect to memcached: %w", err)
	}
	return client, nil
}

func (g gocacheCache) key(key string) string {
	if g.prefix == "" {
		return "cache." + key
	}
	return g.prefix + ".cache." + key
}

func (g gocacheCache) Get(ctx context.Context, key string, target interface{}) error {
	value, err := g.underlying.Get(ctx, g.key(key))
	if err != nil {
		if errors.Is(err, store.NotFound{}) || errors.Is(err, memcache.ErrCacheMiss) {
			return ErrNotFound
		}
		return err
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unexpected cache value type: %T", value)
	}
	return json.Unmarshal(data, target)
}

func (g gocacheCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return g.underlying.Set(ctx, g.key(key), data, store.WithExpiration(ttl))
}

func (g gocacheCache) Delete(ctx context.Context, key string) error {
	err := g.underlying.Delete(ctx, g.key(key))
	if err != nil && !errors.Is(err, store.NotFound{}) && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}
