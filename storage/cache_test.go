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
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/daangn/minimemcached"
	"github.com/nuts-foundation/wallet-authz/test"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	ctx := context.Background()
	caches := map[string]func(t *testing.T) Cache{
		"memory": func(t *testing.T) Cache {
			return newInMemoryCache(time.Minute)
		},
		"redis": func(t *testing.T) Cache {
			server := miniredis.RunT(t)
			client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
			t.Cleanup(func() {
				_ = client.Close()
			})
			return newRedisCache(client, "authz")
		},
		"memcached": func(t *testing.T) Cache {
			server, err := minimemcached.Run(&minimemcached.Config{Port: uint16(test.FreeTCPPort())})
			require.NoError(t, err)
			t.Cleanup(server.Close)
			client, err := newMemcachedClient(MemcachedConfig{Address: []string{fmt.Sprintf("localhost:%d", server.Port())}})
			require.NoError(t, err)
			t.Cleanup(func() {
				_ = client.Close()
			})
			return newMemcachedCache(client)
		},
	}
	for name, create := range caches {
		t.Run(name, func(t *testing.T) {
			cache := create(t)

			t.Run("set and get", func(t *testing.T) {
				require.NoError(t, cache.Set(ctx, "key", testValue, time.Minute))
				var actual testType

				err := cache.Get(ctx, "key", &actual)

				require.NoError(t, err)
				assert.Equal(t, testValue, actual)
			})
			t.Run("not found", func(t *testing.T) {
				err := cache.Get(ctx, "unknown", new(testType))

				assert.ErrorIs(t, err, ErrNotFound)
			})
			t.Run("delete", func(t *testing.T) {
				require.NoError(t, cache.Set(ctx, "todelete", testValue, time.Minute))

				require.NoError(t, cache.Delete(ctx, "todelete"))

				assert.ErrorIs(t, cache.Get(ctx, "todelete", new(testType)), ErrNotFound)
			})
			t.Run("delete unknown key", func(t *testing.T) {
				assert.NoError(t, cache.Delete(ctx, "unknown"))
			})
			t.Run("error - value is not JSON", func(t *testing.T) {
				err := cache.Set(ctx, "key", make(chan int), time.Minute)

				assert.Error(t, err)
			})
		})
	}
}

func Test_gocacheCache_key(t *testing.T) {
	assert.Equal(t, "cache.client", gocacheCache{}.key("client"))
	assert.Equal(t, "authz.cache.client", gocacheCache{prefix: "authz"}.key("client"))
}

func Test_newMemcachedClient(t *testing.T) {
	t.Run("error - not reachable", func(t *testing.T) {
		client, err := newMemcachedClient(MemcachedConfig{Address: []string{fmt.Sprintf("localhost:%d", test.FreeTCPPort())}})

		assert.ErrorContains(t, err, "unable to connect to memcached")
		assert.Nil(t, client)
	})
}
