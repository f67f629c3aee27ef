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
	"strings"
	"sync"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	"github.com/nuts-foundation/wallet-authz/storage/log"
	gocacheclient "github.com/patrickmn/go-cache"
	"go.uber.org/atomic"
)

var _ SessionDatabase = (*InMemorySessionDatabase)(nil)

// InMemorySessionDatabase is an in memory database that holds session data on a KV basis.
// All entries are stored with a TTL. Expired entries are invisible immediately and removed by a janitor every prune interval.
type InMemorySessionDatabase struct {
	client     *gocacheclient.Cache
	underlying *cache.Cache[[]byte]
	// mux makes GetAndDelete atomic with regard to other writers
	mux     sync.Mutex
	evicted *atomic.Int64
}

// NewInMemorySessionDatabase creates a new in memory session database.
func NewInMemorySessionDatabase(pruneInterval time.Duration) *InMemorySessionDatabase {
	client := gocacheclient.New(gocacheclient.NoExpiration, pruneInterval)
	result := &InMemorySessionDatabase{
		client:     client,
		underlying: cache.New[[]byte](gocachestore.NewGoCache(client)),
		evicted:    atomic.NewInt64(0),
	}
	client.OnEvicted(func(key string, _ interface{}) {
		result.evicted.Inc()
		log.Logger().Tracef("Evicted session entry: %s", key)
	})
	return result
}

func (s *InMemorySessionDatabase) GetStore(ttl time.Duration, keys ...string) SessionStore {
	return inMemorySessionStore{
		ttl:      ttl,
		prefixes: keys,
		db:       s,
	}
}

// Size returns the number of entries in the database, including expired entries that have not yet been pruned.
func (s *InMemorySessionDatabase) Size() int {
	return s.client.ItemCount()
}

// Evicted returns the number of entries that were removed after expiring or being deleted.
func (s *InMemorySessionDatabase) Evicted() int64 {
	return s.evicted.Load()
}

func (s *InMemorySessionDatabase) close() {
	s.client.Flush()
}

func (s *InMemorySessionDatabase) getFullKey(prefixes []string, key string) string {
	return strings.Join(append(append([]string{}, prefixes...), key), "/")
}

type inMemorySessionStore struct {
	ttl      time.Duration
	prefixes []string
	db       *InMemorySessionDatabase
}

func (i inMemorySessionStore) Delete(key string) error {
	i.db.mux.Lock()
	defer i.db.mux.Unlock()
	return i.delete(key)
}

func (i inMemorySessionStore) delete(key string) error {
	err := i.db.underlying.Delete(context.Background(), i.db.getFullKey(i.prefixes, key))
	if err != nil && !errors.Is(err, store.NotFound{}) {
		return err
	}
	return nil
}

func (i inMemorySessionStore) Exists(key string) bool {
	_, err := i.db.underlying.Get(context.Background(), i.db.getFullKey(i.prefixes, key))
	return err == nil
}

func (i inMemorySessionStore) Get(key string, target interface{}) error {
	return i.get(key, target)
}

func (i inMemorySessionStore) get(key string, target interface{}) error {
	data, err := i.db.underlying.Get(context.Background(), i.db.getFullKey(i.prefixes, key))
	if err != nil {
		if errors.Is(err, store.NotFound{}) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, target)
}

func (i inMemorySessionStore) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	i.db.mux.Lock()
	defer i.db.mux.Unlock()
	return i.db.underlying.Set(context.Background(), i.db.getFullKey(i.prefixes, key), data, store.WithExpiration(i.ttl))
}

func (i inMemorySessionStore) GetAndDelete(key string, target interface{}) error {
	i.db.mux.Lock()
	defer i.db.mux.Unlock()
	if err := i.get(key, target); err != nil {
		return err
	}
	return i.delete(key)
}
