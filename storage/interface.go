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
	"errors"
	"time"

	"github.com/nuts-foundation/wallet-authz/core"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an entry does not exist in a store.
var ErrNotFound = errors.New("not found")

// Engine defines the interface for the storage engine.
type Engine interface {
	core.Engine
	core.Configurable
	core.Runnable

	// GetSessionDatabase returns the SessionDatabase, which holds volatile (TTL bound) data.
	GetSessionDatabase() SessionDatabase
	// GetSQLDatabase returns the SQL database, which holds persistent data.
	GetSQLDatabase() *gorm.DB
	// GetCache returns the shared cache.
	GetCache() Cache
}

// SessionDatabase is a non-persistent database that holds session data on a KV basis.
// Keys could be session IDs, nonces, return URLs, etc.
// All entries are stored with a TTL, so they will be removed automatically.
type SessionDatabase interface {
	// GetStore returns a SessionStore with the given keys as key prefixes.
	// The keys are used to logically partition the store, eg: "auth", "correlation"
	GetStore(ttl time.Duration, keys ...string) SessionStore
	// close stops any background processes and closes the database.
	close()
	// getFullKey returns the full key for the given key and prefixes.
	getFullKey(prefixes []string, key string) string
}

// SessionStore is a key-value store that holds session data.
// The SessionStore is an abstraction for underlying storage, it automatically adds prefixes for logical partitions.
type SessionStore interface {
	// Delete deletes the entry for the given key.
	// It does not return an error if the key does not exist.
	Delete(key string) error
	// Exists returns true if the key exists.
	Exists(key string) bool
	// Get returns the value for the given key.
	// Returns ErrNotFound if the key does not exist.
	Get(key string, target interface{}) error
	// Put stores the given value for the given key, overwriting an existing value.
	Put(key string, value interface{}) error
	// GetAndDelete combines Get and Delete as a single atomic operation:
	// of concurrent callers for the same key, at most one receives the value.
	// Returns ErrNotFound if the key does not exist.
	GetAndDelete(key string, target interface{}) error
}

// Cache is a best-effort shared cache for reference data.
type Cache interface {
	// Get unmarshals the cached value for the given key into target.
	// Returns ErrNotFound if the key is not cached or expired.
	Get(ctx context.Context, key string, target interface{}) error
	// Set caches the given value for the given duration.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Delete evicts the given key from the cache.
	Delete(ctx context.Context, key string) error
}
