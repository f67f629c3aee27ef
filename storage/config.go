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
	"fmt"
	"time"
)

const (
	// CacheTypeMemory keeps cached values in process.
	CacheTypeMemory = "memory"
	// CacheTypeRedis keeps cached values in the Redis server configured for sessions.
	CacheTypeRedis = "redis"
	// CacheTypeMemcached keeps cached values in memcached.
	CacheTypeMemcached = "memcached"
)

// Config specifies config for the storage engine.
type Config struct {
	SQL     SQLConfig     `koanf:"sql"`
	Session SessionConfig `koanf:"session"`
	Cache   CacheConfig   `koanf:"cache"`
}

// SQLConfig specifies config for the SQL database.
type SQLConfig struct {
	// ConnectionString is the connection string for the SQL database.
	// It is prefixed with the database type (e.g. sqlite:, postgres://, mysql://, sqlserver://).
	ConnectionString string `koanf:"connection"`
}

// SessionConfig specifies config for the session database.
type SessionConfig struct {
	// Redis configures a Redis server as session database. If not configured, sessions are kept in memory.
	Redis RedisConfig `koanf:"redis"`
	// PruneInterval specifies how often expired entries are removed from the in-memory session database.
	PruneInterval time.Duration `koanf:"pruneinterval"`
}

// CacheConfig specifies config for the shared cache.
type CacheConfig struct {
	// Type is one of memory, redis or memcached.
	Type      string          `koanf:"type"`
	Memcached MemcachedConfig `koanf:"memcached"`
}

// MemcachedConfig specifies config for memcached.
type MemcachedConfig struct {
	// Address holds the addresses of the memcached servers.
	Address []string `koanf:"address"`
}

// DefaultConfig returns the default configuration for the storage engine.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			PruneInterval: 10 * time.Minute,
		},
		Cache: CacheConfig{
			Type: CacheTypeMemory,
		},
	}
}

func (c Config) validate() error {
	switch c.Cache.Type {
	case CacheTypeMemory:
	case CacheTypeRedis:
		if !c.Session.Redis.isConfigured() {
			return fmt.Errorf("cache type '%s' requires storage.session.redis.address", CacheTypeRedis)
		}
	case CacheTypeMemcached:
		if len(c.Cache.Memcached.Address) == 0 {
			return fmt.Errorf("cache type '%s' requires storage.cache.memcached.address", CacheTypeMemcached)
		}
	default:
		return fmt.Errorf("invalid cache type: %s", c.Cache.Type)
	}
	if c.Session.PruneInterval <= 0 {
		return fmt.Errorf("storage.session.pruneinterval must be positive")
	}
	return nil
}
