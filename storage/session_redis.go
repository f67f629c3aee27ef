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
	"time"

	"github.com/nuts-foundation/wallet-authz/storage/log"
	"github.com/redis/go-redis/v9"
)

var _ SessionDatabase = (*redisSessionDatabase)(nil)

// NewRedisSessionDatabase creates a SessionDatabase backed by the given Redis client.
// The prefix (e.g. the configured database name) is prepended to every key.
func NewRedisSessionDatabase(client redis.UniversalClient, prefix string) SessionDatabase {
	return &redisSessionDatabase{
		client: client,
		prefix: prefix,
	}
}

type redisSessionDatabase struct {
	client redis.UniversalClient
	prefix string
}

func (s *redisSessionDatabase) GetStore(ttl time.Duration, keys ...string) SessionStore {
	var prefixes []string
	if s.prefix != "" {
		prefixes = append(prefixes, s.prefix)
	}
	return redisSessionStore{
		client:   s.client,
		ttl:      ttl,
		prefixes: append(prefixes, keys...),
		db:       s,
	}
}

func (s *redisSessionDatabase) close() {
	if err := s.client.Close(); err != nil {
		log.Logger().WithError(err).Warn("Failed to close Redis client")
	}
}

func (s *redisSessionDatabase) getFullKey(prefixes []string, key string) string {
	return strings.ToLower(strings.Join(prefixes, ".")) + "." + key
}

type redisSessionStore struct {
	client   redis.UniversalClient
	ttl      time.Duration
	prefixes []string
	db       *redisSessionDatabase
}

func (s redisSessionStore) Delete(key string) error {
	return s.client.Del(context.Background(), s.db.getFullKey(s.prefixes, key)).Err()
}

func (s redisSessionStore) Exists(key string) bool {
	count, err := s.client.Exists(context.Background(), s.db.getFullKey(s.prefixes, key)).Result()
	if err != nil {
		log.Logger().WithError(err).Warn("Failed to check existence of session entry")
		return false
	}
	return count > 0
}

func (s redisSessionStore) Get(key string, target interface{}) error {
	return unmarshalRedisResult(s.client.Get(context.Background(), s.db.getFullKey(s.prefixes, key)), target)
}

func (s redisSessionStore) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(context.Background(), s.db.getFullKey(s.prefixes, key), data, s.ttl).Err()
}

// GetAndDelete uses GETDEL, which is atomic on the Redis server.
func (s redisSessionStore) GetAndDelete(key string, target interface{}) error {
	return unmarshalRedisResult(s.client.GetDel(context.Background(), s.db.getFullKey(s.prefixes, key)), target)
}

func unmarshalRedisResult(cmd *redis.StringCmd, target interface{}) error {
	data, err := cmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, target)
}
