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

package clients

import (
	"context"
	"errors"
	"time"

	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/storage"
)

// NewCachedRepository wraps the given Repository with a read-through cache for FindByID.
// Cache failures are logged and fall back to the underlying repository.
func NewCachedRepository(underlying Repository, cache storage.Cache, ttl time.Duration) Repository {
	return &cachedRepository{
		underlying: underlying,
		cache:      cache,
		ttl:        ttl,
	}
}

type cachedRepository struct {
	underlying Repository
	cache      storage.Cache
	ttl        time.Duration
}

func (c cachedRepository) FindByID(ctx context.Context, clientID string) (*RegisteredClient, error) {
	var result RegisteredClient
	err := c.cache.Get(ctx, cacheKey(clientID), &result)
	if err == nil {
		return &result, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		log.Logger().WithError(err).WithField(core.LogFieldClientID, clientID).Warn("Failed to read client from cache")
	}
	client, err := c.underlying.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, cacheKey(clientID), client, c.ttl); err != nil {
		log.Logger().WithError(err).WithField(core.LogFieldClientID, clientID).Warn("Failed to cache client")
	}
	return client, nil
}

func (c cachedRepository) List(ctx context.Context) ([]RegisteredClient, error) {
	return c.underlying.List(ctx)
}

func (c cachedRepository) Save(ctx context.Context, client RegisteredClient) error {
	if err := c.underlying.Save(ctx, client); err != nil {
		return err
	}
	if err := c.cache.Delete(ctx, cacheKey(client.ID)); err != nil {
		log.Logger().WithError(err).WithField(core.LogFieldClientID, client.ID).Warn("Failed to evict client from cache")
	}
	return nil
}

func cacheKey(clientID string) string {
	return "client." + clientID
}
