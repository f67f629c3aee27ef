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
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nuts-foundation/wallet-authz/storage/log"
	"github.com/redis/go-redis/v9"
)

// RedisConfig specifies config for Redis databases.
type RedisConfig struct {
	Address  string              `koanf:"address"`
	Username string              `koanf:"username"`
	Password string              `koanf:"password"`
	Database string              `koanf:"database"`
	Sentinel RedisSentinelConfig `koanf:"sentinel"`
}

// isConfigured returns true if config the indicates Redis support should be enabled.
func (r RedisConfig) isConfigured() bool {
	return len(r.Address) > 0
}

func (r RedisConfig) parse() (*redis.Options, error) {
	// if not an address URL, assume simply TCP with host:port
	addr := r.Address
	if !isRedisURL(addr) {
		addr = "redis://" + addr
	}

	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, err
	}
	if len(r.Username) > 0 {
		opts.Username = r.Username
	}
	if len(r.Password) > 0 {
		opts.Password = r.Password
	}
	return opts, nil
}

// RedisSentinelConfig specifies properties for connecting to a Redis Sentinel cluster.
type RedisSentinelConfig struct {
	Master   string   `koanf:"master"`
	Nodes    []string `koanf:"nodes"`
	Username string   `koanf:"username"`
	Password string   `koanf:"password"`
}

func (r RedisSentinelConfig) enabled() bool {
	return r.Master != "" || len(r.Nodes) > 0
}

// parse builds redis.FailoverOptions from the given base options and the Sentinel-specific configuration.
func (r RedisSentinelConfig) parse(baseOpts redis.Options) (*redis.FailoverOptions, error) {
	if r.Master == "" {
		return nil, errors.New("master is not configured")
	}
	if len(r.Nodes) == 0 {
		return nil, errors.New("node addresses are not configured")
	}
	return &redis.FailoverOptions{
		MasterName:       r.Master,
		SentinelAddrs:    r.Nodes,
		SentinelUsername: r.Username,
		SentinelPassword: r.Password,
		Username:         baseOpts.Username,
		Password:         baseOpts.Password,
		DB:               baseOpts.DB,
		DialTimeout:      baseOpts.DialTimeout,
		ReadTimeout:      baseOpts.ReadTimeout,
		WriteTimeout:     baseOpts.WriteTimeout,
		TLSConfig:        baseOpts.TLSConfig,
	}, nil
}

// newRedisClient creates a Redis client from the given config and waits until the server responds.
func newRedisClient(config RedisConfig) (redis.UniversalClient, error) {
	opts, err := config.parse()
	if err != nil {
		return nil, err
	}
	var client redis.UniversalClient
	if config.Sentinel.enabled() {
		sentinelOpts, err := config.Sentinel.parse(*opts)
		if err != nil {
			return nil, fmt.Errorf("unable to configure Redis Sentinel client: %w", err)
		}
		client = redis.NewFailoverClient(sentinelOpts)
	} else {
		client = redis.NewClient(opts)
	}
	err = retry.Do(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Ping(ctx).Err()
	}, retry.Attempts(3), retry.Delay(time.Second), retry.LastErrorOnly(true), retry.OnRetry(func(n uint, err error) {
		log.Logger().WithError(err).Warnf("Unable to connect to Redis (attempt %d), retrying...", n+1)
	}))
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to connect to Redis database: %w", err)
	}
	return client, nil
}

func isRedisURL(address string) bool {
	return strings.HasPrefix(address, "redis://") ||
		strings.HasPrefix(address, "rediss://") ||
		strings.HasPrefix(address, "unix://")
}
