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

package cmd

import (
	"github.com/nuts-foundation/wallet-authz/storage"
	"github.com/spf13/pflag"
)

// FlagSet contains flags relevant for the engine
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("storage", pflag.ContinueOnError)
	defs := storage.DefaultConfig()
	flagSet.String("storage.sql.connection", defs.SQL.ConnectionString, "Connection string for the SQL database, prefixed with the database type: "+
		"'sqlite:', 'postgres://', 'mysql://' or 'sqlserver://'. If not set, it defaults to a SQLite database in the data directory.")
	flagSet.String("storage.session.redis.address", defs.Session.Redis.Address, "Redis database server address, used as session database. "+
		"This can be a simple 'host:port' or a Redis connection URL with scheme, auth and other options. If not set, sessions are kept in memory.")
	flagSet.String("storage.session.redis.username", defs.Session.Redis.Username, "Redis database username. If set, it overrides the username in the connection URL.")
	flagSet.String("storage.session.redis.password", defs.Session.Redis.Password, "Redis database password. If set, it overrides the password in the connection URL.")
	flagSet.String("storage.session.redis.database", defs.Session.Redis.Database, "Redis database name, which is used as prefix for every key. "+
		"Can be used to have multiple instances use the same Redis instance.")
	flagSet.String("storage.session.redis.sentinel.master", defs.Session.Redis.Sentinel.Master, "Name of the Redis Sentinel master. Setting this property enables Redis Sentinel.")
	flagSet.StringSlice("storage.session.redis.sentinel.nodes", defs.Session.Redis.Sentinel.Nodes, "Addresses of the Redis Sentinels to connect to initially. Setting this property enables Redis Sentinel.")
	flagSet.String("storage.session.redis.sentinel.username", defs.Session.Redis.Sentinel.Username, "Username for authenticating to Redis Sentinels.")
	flagSet.String("storage.session.redis.sentinel.password", defs.Session.Redis.Sentinel.Password, "Password for authenticating to Redis Sentinels.")
	flagSet.Duration("storage.session.pruneinterval", defs.Session.PruneInterval, "Interval at which expired entries are removed from the in-memory session database and cache.")
	flagSet.String("storage.cache.type", defs.Cache.Type, "Type of the cache for reference data (e.g. registered clients): 'memory', 'redis' or 'memcached'. "+
		"The 'redis' type uses the Redis server configured for sessions.")
	flagSet.StringSlice("storage.cache.memcached.address", defs.Cache.Memcached.Address, "Addresses of the memcached servers, required when storage.cache.type is 'memcached'.")
	return flagSet
}
