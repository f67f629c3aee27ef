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
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/storage/log"
	"gorm.io/gorm"
)

// New creates a new instance of the storage engine.
func New() Engine {
	return &engine{
		config: DefaultConfig(),
	}
}

type engine struct {
	config          Config
	sqlDB           *gorm.DB
	sqlDialect      sqlDialect
	sessionDatabase SessionDatabase
	cache           Cache
	memcachedClient *memcache.Client
}

// Name returns the name of the storage engine.
func (e *engine) Name() string {
	return "Storage"
}

// Config returns a pointer to the config of the storage engine.
func (e *engine) Config() interface{} {
	return &e.config
}

func (e *engine) GetSessionDatabase() SessionDatabase {
	return e.sessionDatabase
}

func (e *engine) GetSQLDatabase() *gorm.DB {
	return e.sqlDB
}

func (e *engine) GetCache() Cache {
	return e.cache
}

// Configure connects to the databases, so engines configured after this one can use them.
func (e *engine) Configure(config core.ServerConfig) error {
	if err := e.config.validate(); err != nil {
		return err
	}
	connectionString := e.config.SQL.ConnectionString
	if connectionString == "" {
		connectionString = defaultSQLiteConnectionString(config.Datadir)
	}
	var err error
	e.sqlDB, e.sqlDialect, err = openSQLDatabase(connectionString)
	if err != nil {
		return fmt.Errorf("failed to initialize SQL database: %w", err)
	}
	log.Logger().Infof("SQL database connected (type=%s)", e.sqlDialect.name)

	if e.config.Session.Redis.isConfigured() {
		client, err := newRedisClient(e.config.Session.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize session database: %w", err)
		}
		e.sessionDatabase = NewRedisSessionDatabase(client, e.config.Session.Redis.Database)
		log.Logger().Info("Session database: Redis")
		if e.config.Cache.Type == CacheTypeRedis {
			e.cache = newRedisCache(client, e.config.Session.Redis.Database)
		}
	} else {
		e.sessionDatabase = NewInMemorySessionDatabase(e.config.Session.PruneInterval)
		log.Logger().Info("Session database: in-memory")
	}

	switch e.config.Cache.Type {
	case CacheTypeMemory:
		e.cache = newInMemoryCache(e.config.Session.PruneInterval)
	case CacheTypeMemcached:
		e.memcachedClient, err = newMemcachedClient(e.config.Cache.Memcached)
		if err != nil {
			return fmt.Errorf("failed to initialize cache: %w", err)
		}
		e.cache = newMemcachedCache(e.memcachedClient)
	}
	return nil
}

func (e *engine) Start() error {
	return nil
}

// Shutdown closes all databases. It continues when one fails to close.
func (e *engine) Shutdown() error {
	var failures []error
	if e.sessionDatabase != nil {
		e.sessionDatabase.close()
	}
	if e.memcachedClient != nil {
		if err := e.memcachedClient.Close(); err != nil {
			log.Logger().WithError(err).Error("Failed to close memcached client")
			failures = append(failures, err)
		}
	}
	if e.sqlDB != nil {
		underlying, err := e.sqlDB.DB()
		if err == nil {
			err = underlying.Close()
		}
		if err != nil {
			log.Logger().WithError(err).Error("Failed to close SQL database")
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		return errors.New("one or more stores failed to close")
	}
	return nil
}

func (e *engine) Diagnostics() []core.DiagnosticResult {
	results := []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "sql_type", Outcome: e.sqlDialect.name},
		&core.GenericDiagnosticResult{Title: "cache_type", Outcome: e.config.Cache.Type},
	}
	if inMemory, ok := e.sessionDatabase.(*InMemorySessionDatabase); ok {
		results = append(results,
			&core.GenericDiagnosticResult{Title: "session_database", Outcome: "memory"},
			&core.GenericDiagnosticResult{Title: "session_entries", Outcome: inMemory.Size()},
			&core.GenericDiagnosticResult{Title: "session_evicted", Outcome: inMemory.Evicted()},
		)
	} else if e.sessionDatabase != nil {
		results = append(results, &core.GenericDiagnosticResult{Title: "session_database", Outcome: "redis"})
	}
	return results
}
