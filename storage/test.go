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
	"testing"
	"time"

	"github.com/nuts-foundation/wallet-authz/core"
)

// SQLiteInMemoryConnectionString is a connection string for a private, in-memory SQLite database.
const SQLiteInMemoryConnectionString = "sqlite:file::memory:?_pragma=foreign_keys(1)"

// NewTestStorageEngine creates a storage engine backed by an in-memory SQLite database and in-memory session database.
// It's shut down when the test completes.
func NewTestStorageEngine(t testing.TB) Engine {
	result := New().(*engine)
	result.config.SQL.ConnectionString = SQLiteInMemoryConnectionString
	if err := result.Configure(core.TestServerConfig(core.ServerConfig{})); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = result.Shutdown()
	})
	return result
}

// NewTestInMemorySessionDatabase creates an in-memory session database that is closed when the test completes.
func NewTestInMemorySessionDatabase(t testing.TB) *InMemorySessionDatabase {
	db := NewInMemorySessionDatabase(time.Minute)
	t.Cleanup(func() {
		db.close()
	})
	return db
}
