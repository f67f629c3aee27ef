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
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nuts-foundation/sqlite"
	"github.com/nuts-foundation/wallet-authz/storage/log"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

//go:embed sql_migrations/*.sql
var sqlMigrationsFS embed.FS

const defaultSQLiteFile = "authz.db"

// slowQueryThreshold is the duration after which a query is logged as slow.
const slowQueryThreshold = 200 * time.Millisecond

// sqlDialect describes a supported SQL database.
type sqlDialect struct {
	name  string
	goose goose.Dialect
}

var (
	sqliteDialect    = sqlDialect{name: "sqlite", goose: goose.DialectSQLite3}
	postgresDialect  = sqlDialect{name: "postgres", goose: goose.DialectPostgres}
	mysqlDialect     = sqlDialect{name: "mysql", goose: goose.DialectMySQL}
	sqlserverDialect = sqlDialect{name: "sqlserver", goose: goose.DialectMSSQL}
)

// defaultSQLiteConnectionString returns the connection string of the SQLite database in the given data directory.
func defaultSQLiteConnectionString(datadir string) string {
	return "sqlite:file:" + path.Join(datadir, defaultSQLiteFile) + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// openSQLDatabase connects to the SQL database described by the connection string, and applies the schema migrations.
func openSQLDatabase(connectionString string) (*gorm.DB, sqlDialect, error) {
	dialect, dialector, err := parseConnectionString(connectionString)
	if err != nil {
		return nil, sqlDialect{}, err
	}
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger: gormLogrusLogger{
			underlying:    log.Logger(),
			slowThreshold: slowQueryThreshold,
		},
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	}
	var db *gorm.DB
	err = retry.Do(func() error {
		db, err = gorm.Open(dialector, gormConfig)
		return err
	}, retry.Attempts(3), retry.Delay(time.Second), retry.LastErrorOnly(true), retry.OnRetry(func(n uint, err error) {
		log.Logger().WithError(err).Warnf("Unable to connect to %s database (attempt %d), retrying...", dialect.name, n+1)
	}))
	if err != nil {
		return nil, dialect, fmt.Errorf("failed to connect to %s database: %w", dialect.name, err)
	}
	underlying, err := db.DB()
	if err != nil {
		return nil, dialect, err
	}
	if dialect == sqliteDialect {
		// SQLite does not support concurrent writes, and in-memory databases only exist within a single connection
		underlying.SetMaxOpenConns(1)
	}
	if err = migrateSQLDatabase(underlying, dialect); err != nil {
		_ = underlying.Close()
		return nil, dialect, err
	}
	return db, dialect, nil
}

func parseConnectionString(connectionString string) (sqlDialect, gorm.Dialector, error) {
	scheme, _, found := strings.Cut(connectionString, ":")
	if !found {
		return sqlDialect{}, nil, errors.New("invalid SQL connection string: missing database type prefix")
	}
	switch scheme {
	case sqliteDialect.name:
		conn, err := sql.Open(sqlite.DriverName, strings.TrimPrefix(connectionString, "sqlite:"))
		if err != nil {
			return sqliteDialect, nil, err
		}
		return sqliteDialect, sqlite.Dialector{Conn: conn}, nil
	case postgresDialect.name, "postgresql":
		return postgresDialect, postgres.Open(connectionString), nil
	case mysqlDialect.name:
		return mysqlDialect, mysql.Open(strings.TrimPrefix(connectionString, "mysql://")), nil
	case sqlserverDialect.name:
		return sqlserverDialect, sqlserver.Open(connectionString), nil
	default:
		return sqlDialect{}, nil, fmt.Errorf("unsupported SQL database type: %s", scheme)
	}
}

func migrateSQLDatabase(db *sql.DB, dialect sqlDialect) error {
	migrations, err := fs.Sub(sqlMigrationsFS, "sql_migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(dialect.goose, db, migrations)
	if err != nil {
		return fmt.Errorf("unable to create SQL migration provider: %w", err)
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return fmt.Errorf("failed to migrate SQL database: %w", err)
	}
	for _, result := range results {
		log.Logger().Infof("Applied SQL migration %s (took %s)", result.Source.Path, result.Duration)
	}
	return nil
}
