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

package authz

import (
	"context"
	"testing"
	"time"

	"github.com/nuts-foundation/wallet-authz/auth/clients"
	"github.com/nuts-foundation/wallet-authz/storage"
	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const clientSecret = "secret"

// codeVerifier is the PKCE code verifier from RFC7636, appendix B.
const codeVerifier = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r7wlgYWFG3WyHE"

var publicClient = clients.RegisteredClient{
	ID:                   "app1",
	GrantTypes:           []string{"authorization_code"},
	Scopes:               []string{"read", "sign"},
	RedirectURIs:         []string{"https://app1.example.com/cb"},
	AuthorizationCodeTTL: time.Minute,
	AccessTokenTTL:       5 * time.Minute,
}

var confidentialClient = func() clients.RegisteredClient {
	hash, err := clients.HashSecret(clientSecret)
	if err != nil {
		panic(err)
	}
	return clients.RegisteredClient{
		ID:                   "app2",
		SecretHash:           hash,
		GrantTypes:           []string{"authorization_code"},
		Scopes:               []string{"read"},
		RedirectURIs:         []string{"https://app2.example.com/cb", "https://app2.example.com/other"},
		AuthorizationCodeTTL: time.Minute,
		AccessTokenTTL:       5 * time.Minute,
	}
}()

// newTestDatabase creates a SQL database with the given clients registered.
func newTestDatabase(t *testing.T, registered ...clients.RegisteredClient) *gorm.DB {
	db := storage.NewTestStorageEngine(t).GetSQLDatabase()
	repository := clients.NewSQLRepository(db)
	for _, client := range registered {
		require.NoError(t, repository.Save(context.Background(), client))
	}
	return db
}

func countAuthorizations(t *testing.T, db *gorm.DB) int64 {
	var count int64
	require.NoError(t, db.Model(&authorizationRecord{}).Count(&count).Error)
	return count
}

func fixedTime(value time.Time) func() time.Time {
	return func() time.Time {
		return value
	}
}

func assertCounter(t *testing.T, counter prometheus.Counter, count float64) {
	t.Helper()
	metric := &io_prometheus_client.Metric{}
	_ = counter.Write(metric)
	assert.Equal(t, count, *metric.Counter.Value)
}
