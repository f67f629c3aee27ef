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

package auth

import (
	"context"
	"os"
	"path"
	"testing"
	"time"

	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/crypto"
	"github.com/nuts-foundation/wallet-authz/storage"
	"github.com/nuts-foundation/wallet-authz/test/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestAuth_Configure(t *testing.T) {
	testServerConfig := func(t *testing.T) core.ServerConfig {
		return core.TestServerConfig(core.ServerConfig{
			Datadir: io.TestDirectory(t),
			URL:     "http://localhost:8080",
		})
	}

	t.Run("ok", func(t *testing.T) {
		serverConfig := testServerConfig(t)
		i := NewAuthInstance(TestConfig(t), storage.NewTestStorageEngine(t))

		err := i.Configure(serverConfig)

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", i.PublicURL().String())
		assert.NotNil(t, i.SessionMiddleware())
		assert.NotNil(t, i.Signer())
		assert.Equal(t, i.Signer(), i.TokenIssuer().Signer)
		assert.Equal(t, "http://localhost:8080", i.TokenIssuer().Issuer)
		assert.Equal(t, i.PublicURL(), i.EntryPoint().PublicURL)
		assert.Len(t, i.CallbackHandler().Authenticators, 1)
		t.Run("clients are registered", func(t *testing.T) {
			registered, err := i.Clients().List(context.Background())
			require.NoError(t, err)
			require.Len(t, registered, 2)
			assert.Equal(t, "app1", registered[0].ID)
			assert.True(t, registered[0].IsPublic())
			assert.True(t, registered[1].VerifySecret(TestClientSecret))
		})
		t.Run("signing key is generated in the data directory", func(t *testing.T) {
			assert.FileExists(t, path.Join(serverConfig.Datadir, signingKeyFileName))
		})
	})
	t.Run("ok - signing key is reused", func(t *testing.T) {
		serverConfig := testServerConfig(t)
		first := NewAuthInstance(TestConfig(t), storage.NewTestStorageEngine(t))
		require.NoError(t, first.Configure(serverConfig))
		second := NewAuthInstance(TestConfig(t), storage.NewTestStorageEngine(t))

		err := second.Configure(serverConfig)

		require.NoError(t, err)
		assert.Equal(t, first.Signer().KeyID(), second.Signer().KeyID())
	})
	t.Run("ok - strict mode with signing key file", func(t *testing.T) {
		keyFile := path.Join(io.TestDirectory(t), "key.pem")
		_, _, err := crypto.LoadOrCreateSigningKey(keyFile)
		require.NoError(t, err)
		config := TestConfig(t)
		config.SigningKeyFile = keyFile
		config.Verifier.URL = "https://verifier.nuts.nl"
		i := NewAuthInstance(config, storage.NewTestStorageEngine(t))

		err = i.Configure(core.TestServerConfig(core.ServerConfig{Strictmode: true, URL: "https://authz.nuts.nl"}))

		require.NoError(t, err)
	})
	t.Run("error - strict mode without signing key file", func(t *testing.T) {
		config := TestConfig(t)
		config.Verifier.URL = "https://verifier.nuts.nl"
		i := NewAuthInstance(config, storage.NewTestStorageEngine(t))

		err := i.Configure(core.TestServerConfig(core.ServerConfig{Strictmode: true, URL: "https://authz.nuts.nl"}))

		assert.EqualError(t, err, "auth.signingkeyfile must be configured in strict mode")
	})
	t.Run("error - signing key file does not exist", func(t *testing.T) {
		config := TestConfig(t)
		config.SigningKeyFile = path.Join(io.TestDirectory(t), "missing.pem")
		i := NewAuthInstance(config, storage.NewTestStorageEngine(t))

		err := i.Configure(testServerConfig(t))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("error - invalid config", func(t *testing.T) {
		config := TestConfig(t)
		config.Verifier.URL = ""
		i := NewAuthInstance(config, nil)

		err := i.Configure(testServerConfig(t))

		assert.EqualError(t, err, "auth.verifier.url must be configured")
	})
	t.Run("error - invalid claim mapping", func(t *testing.T) {
		config := TestConfig(t)
		config.Claims.Hash = ""
		i := NewAuthInstance(config, nil)

		err := i.Configure(testServerConfig(t))

		assert.ErrorContains(t, err, "invalid auth.claims")
	})
	t.Run("error - public URL not configured", func(t *testing.T) {
		i := NewAuthInstance(TestConfig(t), nil)

		err := i.Configure(core.ServerConfig{})

		assert.EqualError(t, err, "'url' must be configured")
	})
	t.Run("error - insecure verifier URL in strict mode", func(t *testing.T) {
		keyFile := path.Join(io.TestDirectory(t), "key.pem")
		_, _, err := crypto.LoadOrCreateSigningKey(keyFile)
		require.NoError(t, err)
		config := TestConfig(t)
		config.SigningKeyFile = keyFile
		config.Verifier.URL = "http://verifier.nuts.nl"
		i := NewAuthInstance(config, nil)

		err = i.Configure(core.TestServerConfig(core.ServerConfig{Strictmode: true, URL: "https://authz.nuts.nl"}))

		assert.EqualError(t, err, "invalid verifier URL: scheme must be https")
	})
	t.Run("error - invalid definitions", func(t *testing.T) {
		config := TestConfig(t)
		require.NoError(t, os.WriteFile(config.DefinitionsFile, []byte("clients:\n  - id: app1\n"), 0600))
		i := NewAuthInstance(config, storage.NewTestStorageEngine(t))

		err := i.Configure(testServerConfig(t))

		assert.EqualError(t, err, "invalid client definition #1: at least one redirect_uri is required")
	})
}

func TestAuth_Lifecycle(t *testing.T) {
	config := TestConfig(t)
	config.PruneInterval = time.Millisecond
	i := NewAuthInstance(config, storage.NewTestStorageEngine(t))
	require.NoError(t, i.Configure(core.TestServerConfig(core.ServerConfig{Datadir: io.TestDirectory(t), URL: "http://localhost"})))
	// storage engine routines are stopped on test cleanup
	ignore := goleak.IgnoreCurrent()

	require.NoError(t, i.Start())
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, i.Shutdown())

	goleak.VerifyNone(t, ignore)
}

func TestAuth_Shutdown(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		i := NewAuthInstance(DefaultConfig(), nil)

		assert.NoError(t, i.Shutdown())
	})
}

func TestAuth_Diagnostics(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		i := NewAuthInstance(TestConfig(t), storage.NewTestStorageEngine(t))
		require.NoError(t, i.Configure(core.TestServerConfig(core.ServerConfig{Datadir: io.TestDirectory(t), URL: "http://localhost"})))

		actual := i.Diagnostics()

		require.Len(t, actual, 2)
		assert.Equal(t, "registered_clients", actual[0].Name())
		assert.Equal(t, "2", actual[0].String())
		assert.Equal(t, "signing_key_id", actual[1].Name())
		assert.Equal(t, i.Signer().KeyID(), actual[1].String())
	})
	t.Run("not configured", func(t *testing.T) {
		i := NewAuthInstance(DefaultConfig(), nil)

		actual := i.Diagnostics()

		require.Len(t, actual, 1)
		assert.Equal(t, "0", actual[0].String())
	})
}

func TestAuth_Name(t *testing.T) {
	assert.Equal(t, "Auth", NewAuthInstance(DefaultConfig(), nil).Name())
}
