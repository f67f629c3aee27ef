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
	"bytes"
	"os"
	"path"
	"sort"
	"strings"
	"testing"

	"github.com/nuts-foundation/wallet-authz/auth"
	"github.com/nuts-foundation/wallet-authz/auth/clients"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/test/io"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagSet(t *testing.T) {
	flags := FlagSet()

	var keys []string

	// Assert all start with module config key
	flags.VisitAll(func(flag *pflag.Flag) {
		keys = append(keys, flag.Name)
	})

	sort.Strings(keys)

	assert.Equal(t, []string{
		"auth.claims.familyname",
		"auth.claims.givenname",
		"auth.claims.hash",
		"auth.claims.issuingauthority",
		"auth.claims.issuingcountry",
		ConfClientCacheTTL,
		ConfDefinitionsFile,
		ConfFlowTimeout,
		ConfPruneInterval,
		ConfSessionTimeout,
		ConfSigningKeyFile,
		ConfVerifierTimeout,
		ConfVerifierURL,
	}, keys)
}

func TestConfigInjection(t *testing.T) {
	flags := core.FlagSet()
	flags.AddFlagSet(FlagSet())
	t.Setenv("AUTHZ_AUTH_VERIFIER_URL", "https://verifier.example.com")
	t.Setenv("AUTHZ_AUTH_FLOWTIMEOUT", "2m")
	t.Setenv("AUTHZ_AUTH_CLAIMS_HASH", "$.credentialSubject.hash")
	serverCfg := core.NewServerConfig()
	err := serverCfg.Load(flags)
	require.NoError(t, err)
	system := core.System{Config: serverCfg}
	engine := auth.NewAuthInstance(auth.DefaultConfig(), nil)

	err = system.Config.InjectIntoEngine(engine)
	require.NoError(t, err)

	cfg := engine.Config().(*auth.Config)
	assert.Equal(t, "https://verifier.example.com", cfg.Verifier.URL)
	assert.Equal(t, "2m0s", cfg.FlowTimeout.String())
	assert.Equal(t, "$.credentialSubject.hash", cfg.Claims.Hash)
	assert.Equal(t, "$.given_name", cfg.Claims.GivenName)
	assert.Equal(t, "30m0s", cfg.SessionTimeout.String())
}

func TestCmd(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		file := path.Join(io.TestDirectory(t), "definitions.yaml")
		require.NoError(t, os.WriteFile(file, []byte(`
clients:
  - id: app1
    scopes: [read, sign]
    redirect_uris: [https://app1.example.com/cb]
`), 0600))
		t.Setenv("AUTHZ_AUTH_DEFINITIONSFILE", file)
		outBuf := new(bytes.Buffer)
		cmd := Cmd()
		cmd.SetOut(outBuf)
		cmd.SetArgs([]string{"list"})

		err := cmd.Execute()

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(outBuf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "CLIENT ID")
		assert.Equal(t, []string{"app1", "public", "read", "sign", "https://app1.example.com/cb"}, strings.Fields(lines[1]))
	})
	t.Run("list - definitions file not configured", func(t *testing.T) {
		cmd := Cmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"list"})

		err := cmd.Execute()

		assert.EqualError(t, err, "auth.definitionsfile must be configured")
	})
	t.Run("hash-secret", func(t *testing.T) {
		outBuf := new(bytes.Buffer)
		cmd := Cmd()
		cmd.SetOut(outBuf)
		cmd.SetIn(strings.NewReader("secret\n"))
		cmd.SetArgs([]string{"hash-secret"})

		err := cmd.Execute()

		require.NoError(t, err)
		client := clients.RegisteredClient{SecretHash: strings.TrimSpace(outBuf.String())}
		assert.True(t, client.VerifySecret("secret"))
	})
	t.Run("hash-secret - empty", func(t *testing.T) {
		cmd := Cmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetIn(strings.NewReader("\n"))
		cmd.SetArgs([]string{"hash-secret"})

		err := cmd.Execute()

		assert.EqualError(t, err, "secret must not be empty")
	})
}
