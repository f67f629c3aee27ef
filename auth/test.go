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
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/nuts-foundation/wallet-authz/auth/clients"
	"github.com/nuts-foundation/wallet-authz/test/io"
)

// TestClientSecret is the secret of the confidential client in the test definitions.
const TestClientSecret = "secret"

// TestUserHash is the identity hash of the user in the test definitions.
const TestUserHash = "4a6f686e"

// testDefinitions contains a public client (app1), a confidential client (app2) and a single user.
// The placeholder is replaced by the hash of TestClientSecret.
const testDefinitions = `
clients:
  - id: app1
    scopes: [read, sign]
    redirect_uris: [https://app1.example.com/cb]
  - id: app2
    secret_hash: '%s'
    scopes: [read]
    redirect_uris: [https://app2.example.com/cb]
users:
  - hash: 4a6f686e
    role: admin
    given_name: John
    family_name: Doe
`

// TestConfig returns a Config that passes validation, with the definitions written to a temporary file.
func TestConfig(t *testing.T) Config {
	hash, err := clients.HashSecret(TestClientSecret)
	if err != nil {
		t.Fatal(err)
	}
	file := path.Join(io.TestDirectory(t), "definitions.yaml")
	if err := os.WriteFile(file, []byte(fmt.Sprintf(testDefinitions, hash)), 0600); err != nil {
		t.Fatal(err)
	}
	config := DefaultConfig()
	config.DefinitionsFile = file
	config.Verifier.URL = "https://verifier.example.com"
	return config
}
