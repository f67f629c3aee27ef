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
	"errors"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrClientNotFound is returned when a client ID is not registered.
var ErrClientNotFound = errors.New("client not found")

// RegisteredClient is an OAuth2 client that is allowed to request authorization codes.
// It's immutable reference data, registered through the definitions file.
type RegisteredClient struct {
	ID string `json:"client_id"`
	// SecretHash is the bcrypt hash of the client secret. Empty for public clients.
	SecretHash           string        `json:"secret_hash,omitempty"`
	GrantTypes           []string      `json:"grant_types"`
	Scopes               []string      `json:"scopes"`
	RedirectURIs         []string      `json:"redirect_uris"`
	AuthorizationCodeTTL time.Duration `json:"code_ttl"`
	AccessTokenTTL       time.Duration `json:"token_ttl"`
}

// IsPublic returns true if the client has no secret, meaning it can't authenticate at the token endpoint.
func (c RegisteredClient) IsPublic() bool {
	return c.SecretHash == ""
}

// VerifySecret checks the given secret against the client's secret hash.
func (c RegisteredClient) VerifySecret(secret string) bool {
	if c.IsPublic() || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.SecretHash), []byte(secret)) == nil
}

// SupportsGrantType returns true if the client may use the given grant type.
func (c RegisteredClient) SupportsGrantType(grantType string) bool {
	return slices.Contains(c.GrantTypes, grantType)
}

// AllowsScopes returns true if all given scopes were registered for the client.
func (c RegisteredClient) AllowsScopes(scopes []string) bool {
	for _, scope := range scopes {
		if !slices.Contains(c.Scopes, scope) {
			return false
		}
	}
	return true
}

// ResolveRedirectURI returns the redirect URI to use for the given requested redirect URI.
// The requested URI must exactly match a registered URI. It may be omitted if exactly one URI is registered (RFC6749, section 3.1.2.3).
func (c RegisteredClient) ResolveRedirectURI(requested string) (string, bool) {
	if requested == "" {
		if len(c.RedirectURIs) == 1 {
			return c.RedirectURIs[0], true
		}
		return "", false
	}
	if slices.Contains(c.RedirectURIs, requested) {
		return requested, true
	}
	return "", false
}

// HashSecret creates the bcrypt hash of a client secret, to be registered in the definitions file.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
