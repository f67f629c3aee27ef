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

package iam

import (
	"net/url"
	"slices"

	"github.com/nuts-foundation/wallet-authz/auth/clients"
	"github.com/nuts-foundation/wallet-authz/auth/oauth"
)

func authorizationServerMetadata(issuerURL *url.URL, registered []clients.RegisteredClient) oauth.AuthorizationServerMetadata {
	var scopes []string
	for _, client := range registered {
		for _, scope := range client.Scopes {
			if !slices.Contains(scopes, scope) {
				scopes = append(scopes, scope)
			}
		}
	}
	slices.Sort(scopes)
	return oauth.AuthorizationServerMetadata{
		Issuer:                            issuerURL.String(),
		AuthorizationEndpoint:             issuerURL.JoinPath(oauth.AuthorizationPath).String(),
		ResponseTypesSupported:            []string{oauth.CodeResponseType},
		ResponseModesSupported:            []string{"query"},
		ScopesSupported:                   scopes,
		CodeChallengeMethodsSupported:     []string{oauth.S256},
		TokenEndpoint:                     issuerURL.JoinPath(oauth.TokenPath).String(),
		GrantTypesSupported:               []string{oauth.AuthorizationCodeGrantType},
		TokenEndpointAuthMethodsSupported: []string{oauth.ClientSecretBasic, oauth.ClientSecretPost, oauth.NoClientAuthentication},
		JWKSURI:                           issuerURL.JoinPath(oauth.JWKSPath).String(),
	}
}
