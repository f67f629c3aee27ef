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

// Package oauth contains generic OAuth related functionality, variables and constants
package oauth

import (
	"encoding/json"
	"strings"
)

// this file contains constants, variables and helper functions for OAuth related code

// TokenResponse is the OAuth access token response.
// Through With() and Get() additional parameters can be set and retrieved.
type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresIn   *int    `json:"expires_in,omitempty"`
	TokenType   string  `json:"token_type"`
	Scope       *string `json:"scope,omitempty"`

	additionalParams map[string]interface{}
}

var _ json.Unmarshaler = (*TokenResponse)(nil)
var _ json.Marshaler = (*TokenResponse)(nil)

func (t *TokenResponse) UnmarshalJSON(data []byte) error {
	type Alias TokenResponse
	var result Alias
	// base parameters
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}
	// extension parameters
	additionalParams := map[string]interface{}{}
	_ = json.Unmarshal(data, &additionalParams) // can't fail, already unmarshalled
	delete(additionalParams, "access_token")
	delete(additionalParams, "expires_in")
	delete(additionalParams, "token_type")
	delete(additionalParams, "scope")
	*t = TokenResponse(result)
	if len(additionalParams) > 0 {
		t.additionalParams = additionalParams
	}
	return nil
}

func (t TokenResponse) MarshalJSON() ([]byte, error) {
	result := make(map[string]interface{})
	for key, value := range t.additionalParams {
		result[key] = value
	}
	result["access_token"] = t.AccessToken
	result["token_type"] = t.TokenType
	if t.ExpiresIn != nil {
		result["expires_in"] = *t.ExpiresIn
	}
	if t.Scope != nil {
		result["scope"] = *t.Scope
	}
	return json.Marshal(result)
}

// With adds a parameter to the token response.
// It's a builder-style function.
func (t *TokenResponse) With(key string, value interface{}) *TokenResponse {
	if t.additionalParams == nil {
		t.additionalParams = make(map[string]interface{})
	}
	t.additionalParams[key] = value
	return t
}

// Get returns the parameter with the given key as string, or an empty string if it's not set or not a string.
func (t TokenResponse) Get(key string) string {
	if t.additionalParams != nil {
		if value, ok := t.additionalParams[key].(string); ok {
			return value
		}
	}
	return ""
}

// NewTokenResponse is a convenience function for creating a TokenResponse with the given parameters.
// expires_in and scope are only set if they are passed a valid value.
func NewTokenResponse(accessToken, tokenType string, expiresIn int, scope string) *TokenResponse {
	tr := &TokenResponse{
		AccessToken: accessToken,
		TokenType:   tokenType,
	}
	if expiresIn > 0 {
		tr.ExpiresIn = &expiresIn
	}
	if scope != "" {
		tr.Scope = &scope
	}
	return tr
}

// metadata endpoints
const (
	// AuthzServerWellKnown is the well-known base path for the oauth authorization server metadata as defined in RFC8414
	AuthzServerWellKnown = "/.well-known/oauth-authorization-server"
	// AuthorizationPath is the path of the authorization endpoint
	AuthorizationPath = "/oauth2/authorize"
	// TokenPath is the path of the token endpoint
	TokenPath = "/oauth2/token"
	// JWKSPath is the path of the endpoint that publishes the public token signing keys
	JWKSPath = "/oauth2/jwks"
)

// oauth parameter keys
const (
	// ClientIDParam is the parameter name for the client_id parameter. (RFC6749)
	ClientIDParam = "client_id"
	// ClientSecretParam is the parameter name for the client_secret parameter. (RFC6749)
	ClientSecretParam = "client_secret"
	// CodeParam is the parameter name for the code parameter. (RFC6749)
	CodeParam = CodeResponseType
	// CodeChallengeParam is the parameter name for the code_challenge parameter. (RFC7636)
	CodeChallengeParam = "code_challenge"
	// CodeChallengeMethodParam is the parameter name for the code_challenge_method parameter. (RFC7636)
	CodeChallengeMethodParam = "code_challenge_method"
	// CodeVerifierParam is the parameter name for the code_verifier parameter. (RFC7636)
	CodeVerifierParam = "code_verifier"
	// GrantTypeParam is the parameter name for the grant_type parameter. (RFC6749)
	GrantTypeParam = "grant_type"
	// RedirectURIParam is the parameter name for the redirect_uri parameter. (RFC6749)
	RedirectURIParam = "redirect_uri"
	// ResponseTypeParam is the parameter name for the response_type parameter. (RFC6749)
	ResponseTypeParam = "response_type"
	// ScopeParam is the parameter name for the scope parameter. (RFC6749)
	ScopeParam = "scope"
	// StateParam is the parameter name for the state parameter. (RFC6749)
	StateParam = "state"
)

// grant types
const (
	// AuthorizationCodeGrantType is the grant_type for the authorization_code grant type. (RFC6749)
	AuthorizationCodeGrantType = "authorization_code"
)

// response types
const (
	// CodeResponseType is the parameter name for the code parameter. (RFC6749)
	CodeResponseType = "code"
)

// token types
const (
	// BearerTokenType is the token_type of issued access tokens. (RFC6750)
	BearerTokenType = "Bearer"
)

// client authentication methods (RFC7591)
const (
	ClientSecretBasic = "client_secret_basic"
	ClientSecretPost  = "client_secret_post"
	// NoClientAuthentication is used by public clients, which rely on PKCE only.
	NoClientAuthentication = "none"
)

const (
	// ErrorParam is the parameter name for the error parameter
	ErrorParam = "error"
	// ErrorDescriptionParam is the parameter name for the error_description parameter
	ErrorDescriptionParam = "error_description"
)

// ParseScope splits a space-delimited scope parameter (RFC6749, section 3.3) into its scope tokens.
// Duplicate tokens are removed, the order is retained.
func ParseScope(scope string) []string {
	result := make([]string, 0)
	seen := make(map[string]bool)
	for _, token := range strings.Fields(scope) {
		if !seen[token] {
			seen[token] = true
			result = append(result, token)
		}
	}
	return result
}

// FormatScope joins scope tokens into a space-delimited scope parameter.
func FormatScope(scopes []string) string {
	return strings.Join(scopes, " ")
}

// AuthorizationServerMetadata defines the OAuth Authorization Server metadata.
// Specified by https://www.rfc-editor.org/rfc/rfc8414.txt
type AuthorizationServerMetadata struct {
	// Issuer defines the authorization server's identifier, which is a URL that uses the "https" scheme and has no query or fragment components.
	Issuer string `json:"issuer"`

	/* ******** /authorize ******** */

	// AuthorizationEndpoint defines the URL of the authorization server's authorization endpoint [RFC6749]
	AuthorizationEndpoint string `json:"authorization_endpoint"`

	// ResponseTypesSupported defines what response types a client can request
	ResponseTypesSupported []string `json:"response_types_supported"`

	// ResponseModesSupported defines what response modes a client can request. Only 'query' is supported.
	ResponseModesSupported []string `json:"response_modes_supported,omitempty"`

	// ScopesSupported lists the union of the scopes of all registered clients.
	ScopesSupported []string `json:"scopes_supported,omitempty"`

	// CodeChallengeMethodsSupported lists the PKCE code challenge methods (RFC7636). Only 'S256' is supported.
	CodeChallengeMethodsSupported []string `json:"code_challenge_methods_supported"`

	/* ******** /token ******** */

	// TokenEndpoint defines the URL of the authorization server's token endpoint [RFC6749].
	TokenEndpoint string `json:"token_endpoint"`

	// GrantTypesSupported is a list of the OAuth 2.0 grant type values that this authorization server supports.
	GrantTypesSupported []string `json:"grant_types_supported"`

	// TokenEndpointAuthMethodsSupported is a JSON array containing a list of client authentication methods supported by this token endpoint.
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported"`

	// JWKSURI is the URL of the JWK set containing the keys used to sign access tokens.
	JWKSURI string `json:"jwks_uri"`
}
