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
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nuts-foundation/wallet-authz/auth/clients"
	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/auth/oauth"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/crypto"
)

// TokenRequest is an access token request for the authorization code grant (RFC6749, section 4.1.3).
type TokenRequest struct {
	GrantType    string
	Code         string
	RedirectURI  string
	CodeVerifier string
	// ClientID and ClientSecret are taken from the HTTP Basic credentials or the request body.
	ClientID     string
	ClientSecret string
}

// TokenIssuer exchanges authorization codes for access tokens.
type TokenIssuer struct {
	Clients clients.Repository
	Store   Store
	Signer  crypto.JWTSigner
	// Issuer is the identifier of this authorization server, used as iss claim.
	Issuer  string
	Metrics *Metrics
	now     func() time.Time
}

// Exchange redeems the authorization code and issues a signed access token.
// The code is consumed before the other checks, so a code presented with an invalid client or verifier can't be used again.
func (t TokenIssuer) Exchange(ctx context.Context, request TokenRequest) (*oauth.TokenResponse, error) {
	response, err := t.exchange(ctx, request)
	if t.Metrics != nil {
		result := "success"
		var oauthErr oauth.OAuth2Error
		if errors.As(err, &oauthErr) {
			result = string(oauthErr.Code)
		} else if err != nil {
			result = string(oauth.ServerError)
		}
		t.Metrics.codesRedeemed.WithLabelValues(result).Inc()
	}
	return response, err
}

func (t TokenIssuer) exchange(ctx context.Context, request TokenRequest) (*oauth.TokenResponse, error) {
	if request.GrantType != oauth.AuthorizationCodeGrantType {
		return nil, oauth.OAuth2Error{Code: oauth.UnsupportedGrantType, Description: "grant_type must be authorization_code"}
	}
	if request.Code == "" {
		return nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "missing code parameter"}
	}
	now := t.timeNow()
	authorization, err := t.Store.Consume(ctx, HashCode(request.Code), now)
	if errors.Is(err, ErrCodeNotRedeemable) {
		return nil, oauth.OAuth2Error{Code: oauth.InvalidGrant, Description: "invalid authorization code", InternalError: err}
	} else if err != nil {
		return nil, oauth.OAuth2Error{Code: oauth.ServerError, InternalError: err}
	}
	logger := log.Logger().
		WithField(core.LogFieldClientID, request.ClientID).
		WithField(core.LogFieldAuthorizationID, authorization.ID)
	client, err := t.authenticateClient(ctx, request)
	if err != nil {
		return nil, err
	}
	if client.ID != authorization.ClientID {
		return nil, oauth.OAuth2Error{Code: oauth.InvalidGrant, Description: "authorization code was issued to another client"}
	}
	if !redirectURIMatches(authorization.Attributes, request.RedirectURI) {
		return nil, oauth.OAuth2Error{Code: oauth.InvalidGrant, Description: "redirect_uri does not match the authorization request"}
	}
	if !oauth.VerifyPKCE(authorization.Attributes.CodeChallenge, authorization.Attributes.CodeChallengeMethod, request.CodeVerifier) {
		return nil, oauth.OAuth2Error{Code: oauth.InvalidGrant, Description: "code_verifier does not match code_challenge"}
	}
	expiresIn := int(client.AccessTokenTTL.Seconds())
	scope := oauth.FormatScope(authorization.Scopes)
	claims := map[string]interface{}{
		"iss":       t.Issuer,
		"sub":       authorization.PrincipalHash,
		"client_id": client.ID,
		"iat":       now.Unix(),
		"exp":       now.Add(client.AccessTokenTTL).Unix(),
		"jti":       uuid.NewString(),
		"role":      authorization.Attributes.Principal.Role,
	}
	if scope != "" {
		claims["scope"] = scope
	}
	accessToken, err := t.Signer.SignJWT(ctx, claims)
	if err != nil {
		return nil, oauth.OAuth2Error{Code: oauth.ServerError, InternalError: err}
	}
	logger.Info("Authorization code exchanged for access token")
	return oauth.NewTokenResponse(accessToken, oauth.BearerTokenType, expiresIn, scope), nil
}

// authenticateClient authenticates the client (RFC6749, section 2.3.1).
// Confidential clients must authenticate with their secret, public clients only identify themselves.
func (t TokenIssuer) authenticateClient(ctx context.Context, request TokenRequest) (*clients.RegisteredClient, error) {
	if request.ClientID == "" {
		return nil, oauth.OAuth2Error{Code: oauth.InvalidClient, Description: "missing client authentication"}
	}
	client, err := t.Clients.FindByID(ctx, request.ClientID)
	if errors.Is(err, clients.ErrClientNotFound) {
		return nil, oauth.OAuth2Error{Code: oauth.InvalidClient, Description: "client authentication failed", InternalError: err}
	} else if err != nil {
		return nil, oauth.OAuth2Error{Code: oauth.ServerError, InternalError: err}
	}
	if client.IsPublic() {
		if request.ClientSecret != "" {
			return nil, oauth.OAuth2Error{Code: oauth.InvalidClient, Description: "client authentication failed"}
		}
		return client, nil
	}
	if !client.VerifySecret(request.ClientSecret) {
		return nil, oauth.OAuth2Error{Code: oauth.InvalidClient, Description: "client authentication failed"}
	}
	return client, nil
}

// redirectURIMatches checks the redirect_uri of the token request (RFC6749, section 4.1.3):
// it's required if the authorization request included it, and must then be identical.
func redirectURIMatches(attributes Attributes, redirectURI string) bool {
	if attributes.RequestedRedirectURI != "" {
		return redirectURI == attributes.RequestedRedirectURI
	}
	return redirectURI == "" || redirectURI == attributes.RedirectURI
}

func (t TokenIssuer) timeNow() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}
