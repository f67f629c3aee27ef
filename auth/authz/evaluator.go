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
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/nuts-foundation/wallet-authz/auth/clients"
	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/auth/oauth"
	"github.com/nuts-foundation/wallet-authz/auth/users"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/crypto"
)

// MaxStateLength is the maximum length of the state parameter, which is stored with the authorization.
const MaxStateLength = 2048

// Request is an OAuth2 authorization request (RFC6749, section 4.1.1) with PKCE (RFC7636, section 4.3).
// It's request scoped and never stored as is.
type Request struct {
	ResponseType        string
	ClientID            string
	Scopes              []string
	RedirectURI         string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
	// Principal is the authenticated user, nil if the user did not authenticate.
	Principal *users.Principal
}

// ParseRequest reads the authorization request from the (query or form) parameters.
func ParseRequest(params url.Values, principal *users.Principal) Request {
	return Request{
		ResponseType:        params.Get(oauth.ResponseTypeParam),
		ClientID:            params.Get(oauth.ClientIDParam),
		Scopes:              oauth.ParseScope(params.Get(oauth.ScopeParam)),
		RedirectURI:         params.Get(oauth.RedirectURIParam),
		State:               params.Get(oauth.StateParam),
		CodeChallenge:       params.Get(oauth.CodeChallengeParam),
		CodeChallengeMethod: params.Get(oauth.CodeChallengeMethodParam),
		Principal:           principal,
	}
}

// Result is the outcome of a valid authorization request.
type Result struct {
	// Authenticated is false if the request is valid, but the user still needs to authenticate.
	Authenticated bool
	// RedirectURL is the client's redirect URI with the authorization code and state, set if Authenticated.
	RedirectURL string
	// AuthorizationID is the ID of the stored authorization, set if Authenticated.
	AuthorizationID string
}

// Evaluator validates authorization requests, and issues authorization codes for requests of authenticated users.
type Evaluator struct {
	Clients clients.Repository
	Store   Store
	Metrics *Metrics
	// now is used in tests to control time.
	now func() time.Time
}

// Evaluate validates the request. If the request is invalid, an oauth.OAuth2Error is returned and nothing is stored.
// If the user did not authenticate, the Result is not authenticated, so the caller can start authentication.
// Otherwise, an authorization code is issued and stored before it's returned in the redirect URL.
func (e Evaluator) Evaluate(ctx context.Context, request Request) (*Result, error) {
	client, redirectURI, err := e.validate(ctx, request)
	if err != nil {
		return nil, err
	}
	if request.Principal == nil || request.Principal.Hash == "" {
		return &Result{Authenticated: false}, nil
	}
	code := crypto.GenerateCode()
	issuedAt := e.timeNow()
	authorization := Authorization{
		ID:            uuid.NewString(),
		ClientID:      client.ID,
		PrincipalHash: request.Principal.Hash,
		Scopes:        request.Scopes,
		GrantType:     oauth.AuthorizationCodeGrantType,
		CodeHash:      HashCode(code),
		IssuedAt:      issuedAt,
		ExpiresAt:     issuedAt.Add(client.AuthorizationCodeTTL),
		Attributes: Attributes{
			RequestedRedirectURI: request.RedirectURI,
			RedirectURI:          redirectURI.String(),
			State:                request.State,
			CodeChallenge:        request.CodeChallenge,
			CodeChallengeMethod:  request.CodeChallengeMethod,
			Principal:            *request.Principal,
		},
	}
	if err = e.Store.Create(ctx, authorization); err != nil {
		return nil, oauth.OAuth2Error{Code: oauth.ServerError, InternalError: err}
	}
	if e.Metrics != nil {
		e.Metrics.codesIssued.Inc()
	}
	log.Logger().
		WithField(core.LogFieldClientID, client.ID).
		WithField(core.LogFieldAuthorizationID, authorization.ID).
		Infof("Issued authorization code (scope=%s)", oauth.FormatScope(request.Scopes))
	query := redirectURI.Query()
	query.Set(oauth.CodeParam, code)
	if request.State != "" {
		query.Set(oauth.StateParam, request.State)
	}
	redirectURI.RawQuery = query.Encode()
	return &Result{
		Authenticated:   true,
		RedirectURL:     redirectURI.String(),
		AuthorizationID: authorization.ID,
	}, nil
}

// validate checks the request in order: client and redirect URI, scopes, code challenge and code challenge method, state.
// It returns the client and the redirect URI to send the code to.
func (e Evaluator) validate(ctx context.Context, request Request) (*clients.RegisteredClient, *url.URL, error) {
	if request.ClientID == "" {
		return nil, nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "missing client_id parameter"}
	}
	client, err := e.Clients.FindByID(ctx, request.ClientID)
	if errors.Is(err, clients.ErrClientNotFound) {
		return nil, nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "unknown client", InternalError: err}
	} else if err != nil {
		return nil, nil, oauth.OAuth2Error{Code: oauth.ServerError, InternalError: err}
	}
	if !client.SupportsGrantType(oauth.AuthorizationCodeGrantType) {
		return nil, nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "client does not support the authorization_code grant type"}
	}
	if request.ResponseType != oauth.CodeResponseType {
		return nil, nil, oauth.OAuth2Error{Code: oauth.UnsupportedResponseType, Description: "response_type must be code"}
	}
	resolvedRedirectURI, ok := client.ResolveRedirectURI(request.RedirectURI)
	if !ok {
		return nil, nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "redirect_uri is missing or not registered for the client"}
	}
	redirectURI, err := url.Parse(resolvedRedirectURI)
	if err != nil {
		return nil, nil, oauth.OAuth2Error{Code: oauth.ServerError, InternalError: err}
	}
	if !client.AllowsScopes(request.Scopes) {
		return nil, nil, oauth.OAuth2Error{Code: oauth.InvalidScope, Description: "requested scope is not allowed for the client"}
	}
	if request.CodeChallenge == "" {
		return nil, nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "missing code_challenge parameter"}
	}
	if request.CodeChallengeMethod != oauth.S256 {
		return nil, nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "code_challenge_method must be S256"}
	}
	if !oauth.IsValidS256Challenge(request.CodeChallenge) {
		return nil, nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "code_challenge must be a base64url encoded SHA-256 digest"}
	}
	if len(request.State) > MaxStateLength {
		return nil, nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: fmt.Sprintf("state must not be longer than %d characters", MaxStateLength)}
	}
	return client, redirectURI, nil
}

func (e Evaluator) timeNow() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}
