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
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/wallet-authz/audit"
	"github.com/nuts-foundation/wallet-authz/auth"
	"github.com/nuts-foundation/wallet-authz/auth/api/iam/assets"
	"github.com/nuts-foundation/wallet-authz/auth/authz"
	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/auth/oauth"
	"github.com/nuts-foundation/wallet-authz/auth/oid4vp"
	"github.com/nuts-foundation/wallet-authz/auth/session"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/http/cache"
)

const apiModuleName = auth.ModuleName + "/OAuth2"

// metadataMaxAge is how long clients may cache the authorization server metadata and signing keys.
const metadataMaxAge = time.Hour

// singleValuedAuthorizationParams are the authorization request parameters that must not be included more than once (RFC6749, section 3.1).
var singleValuedAuthorizationParams = []string{
	oauth.ResponseTypeParam,
	oauth.ClientIDParam,
	oauth.ScopeParam,
	oauth.RedirectURIParam,
	oauth.StateParam,
	oauth.CodeChallengeParam,
	oauth.CodeChallengeMethodParam,
}

// singleValuedTokenParams are the token request parameters that must not be included more than once.
var singleValuedTokenParams = []string{
	oauth.GrantTypeParam,
	oauth.CodeParam,
	oauth.RedirectURIParam,
	oauth.CodeVerifierParam,
	oauth.ClientIDParam,
	oauth.ClientSecretParam,
}

// Wrapper handles the browser and client facing endpoints of the authorization server.
type Wrapper struct {
	Auth auth.AuthorizationServer
}

// New creates the API wrapper for the given authorization server.
func New(authInstance auth.AuthorizationServer) *Wrapper {
	return &Wrapper{Auth: authInstance}
}

func (r Wrapper) Routes(router core.EchoRouter) {
	sessions := r.sessionMiddleware
	oauthOperation := operation(&oauth.Oauth2ErrorWriter{})
	browserOperation := operation(nil)
	noStore := cache.NoStore()
	maxAge := cache.MaxAge(metadataMaxAge)
	router.GET(oauth.AuthorizationPath, r.HandleAuthorizeRequest, oauthOperation("HandleAuthorizeRequest"), sessions, noStore)
	router.POST(oauth.AuthorizationPath, r.HandleAuthorizeRequest, oauthOperation("HandleAuthorizeRequest"), sessions, noStore)
	router.POST(oauth.TokenPath, r.HandleTokenRequest, oauthOperation("HandleTokenRequest"), noStore)
	router.GET(oid4vp.CallbackPath, r.HandleWalletCallback, browserOperation("HandleWalletCallback"), sessions, noStore)
	router.GET(oauth.AuthzServerWellKnown, r.OAuthAuthorizationServerMetadata, browserOperation("OAuthAuthorizationServerMetadata"), maxAge)
	router.GET(oauth.JWKSPath, r.JWKS, browserOperation("JWKS"), maxAge)
	router.GET(oid4vp.ErrorPath, r.ErrorPage, noStore)
}

// operation returns middleware that sets the operation ID and the error writer of a route, for (audit) logging and error responses.
func operation(errorWriter core.ErrorWriter) func(operationID string) echo.MiddlewareFunc {
	return func(operationID string) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(echoCtx echo.Context) error {
				echoCtx.Set(core.OperationIDContextKey, operationID)
				echoCtx.Set(core.ModuleNameContextKey, apiModuleName)
				audit.Middleware(echoCtx, apiModuleName, operationID)
				if errorWriter != nil {
					echoCtx.Set(core.ErrorWriterContextKey, errorWriter)
				}
				return next(echoCtx)
			}
		}
	}
}

// sessionMiddleware resolves the session middleware on each request, since it's only available after the engine has been configured.
func (r Wrapper) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(echoCtx echo.Context) error {
		return r.Auth.SessionMiddleware()(next)(echoCtx)
	}
}

// HandleAuthorizeRequest handles an authorization request (RFC6749, section 4.1.1), as query parameters (GET) or form (POST).
// Invalid requests are answered with an OAuth2 error response, never with a redirect to the client.
// If the browser session isn't authenticated, wallet authentication is started.
func (r Wrapper) HandleAuthorizeRequest(echoCtx echo.Context) error {
	params, err := requestParams(echoCtx, singleValuedAuthorizationParams)
	if err != nil {
		return err
	}
	sessionData, err := session.Get(echoCtx.Request().Context())
	if err != nil {
		return oauth.OAuth2Error{Code: oauth.ServerError, InternalError: err}
	}
	ctx := echoCtx.Request().Context()
	clientID := params.Get(oauth.ClientIDParam)
	result, err := r.Auth.Evaluator().Evaluate(ctx, authz.ParseRequest(params, sessionData.Principal))
	if err != nil {
		return err
	}
	if !result.Authenticated {
		// Errors from here on are about the wallet authentication, not the OAuth2 request.
		echoCtx.Set(core.ErrorWriterContextKey, nil)
		if err = r.Auth.EntryPoint().Commence(echoCtx); err != nil {
			return err
		}
		audit.Log(ctx, log.Logger(), audit.WalletAuthenticationStartedEvent).
			WithField(core.LogFieldClientID, clientID).
			Info("Wallet authentication started")
		return nil
	}
	audit.Log(ctx, log.Logger(), audit.AuthorizationCodeIssuedEvent).
		WithField(core.LogFieldClientID, clientID).
		WithField(core.LogFieldAuthorizationID, result.AuthorizationID).
		Infof("Authorization code issued (user=%s)", core.TruncateID(sessionData.Principal.Hash))
	return echoCtx.Redirect(http.StatusFound, result.RedirectURL)
}

// HandleWalletCallback handles the browser returning from the wallet, after the presentation exchange completed.
func (r Wrapper) HandleWalletCallback(echoCtx echo.Context) error {
	return r.Auth.CallbackHandler().Handle(echoCtx)
}

// HandleTokenRequest handles an access token request (RFC6749, section 4.1.3).
// Confidential clients authenticate using HTTP Basic (client_secret_basic) or the request body (client_secret_post).
func (r Wrapper) HandleTokenRequest(echoCtx echo.Context) error {
	params, err := requestParams(echoCtx, singleValuedTokenParams)
	if err != nil {
		return err
	}
	request := authz.TokenRequest{
		GrantType:    params.Get(oauth.GrantTypeParam),
		Code:         params.Get(oauth.CodeParam),
		RedirectURI:  params.Get(oauth.RedirectURIParam),
		CodeVerifier: params.Get(oauth.CodeVerifierParam),
		ClientID:     params.Get(oauth.ClientIDParam),
		ClientSecret: params.Get(oauth.ClientSecretParam),
	}
	if username, password, ok := echoCtx.Request().BasicAuth(); ok {
		if params.Has(oauth.ClientSecretParam) {
			return oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "multiple client authentication methods used"}
		}
		// RFC6749, section 2.3.1: credentials are form-urlencoded before they're used as Basic credentials
		clientID, err1 := url.QueryUnescape(username)
		clientSecret, err2 := url.QueryUnescape(password)
		if err := errors.Join(err1, err2); err != nil {
			return oauth.OAuth2Error{Code: oauth.InvalidClient, Description: "malformed client credentials", InternalError: err}
		}
		if request.ClientID != "" && request.ClientID != clientID {
			return oauth.OAuth2Error{Code: oauth.InvalidClient, Description: "client_id does not match client credentials"}
		}
		request.ClientID = clientID
		request.ClientSecret = clientSecret
	}
	ctx := echoCtx.Request().Context()
	response, err := r.Auth.TokenIssuer().Exchange(ctx, request)
	if err != nil {
		audit.Log(ctx, log.Logger(), audit.AccessTokenRequestRejectedEvent).
			WithField(core.LogFieldClientID, request.ClientID).
			WithError(err).
			Info("Access token request rejected")
		return err
	}
	audit.Log(ctx, log.Logger(), audit.AccessTokenIssuedEvent).
		WithField(core.LogFieldClientID, request.ClientID).
		Info("Access token issued")
	return echoCtx.JSON(http.StatusOK, response)
}

// OAuthAuthorizationServerMetadata returns the authorization server metadata (RFC8414).
func (r Wrapper) OAuthAuthorizationServerMetadata(echoCtx echo.Context) error {
	registered, err := r.Auth.Clients().List(echoCtx.Request().Context())
	if err != nil {
		return err
	}
	return echoCtx.JSON(http.StatusOK, authorizationServerMetadata(r.Auth.PublicURL(), registered))
}

// JWKS returns the public keys access tokens are signed with.
func (r Wrapper) JWKS(echoCtx echo.Context) error {
	keySet, err := r.Auth.Signer().PublicKeySet()
	if err != nil {
		return err
	}
	return echoCtx.JSON(http.StatusOK, keySet)
}

// ErrorPage renders the generic error page users are sent to when wallet authentication failed.
// It intentionally shows no details.
func (r Wrapper) ErrorPage(echoCtx echo.Context) error {
	page, err := assets.RenderError(assets.ErrorPage{
		Title:   "Authentication failed",
		Message: "You could not be logged in. Return to the application and try again.",
	})
	if err != nil {
		log.Logger().WithError(err).Error("Unable to render error page")
		return echoCtx.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
	return echoCtx.HTML(http.StatusOK, page)
}

// requestParams returns the request's query parameters (GET) or form parameters (POST).
// It fails with invalid_request if any of the given parameters is included more than once.
func requestParams(echoCtx echo.Context, singleValued []string) (url.Values, error) {
	var params url.Values
	if echoCtx.Request().Method == http.MethodPost {
		if err := echoCtx.Request().ParseForm(); err != nil {
			return nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "invalid form body", InternalError: err}
		}
		params = echoCtx.Request().PostForm
	} else {
		params = echoCtx.QueryParams()
	}
	for _, name := range singleValued {
		if len(params[name]) > 1 {
			return nil, oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: name + " parameter must not be included more than once"}
		}
	}
	return params, nil
}
