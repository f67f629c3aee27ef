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
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/nuts-foundation/wallet-authz/audit"
	"github.com/nuts-foundation/wallet-authz/auth"
	"github.com/nuts-foundation/wallet-authz/auth/oauth"
	"github.com/nuts-foundation/wallet-authz/auth/session"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapper_WalletAuthentication(t *testing.T) {
	t.Run("authorization code is issued after wallet authentication", func(t *testing.T) {
		ctx := newTestContext(t)
		browser := ctx.newBrowser(t)
		auditLogs := audit.CaptureLogs(t)

		// unauthenticated authorization request starts wallet authentication
		response := browser.get(t, ctx.authorizeURL(authorizationParams("xyz")))
		require.Equal(t, http.StatusFound, response.StatusCode)
		assert.Equal(t, "https://wallet.example.com/authorize?request_uri=1", response.Header.Get("Location"))
		require.Len(t, ctx.verifier.transactions(), 1)
		sessionCookie := browser.cookies(ctx.server.URL)
		require.Len(t, sessionCookie, 1)
		assert.Equal(t, sessionCookie[0].Value, ctx.verifier.transactions()[0])
		assert.Equal(t, int64(0), ctx.countAuthorizations(t))

		// browser returns from the wallet
		response = browser.get(t, ctx.callbackURL("nonce-1", "presentation-1"))
		require.Equal(t, http.StatusFound, response.StatusCode)
		returnURL := response.Header.Get("Location")
		assert.Equal(t, ctx.authorizeURL(authorizationParams("xyz")), returnURL)
		t.Run("session is rotated", func(t *testing.T) {
			rotated := browser.cookies(ctx.server.URL)
			require.Len(t, rotated, 1)
			assert.NotEqual(t, sessionCookie[0].Value, rotated[0].Value)
		})

		// authorization request is resumed with the authenticated session
		response = browser.get(t, returnURL)
		require.Equal(t, http.StatusFound, response.StatusCode)
		redirectURL, err := url.Parse(response.Header.Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "app1.example.com", redirectURL.Host)
		assert.Equal(t, "/cb", redirectURL.Path)
		assert.Equal(t, "xyz", redirectURL.Query().Get("state"))
		code := redirectURL.Query().Get("code")
		assert.NotEmpty(t, code)
		assert.Equal(t, int64(1), ctx.countAuthorizations(t))

		// client exchanges the code for an access token
		response, err = ctx.server.Client().PostForm(ctx.server.URL+oauth.TokenPath, url.Values{
			oauth.GrantTypeParam:    {oauth.AuthorizationCodeGrantType},
			oauth.CodeParam:         {code},
			oauth.RedirectURIParam:  {clientRedirectURI},
			oauth.CodeVerifierParam: {codeVerifier},
			oauth.ClientIDParam:     {"app1"},
		})
		require.NoError(t, err)
		defer response.Body.Close()
		require.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, "no-store", response.Header.Get("Cache-Control"))
		var tokenResponse oauth.TokenResponse
		require.NoError(t, json.NewDecoder(response.Body).Decode(&tokenResponse))
		assert.Equal(t, oauth.BearerTokenType, tokenResponse.TokenType)
		require.NotNil(t, tokenResponse.Scope)
		assert.Equal(t, "read", *tokenResponse.Scope)

		// access token can be verified with the published keys
		keySet := fetchKeySet(t, ctx)
		token, err := jwt.ParseString(tokenResponse.AccessToken, jwt.WithKeySet(keySet), jwt.WithValidate(true))
		require.NoError(t, err)
		assert.Equal(t, auth.TestUserHash, token.Subject())
		assert.Equal(t, ctx.server.URL, token.Issuer())

		app1 := logrus.Fields{core.LogFieldClientID: "app1", "module": auth.ModuleName}
		auditLogs.AssertEvent(t, audit.WalletAuthenticationStartedEvent, app1)
		issued := auditLogs.AssertEvent(t, audit.AuthorizationCodeIssuedEvent, app1)
		require.NotNil(t, issued)
		assert.NotEmpty(t, issued.Data[core.LogFieldAuthorizationID])
		auditLogs.AssertEvent(t, audit.AccessTokenIssuedEvent, app1)
	})
	t.Run("code challenge method plain is rejected before wallet authentication", func(t *testing.T) {
		ctx := newTestContext(t)
		browser := ctx.newBrowser(t)
		params := authorizationParams("xyz")
		params.Set(oauth.CodeChallengeParam, "abc")
		params.Set(oauth.CodeChallengeMethodParam, "plain")

		response := browser.get(t, ctx.authorizeURL(params))

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assertOAuthError(t, response, oauth.InvalidRequest)
		assert.Empty(t, response.Header.Get("Location"))
		assert.Empty(t, ctx.verifier.transactions())
		assert.Equal(t, int64(0), ctx.countAuthorizations(t))
	})
	t.Run("callback without wallet authentication in progress fails", func(t *testing.T) {
		ctx := newTestContext(t)
		browser := ctx.newBrowser(t)

		response := browser.get(t, ctx.callbackURL("nonce-1", "presentation-1"))

		assert.Equal(t, http.StatusFound, response.StatusCode)
		assert.Equal(t, "/error", response.Header.Get("Location"))
		assert.Equal(t, int64(0), ctx.countAuthorizations(t))
	})
	t.Run("last wallet authentication started in a session wins", func(t *testing.T) {
		start := func(t *testing.T) (*testContext, *browser, *browser) {
			ctx := newTestContext(t)
			first := ctx.newBrowser(t)
			response := first.get(t, ctx.authorizeURL(authorizationParams("first")))
			require.Equal(t, http.StatusFound, response.StatusCode)
			// second browser shares the session cookie
			second := ctx.newBrowser(t)
			serverURL, _ := url.Parse(ctx.server.URL)
			second.client.Jar.SetCookies(serverURL, first.cookies(ctx.server.URL))
			response = second.get(t, ctx.authorizeURL(authorizationParams("second")))
			require.Equal(t, http.StatusFound, response.StatusCode)
			transactions := ctx.verifier.transactions()
			require.Len(t, transactions, 2)
			require.Equal(t, transactions[0], transactions[1])
			return ctx, first, second
		}
		t.Run("first presentation is no longer recognized", func(t *testing.T) {
			ctx, first, _ := start(t)

			response := first.get(t, ctx.callbackURL("nonce-1", "presentation-1"))

			assert.Equal(t, "/error", response.Header.Get("Location"))
		})
		t.Run("second presentation resumes the second authorization request", func(t *testing.T) {
			ctx, _, second := start(t)

			response := second.get(t, ctx.callbackURL("nonce-2", "presentation-2"))

			assert.Equal(t, ctx.authorizeURL(authorizationParams("second")), response.Header.Get("Location"))
		})
	})
	t.Run("rejected presentation can't be retried", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.verifier.status = "declined"
		browser := ctx.newBrowser(t)
		browser.get(t, ctx.authorizeURL(authorizationParams("xyz")))

		response := browser.get(t, ctx.callbackURL("nonce-1", "presentation-1"))
		assert.Equal(t, "/error", response.Header.Get("Location"))
		ctx.verifier.mux.Lock()
		ctx.verifier.status = "verified"
		ctx.verifier.mux.Unlock()
		response = browser.get(t, ctx.callbackURL("nonce-1", "presentation-1"))

		assert.Equal(t, "/error", response.Header.Get("Location"))
	})
	t.Run("unknown user", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.verifier.claims["identity_hash"] = "unknown"
		browser := ctx.newBrowser(t)
		browser.get(t, ctx.authorizeURL(authorizationParams("xyz")))

		response := browser.get(t, ctx.callbackURL("nonce-1", "presentation-1"))

		assert.Equal(t, "/error", response.Header.Get("Location"))
	})
}

func TestWrapper_HandleAuthorizeRequest(t *testing.T) {
	t.Run("POST", func(t *testing.T) {
		ctx := newTestContext(t)
		browser := ctx.newBrowser(t)

		response, err := browser.client.PostForm(ctx.server.URL+oauth.AuthorizationPath, authorizationParams("xyz"))
		require.NoError(t, err)
		defer response.Body.Close()
		require.Equal(t, http.StatusFound, response.StatusCode)
		response = browser.get(t, ctx.callbackURL("nonce-1", "presentation-1"))

		assert.Equal(t, ctx.authorizeURL(authorizationParams("xyz")), response.Header.Get("Location"))
	})
	t.Run("error - parameter included more than once", func(t *testing.T) {
		ctx := newTestContext(t)
		params := authorizationParams("xyz")
		params.Add(oauth.ScopeParam, "sign")

		response := ctx.newBrowser(t).get(t, ctx.authorizeURL(params))

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assertOAuthError(t, response, oauth.InvalidRequest)
	})
	t.Run("error - scope not allowed", func(t *testing.T) {
		ctx := newTestContext(t)
		params := authorizationParams("xyz")
		params.Set(oauth.ScopeParam, "read admin")

		response := ctx.newBrowser(t).get(t, ctx.authorizeURL(params))

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assertOAuthError(t, response, oauth.InvalidScope)
		assert.Empty(t, ctx.verifier.transactions())
	})
	t.Run("error - verifier unavailable", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.verifier.server.Close()

		response := ctx.newBrowser(t).get(t, ctx.authorizeURL(authorizationParams("xyz")))

		assert.Equal(t, http.StatusBadGateway, response.StatusCode)
		assert.Equal(t, "application/problem+json", response.Header.Get("Content-Type"))
		body, _ := io.ReadAll(response.Body)
		assert.Contains(t, string(body), "unable to start wallet authentication")
		assert.NotContains(t, string(body), ctx.verifier.server.URL)
	})
	t.Run("POST with parameters in query and body resumes the body parameters", func(t *testing.T) {
		ctx := newTestContext(t)
		browser := ctx.newBrowser(t)
		target := ctx.server.URL + oauth.AuthorizationPath + "?" + url.Values{oauth.StateParam: {"from-query"}}.Encode()

		response, err := browser.client.PostForm(target, authorizationParams("from-body"))
		require.NoError(t, err)
		defer response.Body.Close()
		require.Equal(t, http.StatusFound, response.StatusCode)
		response = browser.get(t, ctx.callbackURL("nonce-1", "presentation-1"))
		require.Equal(t, http.StatusFound, response.StatusCode)
		assert.Equal(t, ctx.authorizeURL(authorizationParams("from-body")), response.Header.Get("Location"))

		// the resumed request is accepted, and the code is issued for the state in the body
		response = browser.get(t, response.Header.Get("Location"))
		require.Equal(t, http.StatusFound, response.StatusCode)
		location, err := url.Parse(response.Header.Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, []string{"from-body"}, location.Query()[oauth.StateParam])
		assert.NotEmpty(t, location.Query().Get(oauth.CodeParam))
	})
}

func TestWrapper_HandleTokenRequest(t *testing.T) {
	confidentialParams := func() url.Values {
		params := authorizationParams("xyz")
		params.Set(oauth.ClientIDParam, "app2")
		params.Set(oauth.RedirectURIParam, "https://app2.example.com/cb")
		return params
	}
	tokenRequest := func(code string, clientID string) url.Values {
		redirectURI := clientRedirectURI
		if clientID == "app2" {
			redirectURI = "https://app2.example.com/cb"
		}
		return url.Values{
			oauth.GrantTypeParam:    {oauth.AuthorizationCodeGrantType},
			oauth.CodeParam:         {code},
			oauth.RedirectURIParam:  {redirectURI},
			oauth.CodeVerifierParam: {codeVerifier},
			oauth.ClientIDParam:     {clientID},
		}
	}
	post := func(t *testing.T, ctx *testContext, form url.Values, basicAuth ...string) *http.Response {
		request, _ := http.NewRequest(http.MethodPost, ctx.server.URL+oauth.TokenPath, strings.NewReader(form.Encode()))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if len(basicAuth) == 2 {
			request.SetBasicAuth(basicAuth[0], basicAuth[1])
		}
		response, err := ctx.server.Client().Do(request)
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = response.Body.Close()
		})
		return response
	}

	t.Run("ok - client_secret_basic", func(t *testing.T) {
		ctx := newTestContext(t)
		code := obtainCode(t, ctx, confidentialParams())
		form := tokenRequest(code, "app2")
		form.Del(oauth.ClientIDParam)

		response := post(t, ctx, form, "app2", auth.TestClientSecret)

		assert.Equal(t, http.StatusOK, response.StatusCode)
	})
	t.Run("ok - client_secret_post", func(t *testing.T) {
		ctx := newTestContext(t)
		code := obtainCode(t, ctx, confidentialParams())
		form := tokenRequest(code, "app2")
		form.Set(oauth.ClientSecretParam, auth.TestClientSecret)

		response := post(t, ctx, form)

		assert.Equal(t, http.StatusOK, response.StatusCode)
	})
	t.Run("error - code can only be used once", func(t *testing.T) {
		ctx := newTestContext(t)
		code := obtainCode(t, ctx, authorizationParams("xyz"))
		response := post(t, ctx, tokenRequest(code, "app1"))
		require.Equal(t, http.StatusOK, response.StatusCode)
		auditLogs := audit.CaptureLogs(t)

		response = post(t, ctx, tokenRequest(code, "app1"))

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assertOAuthError(t, response, oauth.InvalidGrant)
		rejected := auditLogs.AssertEvent(t, audit.AccessTokenRequestRejectedEvent, logrus.Fields{core.LogFieldClientID: "app1"})
		require.NotNil(t, rejected)
		assert.Len(t, auditLogs.Events(audit.AccessTokenIssuedEvent), 0)
	})
	t.Run("error - invalid client secret", func(t *testing.T) {
		ctx := newTestContext(t)
		code := obtainCode(t, ctx, confidentialParams())

		response := post(t, ctx, tokenRequest(code, "app2"), "app2", "wrong")

		assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
		assert.NotEmpty(t, response.Header.Get("WWW-Authenticate"))
		assertOAuthError(t, response, oauth.InvalidClient)
	})
	t.Run("error - client_id does not match client credentials", func(t *testing.T) {
		ctx := newTestContext(t)

		response := post(t, ctx, tokenRequest("code", "app1"), "app2", auth.TestClientSecret)

		assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
		assertOAuthError(t, response, oauth.InvalidClient)
	})
	t.Run("error - multiple client authentication methods", func(t *testing.T) {
		ctx := newTestContext(t)
		form := tokenRequest("code", "app2")
		form.Set(oauth.ClientSecretParam, auth.TestClientSecret)

		response := post(t, ctx, form, "app2", auth.TestClientSecret)

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assertOAuthError(t, response, oauth.InvalidRequest)
	})
	t.Run("error - parameter included more than once", func(t *testing.T) {
		ctx := newTestContext(t)
		form := tokenRequest("code", "app1")
		form.Add(oauth.CodeParam, "other")

		response := post(t, ctx, form)

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assertOAuthError(t, response, oauth.InvalidRequest)
	})
	t.Run("error - unsupported grant type", func(t *testing.T) {
		ctx := newTestContext(t)
		form := tokenRequest("code", "app1")
		form.Set(oauth.GrantTypeParam, "client_credentials")

		response := post(t, ctx, form)

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assertOAuthError(t, response, oauth.UnsupportedGrantType)
	})
}

func TestWrapper_OAuthAuthorizationServerMetadata(t *testing.T) {
	ctx := newTestContext(t)

	response := ctx.newBrowser(t).get(t, ctx.server.URL+oauth.AuthzServerWellKnown)

	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "max-age=3600", response.Header.Get("Cache-Control"))
	var metadata oauth.AuthorizationServerMetadata
	require.NoError(t, json.NewDecoder(response.Body).Decode(&metadata))
	assert.Equal(t, ctx.server.URL, metadata.Issuer)
	assert.Equal(t, ctx.server.URL+oauth.TokenPath, metadata.TokenEndpoint)
	assert.Equal(t, []string{"read", "sign"}, metadata.ScopesSupported)
}

func TestWrapper_JWKS(t *testing.T) {
	ctx := newTestContext(t)

	keySet := fetchKeySet(t, ctx)

	require.Equal(t, 1, keySet.Len())
	key, _ := keySet.Key(0)
	assert.Equal(t, ctx.auth.Signer().KeyID(), key.KeyID())
	_, isPrivate := key.(jwk.ECDSAPrivateKey)
	assert.False(t, isPrivate)
}

func TestWrapper_ErrorPage(t *testing.T) {
	ctx := newTestContext(t)

	response := ctx.newBrowser(t).get(t, ctx.server.URL+"/error")

	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "no-store", response.Header.Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(response.Header.Get("Content-Type"), "text/html"))
	body, _ := io.ReadAll(response.Body)
	assert.Contains(t, string(body), "Authentication failed")
	t.Run("does not create a session", func(t *testing.T) {
		for _, cookie := range response.Cookies() {
			assert.NotEqual(t, session.CookieName, cookie.Name)
		}
	})
}

// obtainCode runs the wallet authentication for the given authorization request, and returns the issued authorization code.
func obtainCode(t *testing.T, ctx *testContext, params url.Values) string {
	browser := ctx.newBrowser(t)
	response := browser.get(t, ctx.authorizeURL(params))
	require.Equal(t, http.StatusFound, response.StatusCode)
	n := len(ctx.verifier.transactions())
	response = browser.get(t, ctx.callbackURL("nonce-"+strconv.Itoa(n), "presentation-"+strconv.Itoa(n)))
	require.Equal(t, http.StatusFound, response.StatusCode)
	response = browser.get(t, response.Header.Get("Location"))
	require.Equal(t, http.StatusFound, response.StatusCode)
	redirectURL, err := url.Parse(response.Header.Get("Location"))
	require.NoError(t, err)
	code := redirectURL.Query().Get(oauth.CodeParam)
	require.NotEmpty(t, code)
	return code
}

func fetchKeySet(t *testing.T, ctx *testContext) jwk.Set {
	response := ctx.newBrowser(t).get(t, ctx.server.URL+oauth.JWKSPath)
	require.Equal(t, http.StatusOK, response.StatusCode)
	data, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	keySet, err := jwk.Parse(data)
	require.NoError(t, err)
	return keySet
}

func assertOAuthError(t *testing.T, response *http.Response, expected oauth.ErrorCode) {
	t.Helper()
	var body oauth.OAuth2Error
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	assert.Equal(t, expected, body.Code)
}
