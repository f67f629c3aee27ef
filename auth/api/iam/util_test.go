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
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/wallet-authz/auth"
	"github.com/nuts-foundation/wallet-authz/auth/oauth"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/storage"
	"github.com/nuts-foundation/wallet-authz/test/io"
	"github.com/stretchr/testify/require"
)

// codeVerifier is the PKCE code verifier from RFC7636, appendix B.
const codeVerifier = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r7wlgYWFG3WyHE"

const clientRedirectURI = "https://app1.example.com/cb"

type testContext struct {
	server   *httptest.Server
	verifier *verifierStub
	auth     *auth.Auth
	storage  storage.Engine
}

func newTestContext(t *testing.T) *testContext {
	verifier := newVerifierStub(t)
	router := echo.New()
	router.HTTPErrorHandler = core.CreateHTTPErrorHandler()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	storageEngine := storage.NewTestStorageEngine(t)
	config := auth.TestConfig(t)
	config.Verifier.URL = verifier.server.URL
	authInstance := auth.NewAuthInstance(config, storageEngine)
	serverConfig := core.TestServerConfig(core.ServerConfig{Datadir: io.TestDirectory(t), URL: server.URL})
	require.NoError(t, authInstance.Configure(serverConfig))
	New(authInstance).Routes(router)

	return &testContext{
		server:   server,
		verifier: verifier,
		auth:     authInstance,
		storage:  storageEngine,
	}
}

// newBrowser returns an HTTP client that keeps cookies, but doesn't follow redirects.
func (c *testContext) newBrowser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *testContext) authorizeURL(params url.Values) string {
	return c.server.URL + oauth.AuthorizationPath + "?" + params.Encode()
}

func (c *testContext) callbackURL(nonce string, presentationID string) string {
	return c.server.URL + "/oid4vp/callback?" + url.Values{"nonce": {nonce}, "presentation_id": {presentationID}}.Encode()
}

func (c *testContext) countAuthorizations(t *testing.T) int64 {
	var count int64
	require.NoError(t, c.storage.GetSQLDatabase().Table("oauth_authorization").Count(&count).Error)
	return count
}

type browser struct {
	client *http.Client
}

func (b *browser) get(t *testing.T, requestURL string) *http.Response {
	response, err := b.client.Get(requestURL)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (b *browser) cookies(rawURL string) []*http.Cookie {
	parsed, _ := url.Parse(rawURL)
	return b.client.Jar.Cookies(parsed)
}

func authorizationParams(state string) url.Values {
	return url.Values{
		oauth.ResponseTypeParam:        {oauth.CodeResponseType},
		oauth.ClientIDParam:            {"app1"},
		oauth.ScopeParam:               {"read"},
		oauth.RedirectURIParam:         {clientRedirectURI},
		oauth.StateParam:               {state},
		oauth.CodeChallengeParam:       {oauth.CreateS256Challenge(codeVerifier)},
		oauth.CodeChallengeMethodParam: {oauth.S256},
	}
}

// verifierStub is a verifier that accepts every presentation, unless status is changed.
type verifierStub struct {
	server     *httptest.Server
	mux        sync.Mutex
	sessionIDs []string
	status     string
	claims     map[string]interface{}
}

func newVerifierStub(t *testing.T) *verifierStub {
	result := &verifierStub{
		status: "verified",
		claims: map[string]interface{}{
			"identity_hash": auth.TestUserHash,
			"given_name":    "John",
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ui/presentations", result.initTransaction)
	mux.HandleFunc("GET /ui/presentations/{id}", result.fetchResult)
	result.server = httptest.NewServer(mux)
	t.Cleanup(result.server.Close)
	return result
}

func (v *verifierStub) initTransaction(writer http.ResponseWriter, request *http.Request) {
	var body map[string]string
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	v.mux.Lock()
	v.sessionIDs = append(v.sessionIDs, body["session_id"])
	n := len(v.sessionIDs)
	v.mux.Unlock()
	writeJSON(writer, map[string]string{
		"redirect_uri":    fmt.Sprintf("https://wallet.example.com/authorize?request_uri=%d", n),
		"nonce":           fmt.Sprintf("nonce-%d", n),
		"presentation_id": fmt.Sprintf("presentation-%d", n),
	})
}

func (v *verifierStub) fetchResult(writer http.ResponseWriter, request *http.Request) {
	if !strings.HasPrefix(request.PathValue("id"), "presentation-") || request.URL.Query().Get("nonce") == "" {
		writer.WriteHeader(http.StatusNotFound)
		return
	}
	v.mux.Lock()
	defer v.mux.Unlock()
	writeJSON(writer, map[string]interface{}{
		"status": v.status,
		"claims": v.claims,
	})
}

func (v *verifierStub) transactions() []string {
	v.mux.Lock()
	defer v.mux.Unlock()
	return append([]string{}, v.sessionIDs...)
}

func writeJSON(writer http.ResponseWriter, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(body)
}
