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

package oid4vp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/wallet-authz/auth/correlation"
	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/auth/oauth"
	"github.com/nuts-foundation/wallet-authz/auth/users"
	"github.com/nuts-foundation/wallet-authz/auth/verifier"
	"github.com/nuts-foundation/wallet-authz/core"
)

// CallbackPath is the path the verifier redirects the browser to, after the wallet finished.
const CallbackPath = "/oid4vp/callback"

// SessionManager resolves and rotates browser sessions.
type SessionManager interface {
	// CurrentID returns the browser session ID of the request.
	CurrentID(echoCtx echo.Context) (string, error)
	// Rotate replaces the browser session with a new, authenticated session.
	Rotate(echoCtx echo.Context, principal users.Principal) error
}

// EntryPoint starts wallet authentication for an authorization request that arrived without an authenticated user.
type EntryPoint struct {
	// PublicURL is the base URL this server is reachable on by browsers.
	PublicURL    *url.URL
	Sessions     SessionManager
	Verifier     verifier.Client
	Correlations correlation.Store
}

// Commence records where to resume after authentication, starts a presentation transaction at the verifier
// and redirects the browser to the wallet.
// Nothing is stored if the verifier can't be called.
func (e EntryPoint) Commence(echoCtx echo.Context) error {
	returnURL, err := e.returnURL(echoCtx.Request())
	if err != nil {
		return core.InvalidInputError("invalid authorization request: %w", err)
	}
	sessionID, err := e.Sessions.CurrentID(echoCtx)
	if err != nil {
		return core.InvalidInputError("unable to start wallet authentication: %w", err)
	}
	logger := log.Logger().WithField(core.LogFieldSessionID, core.TruncateID(sessionID))
	callbackURI := e.PublicURL.JoinPath(CallbackPath).String()
	transaction, err := e.Verifier.InitTransaction(echoCtx.Request().Context(), sessionID, callbackURI)
	if err != nil {
		// verifier URLs and responses are not returned to the browser
		logger.WithError(err).Warn("Unable to start presentation transaction at verifier")
		return core.Error(http.StatusBadGateway, "unable to start wallet authentication")
	}
	pending := correlation.PendingPresentation{
		Nonce:          transaction.Nonce,
		PresentationID: transaction.PresentationID,
	}
	if err = e.Correlations.Begin(sessionID, returnURL, pending); err != nil {
		return fmt.Errorf("unable to store wallet authentication correlation: %w", err)
	}
	logger.WithField(core.LogFieldPresentationID, transaction.PresentationID).
		Debug("Started wallet authentication")
	return echoCtx.Redirect(http.StatusFound, transaction.WalletURL)
}

// returnURL builds the URL of the authorization request, to be resumed after authentication.
// Parameters of a POST request are carried over as query parameters. Only the form body is used,
// since that's what the authorization endpoint reads for a POST.
func (e EntryPoint) returnURL(request *http.Request) (string, error) {
	result := e.PublicURL.JoinPath(oauth.AuthorizationPath)
	if request.Method == http.MethodPost {
		if err := request.ParseForm(); err != nil {
			return "", err
		}
		result.RawQuery = request.PostForm.Encode()
	} else {
		result.RawQuery = request.URL.RawQuery
	}
	return result.String(), nil
}
