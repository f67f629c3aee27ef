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
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/wallet-authz/auth/authz"
	"github.com/nuts-foundation/wallet-authz/auth/clients"
	"github.com/nuts-foundation/wallet-authz/auth/oid4vp"
	"github.com/nuts-foundation/wallet-authz/crypto"
)

// AuthorizationServer is the interface the HTTP API uses to serve the OAuth2 and wallet endpoints.
type AuthorizationServer interface {
	// PublicURL returns the public URL of the server, which is also its issuer identifier.
	PublicURL() *url.URL
	// SessionMiddleware returns the middleware that loads or creates the browser session.
	SessionMiddleware() echo.MiddlewareFunc
	// Evaluator returns the authorization request evaluator.
	Evaluator() authz.Evaluator
	// TokenIssuer returns the token endpoint logic.
	TokenIssuer() authz.TokenIssuer
	// EntryPoint returns the wallet authentication entry point.
	EntryPoint() oid4vp.EntryPoint
	// CallbackHandler returns the handler of the wallet callback.
	CallbackHandler() oid4vp.CallbackHandler
	// Clients returns the registered clients.
	Clients() clients.Repository
	// Signer returns the access token signer.
	Signer() crypto.JWTSigner
}
