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
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/nuts-foundation/wallet-authz/auth/correlation"
	"github.com/nuts-foundation/wallet-authz/auth/users"
	"github.com/nuts-foundation/wallet-authz/auth/verifier"
)

// Request holds the parameters of a wallet callback.
type Request struct {
	// SessionID is the browser session the callback arrived in.
	SessionID      string
	Nonce          string
	PresentationID string
	// ResponseCode is optionally added by the wallet, the verifier requires it to release the result.
	ResponseCode string
}

// Authenticator is a strategy that tries to authenticate the user of a callback.
// Authenticators are tried in order, the first applicable Authenticator decides the outcome.
type Authenticator interface {
	Authenticate(ctx context.Context, request Request) Outcome
}

// Authenticate runs the request through the authenticators, and returns the first outcome that is not NotApplicable.
// If no authenticator applies, the presentation is not recognized.
func Authenticate(ctx context.Context, authenticators []Authenticator, request Request) Outcome {
	for _, authenticator := range authenticators {
		outcome := authenticator.Authenticate(ctx, request)
		if outcome.Kind != OutcomeNotApplicable {
			return outcome
		}
	}
	return Failure(ReasonUnrecognizedPresentation, errors.New("no authenticator applies to the callback"))
}

var _ Authenticator = (*WalletAuthenticator)(nil)

// WalletAuthenticator authenticates the user with the result of the presentation transaction the session started at the verifier.
type WalletAuthenticator struct {
	Correlations correlation.Store
	Verifier     verifier.Client
	Users        users.Repository
	Claims       ClaimMapping
}

func (w WalletAuthenticator) Authenticate(ctx context.Context, request Request) Outcome {
	if request.Nonce == "" && request.PresentationID == "" {
		return NotApplicable()
	}
	// Always take the pending presentation, so a forged callback burns it.
	pending, err := w.Correlations.TakePresentation(request.SessionID)
	if errors.Is(err, correlation.ErrNoCorrelation) {
		return Failure(ReasonUnrecognizedPresentation, err)
	} else if err != nil {
		return Failure(ReasonInternalError, err)
	}
	if !equal(pending.Nonce, request.Nonce) || !equal(pending.PresentationID, request.PresentationID) {
		return Failure(ReasonUnrecognizedPresentation, errors.New("nonce or presentation ID does not match pending presentation"))
	}
	result, err := w.Verifier.FetchResult(ctx, pending.PresentationID, pending.Nonce, request.ResponseCode)
	if err != nil {
		return Failure(ReasonVerifierUnavailable, err)
	}
	if !result.Verified() {
		return Failure(ReasonPresentationRejected, fmt.Errorf("presentation status: %s (reason: %s)", result.Status, result.Reason))
	}
	claims, err := w.Claims.Extract(result.Claims)
	if err != nil {
		return Failure(ReasonPresentationRejected, err)
	}
	principal, err := w.Users.FindByHash(ctx, claims.Hash)
	if errors.Is(err, users.ErrPrincipalNotFound) {
		return Failure(ReasonPrincipalUnresolvable, err)
	} else if err != nil {
		return Failure(ReasonInternalError, err)
	}
	return Success(principal.WithClaims(claims))
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
