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
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/wallet-authz/auth/correlation"
	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/auth/users"
	"github.com/nuts-foundation/wallet-authz/core"
)

// ErrorPath is the generic error page users are redirected to when wallet authentication fails.
const ErrorPath = "/error"

// CallbackHandler handles the callback of the wallet: it authenticates the user and resumes the authorization request.
type CallbackHandler struct {
	Sessions       SessionManager
	Authenticators []Authenticator
	Success        SuccessHandler
	Failure        FailureHandler
}

// Handle handles the callback request.
func (c CallbackHandler) Handle(echoCtx echo.Context) error {
	sessionID, err := c.Sessions.CurrentID(echoCtx)
	if err != nil {
		return c.Failure.Handle(echoCtx, "", Failure(ReasonUnrecognizedPresentation, err))
	}
	request := Request{
		SessionID:      sessionID,
		Nonce:          echoCtx.QueryParam("nonce"),
		PresentationID: echoCtx.QueryParam("presentation_id"),
		ResponseCode:   echoCtx.QueryParam("response_code"),
	}
	outcome := Authenticate(echoCtx.Request().Context(), c.Authenticators, request)
	if outcome.Kind != OutcomeSuccess {
		return c.Failure.Handle(echoCtx, sessionID, outcome)
	}
	return c.Success.Handle(echoCtx, sessionID, *outcome.Principal)
}

// SuccessHandler resumes the interrupted authorization request, now with an authenticated session.
type SuccessHandler struct {
	Sessions     SessionManager
	Correlations correlation.Store
	Failure      FailureHandler
	Metrics      *Metrics
}

// Handle takes the return URL of the session, authenticates the session and redirects the browser to the return URL.
// A success without return URL is a protocol violation, which is handled as failure.
func (s SuccessHandler) Handle(echoCtx echo.Context, sessionID string, principal users.Principal) error {
	returnURL, err := s.Correlations.TakeReturnURL(sessionID)
	if errors.Is(err, correlation.ErrNoCorrelation) {
		return s.Failure.Handle(echoCtx, sessionID, Failure(ReasonMissingCorrelation, err))
	} else if err != nil {
		return s.Failure.Handle(echoCtx, sessionID, Failure(ReasonInternalError, err))
	}
	if err = s.Sessions.Rotate(echoCtx, principal); err != nil {
		return s.Failure.Handle(echoCtx, sessionID, Failure(ReasonInternalError, err))
	}
	log.Logger().
		WithField(core.LogFieldSessionID, core.TruncateID(sessionID)).
		Infof("Wallet authentication succeeded (user=%s, role=%s)", core.TruncateID(principal.Hash), principal.Role)
	if s.Metrics != nil {
		s.Metrics.succeeded()
	}
	return echoCtx.Redirect(http.StatusFound, returnURL)
}

// FailureHandler ends a failed wallet authentication: the session's correlation is discarded, so the user has to start over.
// The user is redirected to a generic error page, which does not reveal why authentication failed.
type FailureHandler struct {
	Correlations correlation.Store
	Metrics      *Metrics
}

// Handle logs and counts the failure, and redirects the browser to the error page.
func (f FailureHandler) Handle(echoCtx echo.Context, sessionID string, outcome Outcome) error {
	logger := log.Logger().
		WithField(core.LogFieldSessionID, core.TruncateID(sessionID)).
		WithField(core.LogFieldAuthenticationReason, outcome.Reason)
	if outcome.Err != nil {
		logger = logger.WithError(outcome.Err)
	}
	if outcome.Reason == ReasonInternalError || outcome.Reason == ReasonVerifierUnavailable {
		logger.Error("Wallet authentication failed")
	} else {
		logger.Warn("Wallet authentication failed")
	}
	if sessionID != "" {
		if err := f.Correlations.Discard(sessionID); err != nil {
			logger.WithError(err).Error("Failed to discard wallet authentication correlation")
		}
	}
	if f.Metrics != nil {
		f.Metrics.failed(outcome.Reason)
	}
	return echoCtx.Redirect(http.StatusFound, ErrorPath)
}
