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
	"github.com/nuts-foundation/wallet-authz/auth/users"
)

// Reason describes why a wallet authentication failed.
// Reasons are distinguished in logs and metrics, but the user always sees the same error page.
type Reason string

const (
	// ReasonUnrecognizedPresentation means the callback does not match a presentation the session started.
	ReasonUnrecognizedPresentation Reason = "unrecognized_presentation"
	// ReasonVerifierUnavailable means the verifier could not be reached, or did not respond in time.
	ReasonVerifierUnavailable Reason = "verifier_unavailable"
	// ReasonPresentationRejected means the presentation expired, was declined or could not be verified.
	ReasonPresentationRejected Reason = "presentation_rejected"
	// ReasonPrincipalUnresolvable means the verified identity has no local user.
	ReasonPrincipalUnresolvable Reason = "principal_unresolvable"
	// ReasonMissingCorrelation means the authentication succeeded, but the session has no interrupted authorization request.
	ReasonMissingCorrelation Reason = "missing_correlation"
	// ReasonInternalError means the authentication could not be completed due to a technical error.
	ReasonInternalError Reason = "internal_error"
)

// OutcomeKind is the kind of result of an Authenticator.
type OutcomeKind int

const (
	// OutcomeNotApplicable means the Authenticator doesn't handle the request.
	OutcomeNotApplicable OutcomeKind = iota
	// OutcomeSuccess means the user authenticated.
	OutcomeSuccess
	// OutcomeFailure means the Authenticator handled the request, but the user did not authenticate.
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "not_applicable"
	}
}

// Outcome is the result of an Authenticator.
type Outcome struct {
	Kind OutcomeKind
	// Principal is the authenticated user, set on success.
	Principal *users.Principal
	// Reason is set on failure.
	Reason Reason
	// Err holds the cause of a failure, if any. It's only logged.
	Err error
}

// NotApplicable returns an Outcome indicating the Authenticator doesn't handle the request.
func NotApplicable() Outcome {
	return Outcome{Kind: OutcomeNotApplicable}
}

// Success returns an Outcome for the authenticated principal.
func Success(principal users.Principal) Outcome {
	return Outcome{Kind: OutcomeSuccess, Principal: &principal}
}

// Failure returns an Outcome for a failed authentication.
func Failure(reason Reason, err error) Outcome {
	return Outcome{Kind: OutcomeFailure, Reason: reason, Err: err}
}
