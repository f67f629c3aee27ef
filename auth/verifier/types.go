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

package verifier

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the verifier could not be reached or did not respond in time.
var ErrUnavailable = errors.New("verifier unavailable")

// ErrInvalidResponse is returned when the verifier responded with an unexpected status code or a malformed body.
var ErrInvalidResponse = errors.New("invalid verifier response")

// Status is the state of a presentation transaction at the verifier.
type Status string

const (
	// StatusPending means the wallet did not yet respond.
	StatusPending Status = "pending"
	// StatusVerified means the wallet presented credentials, which were successfully verified.
	StatusVerified Status = "verified"
	// StatusExpired means the transaction timed out before the wallet responded.
	StatusExpired Status = "expired"
	// StatusDeclined means the user declined to present credentials.
	StatusDeclined Status = "declined"
	// StatusFailed means the presentation could not be verified.
	StatusFailed Status = "failed"
)

// Transaction is a presentation transaction created at the verifier.
type Transaction struct {
	// WalletURL is where the browser should be redirected to, to start the presentation.
	WalletURL      string `json:"redirect_uri"`
	Nonce          string `json:"nonce"`
	PresentationID string `json:"presentation_id"`
}

// Result is the outcome of a presentation transaction.
type Result struct {
	Status Status `json:"status"`
	// Reason is the verifier's explanation for a non-verified status.
	Reason string `json:"reason,omitempty"`
	// Claims holds the verified credential attributes.
	Claims map[string]interface{} `json:"claims,omitempty"`
}

// Verified returns true if the wallet's presentation was verified.
func (r Result) Verified() bool {
	return r.Status == StatusVerified
}

// Client is the client for the external verifier, which orchestrates presentations from the user's wallet.
type Client interface {
	// InitTransaction asks the verifier to start a presentation transaction for the given browser session.
	// The verifier redirects the browser to callbackURI when the wallet finished.
	InitTransaction(ctx context.Context, sessionID string, callbackURI string) (*Transaction, error)
	// FetchResult retrieves the result of the presentation transaction.
	// The responseCode is the optional code the wallet added to the callback.
	FetchResult(ctx context.Context, presentationID string, nonce string, responseCode string) (*Result, error)
}
