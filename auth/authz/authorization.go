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
	"encoding/base64"
	"errors"
	"time"

	"github.com/minio/sha256-simd"
	"github.com/nuts-foundation/wallet-authz/auth/users"
)

// ErrCodeNotRedeemable is returned when an authorization code is unknown, expired or already consumed.
var ErrCodeNotRedeemable = errors.New("authorization code is invalid, expired or already used")

// Authorization is the grant a user gave a client, created when an authorization code is issued.
// The code itself is not stored, only its hash.
type Authorization struct {
	ID            string
	ClientID      string
	PrincipalHash string
	Scopes        []string
	GrantType     string
	CodeHash      string
	IssuedAt      time.Time
	ExpiresAt     time.Time
	// ConsumedAt is set when the code was exchanged at the token endpoint.
	ConsumedAt *time.Time
	Attributes Attributes
}

// Attributes holds the original authorization request and the principal it was issued to.
type Attributes struct {
	// RequestedRedirectURI is the redirect_uri parameter of the request, empty if it was omitted.
	RequestedRedirectURI string `json:"requested_redirect_uri,omitempty"`
	// RedirectURI is the redirect URI the code was sent to.
	RedirectURI         string          `json:"redirect_uri"`
	State               string          `json:"state,omitempty"`
	CodeChallenge       string          `json:"code_challenge"`
	CodeChallengeMethod string          `json:"code_challenge_method"`
	Principal           users.Principal `json:"principal"`
}

// HashCode returns the hash of the authorization code as stored: base64url encoded SHA-256.
func HashCode(code string) string {
	digest := sha256.Sum256([]byte(code))
	return base64.RawURLEncoding.EncodeToString(digest[:])
}
