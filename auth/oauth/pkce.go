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

package oauth

import (
	"crypto/subtle"
	"encoding/base64"
	"regexp"

	"github.com/minio/sha256-simd"
)

// S256 is the only supported PKCE code challenge method (RFC7636, section 4.2).
const S256 = "S256"

// codeVerifierPattern holds the syntax of a code verifier: 43 to 128 unreserved characters (RFC7636, section 4.1).
var codeVerifierPattern = regexp.MustCompile(`^[A-Za-z0-9\-._~]{43,128}$`)

// codeChallengePattern holds the syntax of an S256 code challenge: a base64url encoded (without padding) SHA-256 digest.
var codeChallengePattern = regexp.MustCompile(`^[A-Za-z0-9\-_]{43}$`)

// CreateS256Challenge derives the S256 code challenge from the given code verifier.
func CreateS256Challenge(verifier string) string {
	digest := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(digest[:])
}

// IsValidS256Challenge returns true if the given code challenge is syntactically a valid S256 challenge.
func IsValidS256Challenge(challenge string) bool {
	return codeChallengePattern.MatchString(challenge)
}

// VerifyPKCE checks the code verifier against the code challenge and method of the authorization request.
// Only the S256 method is supported, any other method fails verification.
func VerifyPKCE(challenge string, method string, verifier string) bool {
	if method != S256 || !codeVerifierPattern.MatchString(verifier) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(CreateS256Challenge(verifier)), []byte(challenge)) == 1
}
