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

package users

import "errors"

// ErrPrincipalNotFound is returned when no local user exists for an identity hash.
var ErrPrincipalNotFound = errors.New("principal not found")

// DefaultRole is assigned to users that have no role in the definitions file.
const DefaultRole = "user"

// Principal is a local user, identified by the identity hash the verifier returns for the user's wallet credential.
type Principal struct {
	Hash             string `json:"hash"`
	Role             string `json:"role"`
	GivenName        string `json:"given_name,omitempty"`
	FamilyName       string `json:"family_name,omitempty"`
	Issuer           string `json:"issuer,omitempty"`
	IssuingAuthority string `json:"issuing_authority,omitempty"`
}

// WithClaims returns a copy of the principal with the non-empty values of the given presentation claims applied.
// The identity hash and role are never overwritten.
func (p Principal) WithClaims(claims Principal) Principal {
	for target, value := range map[*string]string{
		&p.GivenName:        claims.GivenName,
		&p.FamilyName:       claims.FamilyName,
		&p.Issuer:           claims.Issuer,
		&p.IssuingAuthority: claims.IssuingAuthority,
	} {
		if value != "" {
			*target = value
		}
	}
	return p
}
