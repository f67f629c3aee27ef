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
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/nuts-foundation/wallet-authz/auth/users"
)

// ErrMissingIdentityHash is returned when the verified claims contain no identity hash.
var ErrMissingIdentityHash = errors.New("presentation claims contain no identity hash")

// ClaimMapping holds the JSONPath expressions that select the user's attributes from the verified presentation claims.
type ClaimMapping struct {
	Hash             string `koanf:"hash"`
	GivenName        string `koanf:"givenname"`
	FamilyName       string `koanf:"familyname"`
	IssuingCountry   string `koanf:"issuingcountry"`
	IssuingAuthority string `koanf:"issuingauthority"`
}

// DefaultClaimMapping returns the mapping for verifiers that return the attributes as top-level claims.
func DefaultClaimMapping() ClaimMapping {
	return ClaimMapping{
		Hash:             "$.identity_hash",
		GivenName:        "$.given_name",
		FamilyName:       "$.family_name",
		IssuingCountry:   "$.issuing_country",
		IssuingAuthority: "$.issuing_authority",
	}
}

// Validate checks the expressions are valid JSONPath. Only the identity hash is required.
func (m ClaimMapping) Validate() error {
	if m.Hash == "" {
		return errors.New("claim mapping for identity hash is required")
	}
	for name, expression := range m.expressions() {
		if expression == "" {
			continue
		}
		if _, err := jsonpath.New(expression); err != nil {
			return fmt.Errorf("invalid JSONPath for claim %s: %w", name, err)
		}
	}
	return nil
}

func (m ClaimMapping) expressions() map[string]string {
	return map[string]string{
		"hash":             m.Hash,
		"givenname":        m.GivenName,
		"familyname":       m.FamilyName,
		"issuingcountry":   m.IssuingCountry,
		"issuingauthority": m.IssuingAuthority,
	}
}

// Extract selects the user's attributes from the verified claims.
// The returned principal has no role, since that's only known locally.
func (m ClaimMapping) Extract(claims map[string]interface{}) (users.Principal, error) {
	var result users.Principal
	var err error
	if result.Hash, err = selectString(m.Hash, claims); err != nil {
		return result, err
	}
	if result.Hash == "" {
		return result, ErrMissingIdentityHash
	}
	for target, expression := range map[*string]string{
		&result.GivenName:        m.GivenName,
		&result.FamilyName:       m.FamilyName,
		&result.Issuer:           m.IssuingCountry,
		&result.IssuingAuthority: m.IssuingAuthority,
	} {
		if *target, err = selectString(expression, claims); err != nil {
			return result, err
		}
	}
	return result, nil
}

// selectString returns the string at the JSONPath expression, or an empty string if the path does not exist.
func selectString(expression string, claims map[string]interface{}) (string, error) {
	if expression == "" {
		return "", nil
	}
	value, err := jsonpath.Get(expression, map[string]interface{}(claims))
	// jsonpath.Get returns some errors if the path is not found, or it has a different type as expected
	if err != nil && (strings.HasPrefix(err.Error(), "unknown key") || strings.HasPrefix(err.Error(), "unsupported value type")) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("unable to select claim (path=%s): %w", expression, err)
	}
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("claim is not a string (path=%s)", expression)
	}
}
