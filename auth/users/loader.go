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

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/core"
	"gopkg.in/yaml.v3"
)

// Definition is a user in the definitions file.
type Definition struct {
	Hash             string `yaml:"hash"`
	Role             string `yaml:"role"`
	GivenName        string `yaml:"given_name"`
	FamilyName       string `yaml:"family_name"`
	Issuer           string `yaml:"issuer"`
	IssuingAuthority string `yaml:"issuing_authority"`
}

type definitionsFile struct {
	Users []Definition `yaml:"users"`
}

// LoadDefinitions reads the users from the 'users' section of the given YAML file.
func LoadDefinitions(file string) ([]Principal, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read definitions file: %w", err)
	}
	var definitions definitionsFile
	if err = yaml.Unmarshal(data, &definitions); err != nil {
		return nil, fmt.Errorf("unable to parse definitions file (file=%s): %w", file, err)
	}
	result := make([]Principal, 0, len(definitions.Users))
	seen := make(map[string]bool)
	for i, definition := range definitions.Users {
		if definition.Hash == "" {
			return nil, fmt.Errorf("invalid user definition #%d: %w", i+1, errors.New("hash is required"))
		}
		if seen[definition.Hash] {
			return nil, fmt.Errorf("invalid user definition #%d: duplicate hash", i+1)
		}
		seen[definition.Hash] = true
		principal := Principal(definition)
		if principal.Role == "" {
			principal.Role = DefaultRole
		}
		result = append(result, principal)
	}
	return result, nil
}

// Seed stores the given users in the repository.
func Seed(ctx context.Context, repository Repository, principals []Principal) error {
	for _, principal := range principals {
		if err := repository.Save(ctx, principal); err != nil {
			return fmt.Errorf("unable to register user (hash=%s): %w", core.TruncateID(principal.Hash), err)
		}
	}
	log.Logger().Infof("Registered %d user(s)", len(principals))
	return nil
}
