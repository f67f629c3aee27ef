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

package clients

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/auth/oauth"
	"github.com/nuts-foundation/wallet-authz/core"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAuthorizationCodeTTL is the lifetime of authorization codes if not set for the client.
	DefaultAuthorizationCodeTTL = time.Minute
	// DefaultAccessTokenTTL is the lifetime of access tokens if not set for the client.
	DefaultAccessTokenTTL = 5 * time.Minute
	// maxAuthorizationCodeTTL is the maximum lifetime of an authorization code recommended by RFC6749, section 4.1.2.
	maxAuthorizationCodeTTL = 10 * time.Minute
)

// Definition is a client registration in the definitions file.
type Definition struct {
	ID           string        `yaml:"id"`
	SecretHash   string        `yaml:"secret_hash"`
	GrantTypes   []string      `yaml:"grant_types"`
	Scopes       []string      `yaml:"scopes"`
	RedirectURIs []string      `yaml:"redirect_uris"`
	CodeTTL      time.Duration `yaml:"code_ttl"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

type definitionsFile struct {
	Clients []Definition `yaml:"clients"`
}

// LoadDefinitions reads the client registrations from the 'clients' section of the given YAML file.
// In strict mode, redirect URIs must use https.
func LoadDefinitions(file string, strictmode bool) ([]RegisteredClient, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read definitions file: %w", err)
	}
	var definitions definitionsFile
	if err = yaml.Unmarshal(data, &definitions); err != nil {
		return nil, fmt.Errorf("unable to parse definitions file (file=%s): %w", file, err)
	}
	result := make([]RegisteredClient, 0, len(definitions.Clients))
	seen := make(map[string]bool)
	for i, definition := range definitions.Clients {
		client, err := definition.toClient(strictmode)
		if err != nil {
			return nil, fmt.Errorf("invalid client definition #%d: %w", i+1, err)
		}
		if seen[client.ID] {
			return nil, fmt.Errorf("invalid client definition #%d: duplicate client ID: %s", i+1, client.ID)
		}
		seen[client.ID] = true
		result = append(result, *client)
	}
	return result, nil
}

func (d Definition) toClient(strictmode bool) (*RegisteredClient, error) {
	if d.ID == "" {
		return nil, errors.New("id is required")
	}
	if d.SecretHash != "" {
		if _, err := bcrypt.Cost([]byte(d.SecretHash)); err != nil {
			return nil, fmt.Errorf("secret_hash is not a bcrypt hash: %w", err)
		}
	}
	grantTypes := d.GrantTypes
	if len(grantTypes) == 0 {
		grantTypes = []string{oauth.AuthorizationCodeGrantType}
	}
	for _, grantType := range grantTypes {
		if grantType != oauth.AuthorizationCodeGrantType {
			return nil, fmt.Errorf("unsupported grant type: %s", grantType)
		}
	}
	if len(d.RedirectURIs) == 0 {
		return nil, errors.New("at least one redirect_uri is required")
	}
	for _, redirectURI := range d.RedirectURIs {
		if err := validateRedirectURI(redirectURI, strictmode); err != nil {
			return nil, fmt.Errorf("invalid redirect_uri '%s': %w", redirectURI, err)
		}
	}
	result := &RegisteredClient{
		ID:                   d.ID,
		SecretHash:           d.SecretHash,
		GrantTypes:           grantTypes,
		Scopes:               d.Scopes,
		RedirectURIs:         d.RedirectURIs,
		AuthorizationCodeTTL: d.CodeTTL,
		AccessTokenTTL:       d.TokenTTL,
	}
	if result.Scopes == nil {
		result.Scopes = []string{}
	}
	if result.AuthorizationCodeTTL == 0 {
		result.AuthorizationCodeTTL = DefaultAuthorizationCodeTTL
	}
	if result.AccessTokenTTL == 0 {
		result.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if result.AuthorizationCodeTTL < time.Second || result.AuthorizationCodeTTL > maxAuthorizationCodeTTL {
		return nil, fmt.Errorf("code_ttl must be between 1s and %s", maxAuthorizationCodeTTL)
	}
	if result.AccessTokenTTL < time.Second {
		return nil, errors.New("token_ttl must be at least 1s")
	}
	return result, nil
}

// validateRedirectURI checks the redirect URI is absolute and has no fragment (RFC6749, section 3.1.2).
func validateRedirectURI(redirectURI string, strictmode bool) error {
	parsed, err := url.Parse(redirectURI)
	if err != nil {
		return err
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return errors.New("must be an absolute URL")
	}
	if parsed.Fragment != "" {
		return errors.New("must not contain a fragment")
	}
	if strictmode && parsed.Scheme != "https" {
		return errors.New("scheme must be https")
	}
	return nil
}

// Seed registers the given clients in the repository, replacing existing registrations with the same ID.
func Seed(ctx context.Context, repository Repository, clients []RegisteredClient) error {
	for _, client := range clients {
		if err := repository.Save(ctx, client); err != nil {
			return fmt.Errorf("unable to register client (id=%s): %w", client.ID, err)
		}
		log.Logger().
			WithField(core.LogFieldClientID, client.ID).
			Debugf("Registered client (public=%v, scopes=%v)", client.IsPublic(), client.Scopes)
	}
	log.Logger().Infof("Registered %d client(s)", len(clients))
	return nil
}
