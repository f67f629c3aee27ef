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

package auth

import (
	"errors"
	"time"

	"github.com/nuts-foundation/wallet-authz/auth/correlation"
	"github.com/nuts-foundation/wallet-authz/auth/oid4vp"
	"github.com/nuts-foundation/wallet-authz/auth/verifier"
)

// Config holds all the configuration params
type Config struct {
	// DefinitionsFile is the YAML file containing the registered clients and users.
	DefinitionsFile string `koanf:"definitionsfile"`
	// FlowTimeout is how long a wallet authentication may take, from the redirect to the wallet until the callback.
	FlowTimeout time.Duration `koanf:"flowtimeout"`
	// SessionTimeout is the maximum lifetime of a browser session.
	SessionTimeout time.Duration `koanf:"sessiontimeout"`
	// PruneInterval is the interval at which expired authorizations are deleted.
	PruneInterval time.Duration `koanf:"pruneinterval"`
	// ClientCacheTTL is how long registered clients are cached.
	ClientCacheTTL time.Duration `koanf:"clientcachettl"`
	// SigningKeyFile is the PEM file containing the EC P-256 key access tokens are signed with.
	SigningKeyFile string              `koanf:"signingkeyfile"`
	Verifier       VerifierConfig      `koanf:"verifier"`
	Claims         oid4vp.ClaimMapping `koanf:"claims"`
}

// VerifierConfig holds the configuration of the verifier the wallet authentication is delegated to.
type VerifierConfig struct {
	// URL is the base URL of the verifier.
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// DefaultConfig returns an instance of Config with the default values.
func DefaultConfig() Config {
	return Config{
		FlowTimeout:    correlation.DefaultFlowTimeout,
		SessionTimeout: 30 * time.Minute,
		PruneInterval:  10 * time.Minute,
		ClientCacheTTL: time.Minute,
		Verifier: VerifierConfig{
			Timeout: verifier.DefaultTimeout,
		},
		Claims: oid4vp.DefaultClaimMapping(),
	}
}

func (c Config) validate() error {
	if c.DefinitionsFile == "" {
		return errors.New("auth.definitionsfile must be configured")
	}
	if c.Verifier.URL == "" {
		return errors.New("auth.verifier.url must be configured")
	}
	for key, value := range map[string]time.Duration{
		"auth.flowtimeout":      c.FlowTimeout,
		"auth.sessiontimeout":   c.SessionTimeout,
		"auth.pruneinterval":    c.PruneInterval,
		"auth.verifier.timeout": c.Verifier.Timeout,
	} {
		if value <= 0 {
			return errors.New(key + " must be positive")
		}
	}
	if c.SessionTimeout < c.FlowTimeout {
		return errors.New("auth.sessiontimeout must not be shorter than auth.flowtimeout")
	}
	if c.ClientCacheTTL < 0 {
		return errors.New("auth.clientcachettl must not be negative")
	}
	return nil
}
