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
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/wallet-authz/auth/authz"
	"github.com/nuts-foundation/wallet-authz/auth/clients"
	"github.com/nuts-foundation/wallet-authz/auth/correlation"
	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/auth/oid4vp"
	"github.com/nuts-foundation/wallet-authz/auth/session"
	"github.com/nuts-foundation/wallet-authz/auth/users"
	"github.com/nuts-foundation/wallet-authz/auth/verifier"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/crypto"
	"github.com/nuts-foundation/wallet-authz/storage"
)

var _ AuthorizationServer = (*Auth)(nil)
var _ core.Runnable = (*Auth)(nil)
var _ core.Diagnosable = (*Auth)(nil)

// Auth is the main struct of the Auth service
type Auth struct {
	config          Config
	storageEngine   storage.Engine
	publicURL       *url.URL
	clients         clients.Repository
	registered      int
	signer          crypto.JWTSigner
	sessions        *session.Manager
	evaluator       authz.Evaluator
	tokenIssuer     authz.TokenIssuer
	entryPoint      oid4vp.EntryPoint
	callbackHandler oid4vp.CallbackHandler
	pruner          *authz.Pruner
}

// NewAuthInstance accepts a Config and the storage engine, and returns an instance of Auth
func NewAuthInstance(config Config, storageEngine storage.Engine) *Auth {
	return &Auth{
		config:        config,
		storageEngine: storageEngine,
	}
}

// Name returns the name of the module.
func (auth *Auth) Name() string {
	return ModuleName
}

// Config returns the actual config of the module.
func (auth *Auth) Config() interface{} {
	return &auth.config
}

// PublicURL returns the public URL of the server.
func (auth *Auth) PublicURL() *url.URL {
	return auth.publicURL
}

func (auth *Auth) SessionMiddleware() echo.MiddlewareFunc {
	return auth.sessions.Handle
}

func (auth *Auth) Evaluator() authz.Evaluator {
	return auth.evaluator
}

func (auth *Auth) TokenIssuer() authz.TokenIssuer {
	return auth.tokenIssuer
}

func (auth *Auth) EntryPoint() oid4vp.EntryPoint {
	return auth.entryPoint
}

func (auth *Auth) CallbackHandler() oid4vp.CallbackHandler {
	return auth.callbackHandler
}

func (auth *Auth) Clients() clients.Repository {
	return auth.clients
}

func (auth *Auth) Signer() crypto.JWTSigner {
	return auth.signer
}

// Configure loads the client and user definitions into the database and wires the authorization server.
func (auth *Auth) Configure(config core.ServerConfig) error {
	if err := auth.config.validate(); err != nil {
		return err
	}
	if err := auth.config.Claims.Validate(); err != nil {
		return fmt.Errorf("invalid auth.claims: %w", err)
	}
	var err error
	auth.publicURL, err = config.ServerURL()
	if err != nil {
		return err
	}
	if auth.signer, err = auth.loadSigner(config); err != nil {
		return err
	}
	verifierClient, err := verifier.NewHTTPClient(auth.config.Verifier.URL, config.Strictmode, auth.config.Verifier.Timeout)
	if err != nil {
		return err
	}

	db := auth.storageEngine.GetSQLDatabase()
	clientRepository := clients.NewSQLRepository(db)
	userRepository := users.NewSQLRepository(db)
	if err = auth.seed(config.Strictmode, clientRepository, userRepository); err != nil {
		return err
	}
	auth.clients = clients.NewCachedRepository(clientRepository, auth.storageEngine.GetCache(), auth.config.ClientCacheTTL)

	authzMetrics := authz.NewMetrics()
	walletMetrics := oid4vp.NewMetrics()
	if err = errors.Join(authzMetrics.Register(), walletMetrics.Register()); err != nil {
		return fmt.Errorf("unable to register metrics: %w", err)
	}

	sessionDatabase := auth.storageEngine.GetSessionDatabase()
	authorizations := authz.NewSQLStore(db)
	correlations := correlation.NewSessionStore(sessionDatabase, auth.config.FlowTimeout)
	auth.sessions = session.NewManager(sessionDatabase, auth.config.SessionTimeout, auth.publicURL.Scheme == "https")
	auth.evaluator = authz.Evaluator{
		Clients: auth.clients,
		Store:   authorizations,
		Metrics: authzMetrics,
	}
	auth.tokenIssuer = authz.TokenIssuer{
		Clients: auth.clients,
		Store:   authorizations,
		Signer:  auth.signer,
		Issuer:  auth.publicURL.String(),
		Metrics: authzMetrics,
	}
	auth.entryPoint = oid4vp.EntryPoint{
		PublicURL:    auth.publicURL,
		Sessions:     auth.sessions,
		Verifier:     verifierClient,
		Correlations: correlations,
	}
	failure := oid4vp.FailureHandler{
		Correlations: correlations,
		Metrics:      walletMetrics,
	}
	auth.callbackHandler = oid4vp.CallbackHandler{
		Sessions: auth.sessions,
		Authenticators: []oid4vp.Authenticator{
			oid4vp.WalletAuthenticator{
				Correlations: correlations,
				Verifier:     verifierClient,
				Users:        userRepository,
				Claims:       auth.config.Claims,
			},
		},
		Success: oid4vp.SuccessHandler{
			Sessions:     auth.sessions,
			Correlations: correlations,
			Failure:      failure,
			Metrics:      walletMetrics,
		},
		Failure: failure,
	}
	auth.pruner = &authz.Pruner{
		Store:    authorizations,
		Interval: auth.config.PruneInterval,
	}
	return nil
}

func (auth *Auth) loadSigner(config core.ServerConfig) (crypto.JWTSigner, error) {
	if auth.config.SigningKeyFile != "" {
		key, err := crypto.LoadSigningKey(auth.config.SigningKeyFile)
		if err != nil {
			return nil, err
		}
		return crypto.NewECDSASigner(key)
	}
	if config.Strictmode {
		return nil, errors.New("auth.signingkeyfile must be configured in strict mode")
	}
	file := path.Join(config.Datadir, signingKeyFileName)
	key, created, err := crypto.LoadOrCreateSigningKey(file)
	if err != nil {
		return nil, err
	}
	if created {
		log.Logger().Warnf("Generated access token signing key (file=%s), configure auth.signingkeyfile for production use", file)
	}
	return crypto.NewECDSASigner(key)
}

// seed registers the clients and users of the definitions file.
func (auth *Auth) seed(strictmode bool, clientRepository clients.Repository, userRepository users.Repository) error {
	registeredClients, err := clients.LoadDefinitions(auth.config.DefinitionsFile, strictmode)
	if err != nil {
		return err
	}
	principals, err := users.LoadDefinitions(auth.config.DefinitionsFile)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err = clients.Seed(ctx, clientRepository, registeredClients); err != nil {
		return err
	}
	if err = users.Seed(ctx, userRepository, principals); err != nil {
		return err
	}
	auth.registered = len(registeredClients)
	return nil
}

// Start starts pruning expired authorizations.
func (auth *Auth) Start() error {
	auth.pruner.Start()
	return nil
}

// Shutdown stops the Auth engine
func (auth *Auth) Shutdown() error {
	if auth.pruner != nil {
		auth.pruner.Stop()
	}
	return nil
}

func (auth *Auth) Diagnostics() []core.DiagnosticResult {
	result := []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "registered_clients", Outcome: auth.registered},
	}
	if auth.signer != nil {
		result = append(result, &core.GenericDiagnosticResult{Title: "signing_key_id", Outcome: auth.signer.KeyID()})
	}
	return result
}
