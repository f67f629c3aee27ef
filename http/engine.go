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

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/http/log"
	"golang.org/x/time/rate"
)

const moduleName = "HTTP"

// shutdownTimeout is the time in-flight requests get to finish when the engine shuts down.
const shutdownTimeout = 10 * time.Second

// rateLimitedPaths are the router paths (per method) that are subject to http.ratelimit.login:
// the endpoints of a wallet login, which call the verifier.
var rateLimitedPaths = map[string][]string{
	http.MethodGet: {
		"/oauth2/authorize",
		"/oid4vp/callback",
	},
	http.MethodPost: {
		"/oauth2/authorize",
	},
}

// requestsPerLogin is the number of rate limited requests a browser makes for a single wallet login:
// the authorization request, the wallet callback and the resumed authorization request.
const requestsPerLogin = 3

// New returns a new HTTP engine. The callback is called when the HTTP interface shuts down unexpectedly.
func New(serverShutdownCb func()) *Engine {
	return &Engine{
		serverShutdownCb: serverShutdownCb,
		config:           DefaultConfig(),
	}
}

// Engine is the HTTP engine.
type Engine struct {
	server           *echo.Echo
	serverShutdownCb func()
	config           Config
}

// Router returns the router of the HTTP engine, which can be used by other engines to register HTTP handlers.
func (h Engine) Router() core.EchoRouter {
	return h.server
}

// Configure loads the configuration for the HTTP engine.
func (h *Engine) Configure(serverConfig core.ServerConfig) error {
	switch h.config.Log {
	case LogNothingLevel, LogMetadataLevel, LogMetadataAndBodyLevel:
	default:
		return fmt.Errorf("invalid http.log value: %s", h.config.Log)
	}
	if h.config.RateLimit.Login < 0 || h.config.RateLimit.LoginPerCaller < 0 {
		return errors.New("http.ratelimit.login and http.ratelimit.loginpercaller must not be negative")
	}
	h.server = h.createEchoServer()
	log.Logger().Infof("Binding / -> %s", h.config.Address)
	return h.applyMiddleware(h.server, serverConfig)
}

func (h *Engine) createEchoServer() *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	// ErrorHandler
	echoServer.HTTPErrorHandler = core.CreateHTTPErrorHandler()

	// Reverse proxies must set the X-Forwarded-For header to the original client IP.
	echoServer.IPExtractor = echo.ExtractIPFromXFFHeader()
	return echoServer
}

// Name returns the name of the engine.
func (h *Engine) Name() string {
	return moduleName
}

// Config returns the configuration of the HTTP engine.
func (h *Engine) Config() interface{} {
	return &h.config
}

// Start starts the HTTP engine.
func (h *Engine) Start() error {
	go func(server *echo.Echo, address string, cancel func()) {
		if err := server.Start(address); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				log.Logger().
					WithError(err).
					Error("HTTP server stopped due to error")
			}
		}
		if cancel != nil {
			cancel()
		}
	}(h.server, h.config.Address, h.serverShutdownCb)
	return nil
}

// Shutdown shuts down the HTTP engine, waiting for in-flight requests to finish.
func (h *Engine) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.server.Shutdown(ctx)
}

// matchesPath checks whether the request URI path hierarchically matches the given path.
// Examples:
// / matches /
// /foo matches /
// /foo/ matches /
// /foo/bla matches /
// /foo/bla does not match /bla
func matchesPath(requestURI string, path string) bool {
	if path == "/" {
		return true
	}
	if !strings.HasSuffix(requestURI, "/") {
		requestURI += "/"
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return requestURI == path || strings.HasPrefix(requestURI, path)
}

func (h Engine) applyMiddleware(echoServer core.EchoRouter, serverConfig core.ServerConfig) error {
	// Logging
	loggerSkipper := func(c echo.Context) bool {
		// Skip logging for calls to /metrics and /status
		for _, excludePath := range []string{"/metrics", "/status"} {
			if matchesPath(c.Request().URL.Path, excludePath) {
				return true
			}
		}
		return false
	}
	if h.config.Log != LogNothingLevel {
		// Log when level is set to LogMetadataLevel or LogMetadataAndBodyLevel
		echoServer.Use(requestLoggerMiddleware(loggerSkipper, log.Logger()))
	}
	if h.config.Log == LogMetadataAndBodyLevel {
		echoServer.Use(bodyLoggerMiddleware(loggerSkipper, log.Logger()))
	}

	// CORS
	if h.config.CORS.Enabled() {
		log.Logger().Infof("Enabling CORS for HTTP interface: %s", h.config.Address)
		if serverConfig.Strictmode {
			for _, origin := range h.config.CORS.Origin {
				if strings.TrimSpace(origin) == "*" {
					return errors.New("wildcard CORS origin is not allowed in strict mode")
				}
			}
		}
		echoServer.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: h.config.CORS.Origin}))
	}

	// Rate limiting
	if h.config.RateLimit.Login > 0 {
		perCaller := rate.Limit(h.config.RateLimit.LoginPerCaller)
		if perCaller == 0 {
			perCaller = rate.Inf
		}
		store := newRateLimiterStore(rate.Limit(h.config.RateLimit.Login), perCaller, requestsPerLogin)
		echoServer.Use(newRateLimiter(rateLimitedPaths, store))
	}
	return nil
}
