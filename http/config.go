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

// DefaultConfig returns the default configuration for the HTTP engine.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		Log:     LogMetadataLevel,
		RateLimit: RateLimitConfig{
			Login:          10,
			LoginPerCaller: 1,
		},
	}
}

// Config is the top-level config struct for the HTTP interface.
type Config struct {
	// Address holds the interface address the HTTP service must be bound to, in the format of `interface:port` (e.g. localhost:8080).
	Address string `koanf:"address"`
	// CORS holds the configuration for Cross Origin Resource Sharing.
	CORS CORSConfig `koanf:"cors"`
	// Log specifies what should be logged of HTTP requests.
	Log LogLevel `koanf:"log"`
	// RateLimit limits the request rate of public endpoints that call other services.
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

// LogLevel specifies what to log for incoming HTTP traffic.
type LogLevel string

const (
	// LogNothingLevel indicates nothing will be logged for incoming HTTP traffic.
	LogNothingLevel LogLevel = "nothing"
	// LogMetadataLevel indicates that only metadata (HTTP URI, method, response code, etc) will be logged for incoming HTTP traffic.
	LogMetadataLevel LogLevel = "metadata"
	// LogMetadataAndBodyLevel indicates that metadata and full request/reply bodies will be logged for incoming HTTP traffic.
	LogMetadataAndBodyLevel LogLevel = "metadata-and-body"
)

// CORSConfig contains configuration for Cross Origin Resource Sharing.
type CORSConfig struct {
	// Origin specifies the AllowOrigin option. If no origins are given CORS is considered to be disabled.
	Origin []string `koanf:"origin"`
}

// Enabled returns whether CORS is enabled according to this configuration.
func (cors CORSConfig) Enabled() bool {
	return len(cors.Origin) > 0
}

// RateLimitConfig contains the rate limits in requests per second. A limit of 0 disables rate limiting.
type RateLimitConfig struct {
	// Login is the rate limit of the wallet login endpoints (authorization endpoint and wallet callback),
	// which call the verifier.
	Login float64 `koanf:"login"`
	// LoginPerCaller is the rate limit of the wallet login endpoints per caller (IP address).
	LoginPerCaller float64 `koanf:"loginpercaller"`
}
