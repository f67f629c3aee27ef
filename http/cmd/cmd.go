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

package cmd

import (
	"fmt"

	"github.com/nuts-foundation/wallet-authz/http"
	"github.com/spf13/pflag"
)

// FlagSet defines the set of flags that sets the engine configuration
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("http", pflag.ContinueOnError)

	defs := http.DefaultConfig()
	flags.String("http.address", defs.Address, "Address and port the server will be listening to.")
	flags.String("http.log", string(defs.Log), fmt.Sprintf("What to log about HTTP requests. Options are '%s', '%s' (log request method, URI, IP and response code), and '%s' (log the request and response body, in addition to the metadata).", http.LogNothingLevel, http.LogMetadataLevel, http.LogMetadataAndBodyLevel))
	flags.StringSlice("http.cors.origin", defs.CORS.Origin, "When set, enables CORS for the given origins. A wildcard origin is not allowed in strict mode.")
	flags.Float64("http.ratelimit.login", defs.RateLimit.Login, "Maximum number of wallet login requests (authorization endpoint and wallet callback) per second. These endpoints call the verifier. Set to 0 to disable.")
	flags.Float64("http.ratelimit.loginpercaller", defs.RateLimit.LoginPerCaller, "Maximum number of wallet login requests per second per caller (IP address). Set to 0 to only apply http.ratelimit.login.")

	return flags
}
