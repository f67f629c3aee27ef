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

package core

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldStore is the log field key for the name of a store managed by the storage module.
	LogFieldStore = "store"

	// LogFieldClientID is the log field key for the OAuth2 client ID of an authorization request.
	LogFieldClientID = "clientID"
	// LogFieldSessionID is the log field key for a (truncated) browser session ID.
	LogFieldSessionID = "sessionID"
	// LogFieldPresentationID is the log field key for the ID of a presentation transaction at the verifier.
	LogFieldPresentationID = "presentationID"
	// LogFieldAuthenticationReason is the log field key for the reason a wallet authentication failed.
	LogFieldAuthenticationReason = "reason"
	// LogFieldAuthorizationID is the log field key for the ID of an authorization record.
	LogFieldAuthorizationID = "authorizationID"
)

// TruncateID returns the first characters of a secret identifier (e.g. a session ID), so it can be logged.
func TruncateID(id string) string {
	const visible = 6
	if len(id) <= visible {
		return id
	}
	return id[:visible] + "..."
}
