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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURLPaths(t *testing.T) {
	assert.Equal(t, "", JoinURLPaths())
	assert.Equal(t, "http://foo/bar", JoinURLPaths("http://foo", "bar"))
	assert.Equal(t, "http://foo/bar", JoinURLPaths("http://foo/", "/bar"))
	assert.Equal(t, "http://foo/bar/", JoinURLPaths("http://foo", "", "bar/"))
}

func TestParsePublicURL(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		actual, err := ParsePublicURL("https://wallet.nuts.nl/path")

		require.NoError(t, err)
		assert.Equal(t, "wallet.nuts.nl", actual.Host)
	})
	t.Run("error", func(t *testing.T) {
		for input, expected := range map[string]string{
			"wallet.nuts.nl":          "URL missing scheme",
			"https://127.0.0.1":       "hostname is IP",
			"https://localhost:8080":  "hostname is reserved",
			"https://authz.test":      "hostname is reserved",
			"https://www.example.com": "hostname is reserved",
		} {
			_, err := ParsePublicURL(input)

			assert.EqualError(t, err, expected, input)
		}
	})
}
