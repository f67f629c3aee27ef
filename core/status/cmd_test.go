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

package status

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmd(t *testing.T) {
	execute := func(t *testing.T, address string) (string, error) {
		cmd := Cmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--address", address})
		err := cmd.Execute()
		return buf.String(), err
	}

	t.Run("ok", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path != diagnosticsEndpoint {
				writer.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = writer.Write([]byte("Status\n\tUptime: 1s"))
		}))
		defer server.Close()

		output, err := execute(t, server.URL)

		require.NoError(t, err)
		assert.Contains(t, output, "Uptime: 1s")
	})
	t.Run("scheme is optional", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			_, _ = writer.Write([]byte("OK"))
		}))
		defer server.Close()

		output, err := execute(t, strings.TrimPrefix(server.URL, "http://"))

		require.NoError(t, err)
		assert.Contains(t, output, "OK")
	})
	t.Run("error - non-OK status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := execute(t, server.URL)

		assert.ErrorContains(t, err, "unable to retrieve diagnostics")
	})
}
