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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewStatusEngine_Routes(t *testing.T) {
	t.Run("Registers the status and diagnostics routes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router := core.NewMockEchoRouter(ctrl)

		router.EXPECT().Add(http.MethodGet, "/status/diagnostics", gomock.Any())
		router.EXPECT().Add(http.MethodGet, "/status", gomock.Any())

		NewStatusEngine(core.NewSystem()).(*status).Routes(router)
	})
}

func TestNewStatusEngine_Diagnostics(t *testing.T) {
	system := core.NewSystem()
	system.RegisterEngine(NewStatusEngine(system))
	system.RegisterEngine(core.NewMetricsEngine())

	t.Run("diagnostics() returns core info", func(t *testing.T) {
		ds := NewStatusEngine(system).(*status).Diagnostics()

		require.Len(t, ds, 5)
		assert.Equal(t, "Registered engines", ds[0].Name())
		assert.Equal(t, "Status,Metrics", ds[0].String())
		assert.Equal(t, "Uptime", ds[1].Name())
		assert.NotEmpty(t, ds[1].String())
		assert.Equal(t, core.Version(), ds[2].String())
		assert.Equal(t, core.OSArch(), ds[4].String())
	})
	t.Run("diagnosticsOverview() renders text summary", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, diagnosticsEndpoint, nil), rec)

		err := (&status{system: system}).diagnosticsOverview(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Status\n\tGit commit: ")
		assert.Contains(t, rec.Body.String(), "\tRegistered engines: Status,Metrics\n")
	})
	t.Run("diagnosticsOverview() renders JSON", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, diagnosticsEndpoint, nil)
		request.Header.Set("Accept", "application/json")
		ctx := e.NewContext(request, rec)

		err := (&status{system: system}).diagnosticsOverview(ctx)

		require.NoError(t, err)
		var report core.DiagnosticsReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "Status,Metrics", report["Status"]["Registered engines"])
	})
}

func TestStatusOK(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, statusEndpoint, nil), rec)

	err := statusOK(ctx)

	require.NoError(t, err)
	assert.Equal(t, "OK", rec.Body.String())
}
