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

package cache

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxAge(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		recorder := serve(t, MaxAge(time.Hour), func(c echo.Context) error {
			return c.String(http.StatusOK, "OK")
		})

		assert.Equal(t, "max-age=3600", recorder.Header().Get("Cache-Control"))
		assert.Empty(t, recorder.Header().Get("Pragma"))
	})
	t.Run("truncated to seconds", func(t *testing.T) {
		recorder := serve(t, MaxAge(1500*time.Millisecond), func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		assert.Equal(t, "max-age=1", recorder.Header().Get("Cache-Control"))
	})
}

func TestNoStore(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		recorder := serve(t, NoStore(), func(c echo.Context) error {
			return c.String(http.StatusOK, "OK")
		})

		assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))
		assert.Equal(t, "no-cache", recorder.Header().Get("Pragma"))
	})
	t.Run("handler overrides header", func(t *testing.T) {
		recorder := serve(t, NoStore(), func(c echo.Context) error {
			c.Response().Header().Set("Cache-Control", "private")
			return c.NoContent(http.StatusOK)
		})

		assert.Equal(t, "private", recorder.Header().Get("Cache-Control"))
	})
	t.Run("headers are set on error", func(t *testing.T) {
		e := echo.New()
		e.GET("/", func(c echo.Context) error {
			return errors.New("failed")
		}, NoStore())
		recorder := httptest.NewRecorder()

		e.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))
	})
}

func serve(t *testing.T, middleware echo.MiddlewareFunc, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	echoContext := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), recorder)
	require.NoError(t, middleware(handler)(echoContext))
	return recorder
}
