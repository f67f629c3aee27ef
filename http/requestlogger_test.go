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
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func Test_requestLoggerMiddleware(t *testing.T) {
	noSkip := func(c echo.Context) bool {
		return false
	}
	newContext := func(target string) (echo.Context, *httptest.ResponseRecorder) {
		request := httptest.NewRequest(http.MethodGet, target, nil)
		request.RemoteAddr = "[::1]:1234"
		recorder := httptest.NewRecorder()
		return echo.New().NewContext(request, recorder), recorder
	}

	t.Run("it logs", func(t *testing.T) {
		echoCtx, _ := newContext("/test")

		logger, hook := test.NewNullLogger()
		logFunc := requestLoggerMiddleware(noSkip, logger.WithFields(logrus.Fields{}))
		err := logFunc(func(context echo.Context) error {
			return context.NoContent(http.StatusNoContent)
		})(echoCtx)

		assert.NoError(t, err)
		assert.Len(t, hook.Entries, 1)
		assert.Equal(t, "::1", hook.LastEntry().Data["remote_ip"])
		assert.Equal(t, http.StatusNoContent, hook.LastEntry().Data["status"])
		assert.Equal(t, "/test", hook.LastEntry().Data["uri"])
		assert.NotEmpty(t, hook.LastEntry().Data["latency"])
		assert.NotContains(t, hook.LastEntry().Data, "operation")
	})
	t.Run("it logs the operation", func(t *testing.T) {
		echoCtx, _ := newContext("/oauth2/token")

		logger, hook := test.NewNullLogger()
		logFunc := requestLoggerMiddleware(noSkip, logger.WithFields(logrus.Fields{}))
		_ = logFunc(func(context echo.Context) error {
			context.Set(core.OperationIDContextKey, "HandleTokenRequest")
			return context.NoContent(http.StatusOK)
		})(echoCtx)

		assert.Equal(t, "HandleTokenRequest", hook.LastEntry().Data["operation"])
	})
	t.Run("it redacts the query", func(t *testing.T) {
		echoCtx, _ := newContext("/oauth2/authorize?client_id=app1&state=secret")

		logger, hook := test.NewNullLogger()
		logFunc := requestLoggerMiddleware(noSkip, logger.WithFields(logrus.Fields{}))
		_ = logFunc(func(context echo.Context) error {
			return context.NoContent(http.StatusFound)
		})(echoCtx)

		assert.Equal(t, "/oauth2/authorize?(redacted)", hook.LastEntry().Data["uri"])
	})
	t.Run("it handles echo.HTTPErrors", func(t *testing.T) {
		echoCtx, _ := newContext("/test")

		logger, hook := test.NewNullLogger()
		logFunc := requestLoggerMiddleware(noSkip, logger.WithFields(logrus.Fields{}))
		_ = logFunc(func(context echo.Context) error {
			return echo.NewHTTPError(http.StatusForbidden)
		})(echoCtx)

		assert.Len(t, hook.Entries, 1)
		assert.Equal(t, http.StatusForbidden, hook.LastEntry().Data["status"])
	})
	t.Run("it handles httpStatusCodeError", func(t *testing.T) {
		echoCtx, _ := newContext("/test")

		logger, hook := test.NewNullLogger()
		logFunc := requestLoggerMiddleware(noSkip, logger.WithFields(logrus.Fields{}))
		_ = logFunc(func(context echo.Context) error {
			return core.NotFoundError("not found")
		})(echoCtx)

		assert.Len(t, hook.Entries, 1)
		assert.Equal(t, http.StatusNotFound, hook.LastEntry().Data["status"])
	})
	t.Run("it handles go errors", func(t *testing.T) {
		echoCtx, _ := newContext("/test")

		logger, hook := test.NewNullLogger()
		logFunc := requestLoggerMiddleware(noSkip, logger.WithFields(logrus.Fields{}))
		_ = logFunc(func(context echo.Context) error {
			return errors.New("failed")
		})(echoCtx)

		assert.Len(t, hook.Entries, 1)
		assert.Equal(t, http.StatusInternalServerError, hook.LastEntry().Data["status"])
	})
}

func Test_bodyLoggerMiddleware(t *testing.T) {
	t.Run("it logs", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`"request"`)))
		request.Header.Set("Content-Type", "application/json")
		echoCtx := echo.New().NewContext(request, httptest.NewRecorder())

		logger, hook := test.NewNullLogger()
		logFunc := bodyLoggerMiddleware(func(c echo.Context) bool {
			return false
		}, logger.WithFields(logrus.Fields{}))
		err := logFunc(func(context echo.Context) error {
			return context.JSONBlob(http.StatusOK, []byte(`"response"`))
		})(echoCtx)

		assert.NoError(t, err)
		assert.Len(t, hook.Entries, 2)
		assert.Equal(t, `HTTP request body: "request"`, hook.AllEntries()[0].Message)
		assert.Equal(t, `HTTP response body: "response"`, hook.AllEntries()[1].Message)
	})
	t.Run("request and response not loggable", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte{1, 2, 3}))
		request.Header.Set("Content-Type", "application/binary")
		echoCtx := echo.New().NewContext(request, httptest.NewRecorder())

		logger, hook := test.NewNullLogger()
		logFunc := bodyLoggerMiddleware(func(c echo.Context) bool {
			return false
		}, logger.WithFields(logrus.Fields{}))
		err := logFunc(func(context echo.Context) error {
			return context.Blob(http.StatusOK, "application/binary", []byte{1, 2, 3})
		})(echoCtx)

		assert.NoError(t, err)
		assert.Len(t, hook.Entries, 2)
		assert.Equal(t, `HTTP request body: (not loggable: application/binary)`, hook.AllEntries()[0].Message)
		assert.Equal(t, `HTTP response body: (not loggable: application/binary)`, hook.AllEntries()[1].Message)
	})
}

func Test_loggableBody(t *testing.T) {
	t.Run("form secrets are redacted", func(t *testing.T) {
		actual := loggableBody("application/x-www-form-urlencoded", []byte("grant_type=authorization_code&code=abc&code_verifier=def&client_secret=ghi"))

		assert.Equal(t, "client_secret=%28redacted%29&code=%28redacted%29&code_verifier=%28redacted%29&grant_type=authorization_code", actual)
	})
	t.Run("invalid form", func(t *testing.T) {
		assert.Equal(t, "(not loggable: invalid form)", loggableBody("application/x-www-form-urlencoded", []byte("%zz")))
	})
	t.Run("JSON secrets are redacted", func(t *testing.T) {
		actual := loggableBody("application/json; charset=UTF-8", []byte(`{"access_token":"eyJ","token_type":"Bearer"}`))

		assert.JSONEq(t, `{"access_token":"(redacted)","token_type":"Bearer"}`, actual)
	})
	t.Run("JSON without secrets is logged as-is", func(t *testing.T) {
		assert.Equal(t, `{"error":"invalid_grant"}`, loggableBody("application/json", []byte(`{"error":"invalid_grant"}`)))
		assert.Equal(t, `"text"`, loggableBody("application/problem+json", []byte(`"text"`)))
	})
	t.Run("not loggable", func(t *testing.T) {
		assert.Equal(t, "(not loggable: text/html)", loggableBody("text/html", []byte("<html>")))
	})
}
