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
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/sirupsen/logrus"
)

const redacted = "(redacted)"

// secretParams are the form parameters and JSON properties that are never logged.
var secretParams = []string{"client_secret", "code", "code_verifier", "access_token", "response_code"}

// requestLoggerMiddleware returns middleware that logs metadata of HTTP requests.
// Should be added as the outer middleware to catch all errors and potential status rewrites
func requestLoggerMiddleware(skipper middleware.Skipper, logger *logrus.Entry) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper:     skipper,
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogRemoteIP: true,
		LogError:    true,
		LogLatency:  true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip": values.RemoteIP,
				"method":    values.Method,
				"uri":       redactQuery(values.URI),
				"status":    responseStatus(values),
				"latency":   values.Latency.String(),
			}
			// set by the API routes
			if operationID, ok := c.Get(core.OperationIDContextKey).(string); ok {
				fields["operation"] = operationID
			}
			logger.WithFields(fields).Info("HTTP request")
			return nil
		},
	})
}

// responseStatus returns the status code of the response, which isn't written yet if the handler returned an error.
func responseStatus(values middleware.RequestLoggerValues) int {
	if values.Error == nil {
		return values.Status
	}
	// In case the error provides `func StatusCode() int` (e.g. core.HTTPStatusCodeError)
	if x, ok := values.Error.(interface{ StatusCode() int }); ok {
		return x.StatusCode()
	}
	if x, ok := values.Error.(*echo.HTTPError); ok {
		return x.Code
	}
	return http.StatusInternalServerError
}

// bodyLoggerMiddleware returns middleware that logs body of HTTP requests and their replies.
// Client secrets, codes and tokens are redacted.
func bodyLoggerMiddleware(skipper middleware.Skipper, logger *logrus.Entry) echo.MiddlewareFunc {
	return middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Handler: func(e echo.Context, request []byte, response []byte) {
			logger.Infof("HTTP request body: %s", loggableBody(e.Request().Header.Get("Content-Type"), request))
			logger.Infof("HTTP response body: %s", loggableBody(e.Response().Header().Get("Content-Type"), response))
		},
		Skipper: skipper,
	})
}

func loggableBody(contentType string, body []byte) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "application/x-www-form-urlencoded":
		return redactForm(string(body))
	case "application/json", "application/problem+json":
		return redactJSON(body)
	default:
		return "(not loggable: " + contentType + ")"
	}
}

func redactForm(body string) string {
	values, err := url.ParseQuery(body)
	if err != nil {
		return "(not loggable: invalid form)"
	}
	for _, param := range secretParams {
		if values.Has(param) {
			values.Set(param, redacted)
		}
	}
	return values.Encode()
}

// redactJSON redacts secret properties of JSON objects. Other JSON values are logged as-is.
func redactJSON(body []byte) string {
	var object map[string]json.RawMessage
	if json.Unmarshal(body, &object) != nil {
		return string(body)
	}
	changed := false
	for _, param := range secretParams {
		if _, ok := object[param]; ok {
			object[param] = json.RawMessage(`"` + redacted + `"`)
			changed = true
		}
	}
	if !changed {
		return string(body)
	}
	data, _ := json.Marshal(object)
	return string(data)
}

// redactQuery removes the query from the request URI,
// since it contains authorization codes, states and presentation nonces.
func redactQuery(requestURI string) string {
	if idx := strings.IndexByte(requestURI, '?'); idx >= 0 {
		return requestURI[:idx] + "?" + redacted
	}
	return requestURI
}
