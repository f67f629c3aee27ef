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
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
)

// NoStore returns middleware that instructs clients and proxies not to store the response.
// Responses that carry authorization codes, tokens or session cookies must not be cached (RFC6749, section 5.1).
func NoStore() echo.MiddlewareFunc {
	return withHeaders(map[string]string{
		"Cache-Control": "no-store",
		// Pragma is deprecated (HTTP/1.0) but it's specified by RFC6749
		"Pragma": "no-cache",
	})
}

// MaxAge returns middleware that allows clients to cache the response for the given duration.
// Durations are truncated to whole seconds.
func MaxAge(maxAge time.Duration) echo.MiddlewareFunc {
	return withHeaders(map[string]string{
		"Cache-Control": fmt.Sprintf("max-age=%d", int(maxAge.Seconds())),
	})
}

// withHeaders sets the headers before the handler is invoked, so handlers can still override them.
func withHeaders(headers map[string]string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for name, value := range headers {
				c.Response().Header().Set(name, value)
			}
			return next(c)
		}
	}
}
