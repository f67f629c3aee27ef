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
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// callerLimiterExpiry is how long the bucket of an idle caller is kept.
const callerLimiterExpiry = 5 * time.Minute

var _ middleware.RateLimiterStore = (*rateLimiterStore)(nil)

// rateLimiterStore limits requests per caller, and all requests together with a shared token bucket.
// The shared bucket protects the service that is called for every request (the verifier),
// the per-caller buckets prevent a single caller from exhausting the shared bucket.
type rateLimiterStore struct {
	shared  *rate.Limiter
	callers middleware.RateLimiterStore
}

// Allow checks the caller's bucket first, so denied callers don't consume tokens from the shared bucket.
func (s *rateLimiterStore) Allow(identifier string) (bool, error) {
	allowed, err := s.callers.Allow(identifier)
	if err != nil || !allowed {
		return false, err
	}
	// no need for locks since this is already managed by the limiter
	return s.shared.Allow(), nil
}

// newRateLimiterStore creates a new rate limiter store, allowing limit requests per second in total and callerLimit requests per second per caller.
// Both buckets hold at least minBurst requests, so a burst of related requests (e.g. a complete login) isn't denied.
func newRateLimiterStore(limit rate.Limit, callerLimit rate.Limit, minBurst int) *rateLimiterStore {
	return &rateLimiterStore{
		shared: rate.NewLimiter(limit, burstOf(limit, minBurst)),
		callers: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      callerLimit,
			Burst:     burstOf(callerLimit, minBurst),
			ExpiresIn: callerLimiterExpiry,
		}),
	}
}

// burstOf returns the bucket size for the given limit: a second's worth of requests, at least minBurst and at least 1.
// The burst is ignored by rate.Inf limits.
func burstOf(limit rate.Limit, minBurst int) int {
	result := 1
	if limit >= 1 && limit != rate.Inf {
		result = int(limit)
	}
	return max(result, minBurst)
}

// newRateLimiter creates a new rate limiter based on the echo middleware RateLimiter.
// It accepts a list of paths (per method) which will become limited. Paths are matched against the exact router path.
// Callers are identified by their IP address, as resolved by the echo.IPExtractor.
func newRateLimiter(protectedPaths map[string][]string, store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		// Returning true means skipping the middleware
		Skipper: func(c echo.Context) bool {
			for _, path := range protectedPaths[c.Request().Method] {
				if c.Path() == path {
					return false
				}
			}
			return true
		},
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return &echo.HTTPError{
				Code:     middleware.ErrRateLimitExceeded.Code,
				Message:  middleware.ErrRateLimitExceeded.Message,
				Internal: err,
			}
		},
		Store: store,
	})
}
