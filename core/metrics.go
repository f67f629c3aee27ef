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
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsNamespace is the namespace of all metrics exported by this server.
const MetricsNamespace = "authz"

const metricsEngineName = "Metrics"

// NewMetricsEngine creates a new Engine for exposing prometheus metrics via http.
// Metrics are exposed on /metrics, by default the GoCollector and ProcessCollector are enabled.
func NewMetricsEngine() Engine {
	return &metrics{}
}

type metrics struct{}

func (m metrics) Name() string {
	return metricsEngineName
}

func (m metrics) Routes(router EchoRouter) {
	router.Add(http.MethodGet, "/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (m metrics) Configure(_ ServerConfig) error {
	return RegisterCollectors(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RegisterCollectors registers the given collectors with the default prometheus registry.
// Collectors that are already registered are ignored, so engines can be configured more than once (e.g. in tests).
func RegisterCollectors(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if _, err := RegisterCollector(c); err != nil {
			return err
		}
	}
	return nil
}

// RegisterCollector registers the given collector with the default prometheus registry and returns the collector to use.
// If an equal collector is already registered, the registered one is returned.
// Callers must use the returned collector, otherwise their observations aren't exported.
func RegisterCollector[T prometheus.Collector](c T) (T, error) {
	err := prometheus.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, err
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, err
	}
	return existing, nil
}
