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

package authz

import (
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts issued and redeemed authorization codes.
type Metrics struct {
	codesIssued   prometheus.Counter
	codesRedeemed *prometheus.CounterVec
}

// NewMetrics creates the authorization code metrics. They still need to be registered, see Register.
func NewMetrics() *Metrics {
	return &Metrics{
		codesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Name:      "codes_issued_total",
			Help:      "Number of issued authorization codes",
		}),
		codesRedeemed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Name:      "codes_redeemed_total",
			Help:      "Number of authorization code exchanges at the token endpoint, by result",
		}, []string{"result"}),
	}
}

// Register registers the metrics with the default prometheus registry.
// Metrics registered earlier (e.g. by a previous Configure) are adopted.
func (m *Metrics) Register() error {
	var err error
	if m.codesIssued, err = core.RegisterCollector(m.codesIssued); err != nil {
		return err
	}
	m.codesRedeemed, err = core.RegisterCollector(m.codesRedeemed)
	return err
}
