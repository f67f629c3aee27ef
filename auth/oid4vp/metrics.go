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

package oid4vp

import (
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the outcomes of wallet authentications.
type Metrics struct {
	authentications *prometheus.CounterVec
}

// NewMetrics creates the wallet authentication metrics. They still need to be registered, see Register.
func NewMetrics() *Metrics {
	return &Metrics{
		authentications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Name:      "wallet_authentications_total",
			Help:      "Number of finished wallet authentications, by outcome and failure reason",
		}, []string{"outcome", "reason"}),
	}
}

// Register registers the metrics with the default prometheus registry.
// Metrics registered earlier (e.g. by a previous Configure) are adopted.
func (m *Metrics) Register() error {
	var err error
	m.authentications, err = core.RegisterCollector(m.authentications)
	return err
}

func (m *Metrics) succeeded() {
	m.authentications.WithLabelValues(OutcomeSuccess.String(), "").Inc()
}

func (m *Metrics) failed(reason Reason) {
	m.authentications.WithLabelValues(OutcomeFailure.String(), string(reason)).Inc()
}
