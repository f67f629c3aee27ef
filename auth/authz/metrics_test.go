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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	first := NewMetrics()
	require.NoError(t, first.Register())
	t.Cleanup(func() {
		prometheus.Unregister(first.codesIssued)
		prometheus.Unregister(first.codesRedeemed)
	})

	t.Run("registering again adopts the registered metrics", func(t *testing.T) {
		second := NewMetrics()

		require.NoError(t, second.Register())

		assert.Same(t, first.codesIssued, second.codesIssued)
		assert.Same(t, first.codesRedeemed, second.codesRedeemed)
	})
	t.Run("counts of a second registration are exported", func(t *testing.T) {
		second := NewMetrics()
		require.NoError(t, second.Register())

		second.codesIssued.Inc()

		assertCounter(t, first.codesIssued, 1)
	})
}
