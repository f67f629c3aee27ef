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
	"testing"

	goerrors "github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	sentinel := errors.New("sentinel")
	cause := errors.New("cause")

	err := WrapError(sentinel, cause)

	assert.EqualError(t, err, "sentinel: cause")
	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
}

func TestStack(t *testing.T) {
	t.Run("go-errors error has a stack", func(t *testing.T) {
		err := goerrors.New("failed")

		assert.Contains(t, Stack(err), "TestStack")
	})
	t.Run("plain error returns message", func(t *testing.T) {
		assert.Equal(t, "failed", Stack(errors.New("failed")))
	})
}
