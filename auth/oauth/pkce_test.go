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

package oauth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// test vector from RFC7636, appendix B
const (
	testVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	testChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

func TestCreateS256Challenge(t *testing.T) {
	assert.Equal(t, testChallenge, CreateS256Challenge(testVerifier))
}

func TestIsValidS256Challenge(t *testing.T) {
	assert.True(t, IsValidS256Challenge(testChallenge))
	assert.False(t, IsValidS256Challenge(""))
	assert.False(t, IsValidS256Challenge(testChallenge+"="))
	assert.False(t, IsValidS256Challenge("plain-challenge"))
}

func TestVerifyPKCE(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		assert.True(t, VerifyPKCE(testChallenge, S256, testVerifier))
	})
	t.Run("wrong verifier", func(t *testing.T) {
		assert.False(t, VerifyPKCE(testChallenge, S256, strings.Repeat("a", 43)))
	})
	t.Run("plain method is not supported", func(t *testing.T) {
		assert.False(t, VerifyPKCE(testVerifier, "plain", testVerifier))
	})
	t.Run("verifier too short", func(t *testing.T) {
		verifier := "short"
		assert.False(t, VerifyPKCE(CreateS256Challenge(verifier), S256, verifier))
	})
	t.Run("verifier contains invalid characters", func(t *testing.T) {
		verifier := strings.Repeat("a", 42) + "/"
		assert.False(t, VerifyPKCE(CreateS256Challenge(verifier), S256, verifier))
	})
}
