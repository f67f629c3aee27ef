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

package crypto

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"os"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// SigningAlgorithm is the JWS algorithm used to sign tokens.
const SigningAlgorithm = jwa.ES256

// ErrUnsupportedSigningKey is returned when the signing key is not an EC key on curve P-256.
var ErrUnsupportedSigningKey = errors.New("signing key must be an EC key on curve P-256")

var _ JWTSigner = (*ECDSASigner)(nil)

// JWTSigner signs JWTs with the server's signing key.
type JWTSigner interface {
	// SignJWT signs the given claims and returns the compact serialized JWT.
	SignJWT(ctx context.Context, claims map[string]interface{}) (string, error)
	// KeyID returns the ID of the signing key, which is set as 'kid' header of signed tokens.
	KeyID() string
	// PublicKeySet returns a JWK set containing the public signing key.
	PublicKeySet() (jwk.Set, error)
}

// ECDSASigner is a JWTSigner that signs with an in-memory P-256 key.
type ECDSASigner struct {
	key jwk.Key
}

// NewECDSASigner creates a signer for the given private key. The key ID is the JWK thumbprint of the key (RFC 7638).
func NewECDSASigner(privateKey *ecdsa.PrivateKey) (*ECDSASigner, error) {
	if privateKey == nil || privateKey.Curve != elliptic.P256() {
		return nil, ErrUnsupportedSigningKey
	}
	key, err := jwk.FromRaw(privateKey)
	if err != nil {
		return nil, err
	}
	if err = jwk.AssignKeyID(key); err != nil {
		return nil, err
	}
	if err = key.Set(jwk.AlgorithmKey, SigningAlgorithm); err != nil {
		return nil, err
	}
	if err = key.Set(jwk.KeyUsageKey, jwk.ForSignature); err != nil {
		return nil, err
	}
	return &ECDSASigner{key: key}, nil
}

func (s ECDSASigner) SignJWT(_ context.Context, claims map[string]interface{}) (string, error) {
	token := jwt.New()
	for k, v := range claims {
		if err := token.Set(k, v); err != nil {
			return "", fmt.Errorf("invalid claim %s: %w", k, err)
		}
	}
	signed, err := jwt.Sign(token, jwt.WithKey(SigningAlgorithm, s.key))
	if err != nil {
		return "", fmt.Errorf("unable to sign JWT: %w", err)
	}
	return string(signed), nil
}

func (s ECDSASigner) KeyID() string {
	return s.key.KeyID()
}

func (s ECDSASigner) PublicKeySet() (jwk.Set, error) {
	publicKey, err := jwk.PublicKeyOf(s.key)
	if err != nil {
		return nil, err
	}
	set := jwk.NewSet()
	if err = set.AddKey(publicKey); err != nil {
		return nil, err
	}
	return set, nil
}

// GenerateSigningKey generates a new P-256 private key.
func GenerateSigningKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}

// LoadSigningKey reads a PEM encoded P-256 private key from the given file.
func LoadSigningKey(file string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read signing key (file=%s): %w", file, err)
	}
	key, err := pemToPrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse signing key (file=%s): %w", file, err)
	}
	if key.Curve != elliptic.P256() {
		return nil, ErrUnsupportedSigningKey
	}
	return key, nil
}

// LoadOrCreateSigningKey reads the signing key from the given file.
// If the file does not exist, a new key is generated and written to it.
// The second return value indicates whether the key was created.
func LoadOrCreateSigningKey(file string) (*ecdsa.PrivateKey, bool, error) {
	if _, err := os.Stat(file); err == nil {
		key, err := LoadSigningKey(file)
		return key, false, err
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, false, err
	}
	key, err := GenerateSigningKey()
	if err != nil {
		return nil, false, err
	}
	data, err := privateKeyToPem(key)
	if err != nil {
		return nil, false, err
	}
	if err = os.WriteFile(file, data, 0600); err != nil {
		return nil, false, fmt.Errorf("unable to write signing key (file=%s): %w", file, err)
	}
	return key, true, nil
}
