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
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// ErrWrongPrivateKey is returned when a PEM file does not contain a supported private key.
var ErrWrongPrivateKey = errors.New("failed to decode PEM block containing private key")

// privateKeyToPem converts a private key to PKCS#8 PEM encoding
func privateKeyToPem(privateKey *ecdsa.PrivateKey) ([]byte, error) {
	asn1, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: asn1,
	}), nil
}

// pemToPrivateKey converts a PEM encoded EC private key (SEC 1 or PKCS#8) to an ecdsa.PrivateKey.
func pemToPrivateKey(data []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrWrongPrivateKey
	}
	switch block.Type {
	case "EC PRIVATE KEY":
		return x509.ParseECPrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, errors.Join(ErrWrongPrivateKey, err)
		}
		ecKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported key type %T, expected EC", ErrWrongPrivateKey, key)
		}
		return ecKey, nil
	default:
		return nil, fmt.Errorf("%w: unsupported PEM block type %s", ErrWrongPrivateKey, block.Type)
	}
}
