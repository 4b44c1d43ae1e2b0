// AlgoChat - Algorand end-to-end encrypted messaging
// Copyright (C) 2025 CorvidLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

// Package identity derives the long-term X25519 encryption identity from an
// Algorand account seed, and generates the fresh ephemeral key pairs every
// encrypted message needs. It never signs or verifies and never uses the
// account's Ed25519 secret; the only Ed25519 material it accepts is a
// public key, in X25519PublicFromEd25519.
package identity

import (
	"crypto/ecdh"

	"filippo.io/edwards25519"

	"github.com/CorvidLabs/algochat-web/cryptocore"
)

var (
	identitySalt = []byte("AlgoChat-v1-encryption")
	identityInfo = []byte("x25519-key")
)

// KeyPair is a 32-byte X25519 secret and its corresponding 32-byte public
// key. Secret holds the scalar bytes as given; crypto/ecdh applies RFC 7748
// clamping each time the scalar is used in a multiplication.
type KeyPair struct {
	Secret [32]byte
	Public [32]byte
}

// PublicBytes returns a copy of the public key.
func (kp KeyPair) PublicBytes() []byte {
	out := make([]byte, 32)
	copy(out, kp.Public[:])
	return out
}

// SecretBytes returns a copy of the secret scalar.
func (kp KeyPair) SecretBytes() []byte {
	out := make([]byte, 32)
	copy(out, kp.Secret[:])
	return out
}

// Zeroize overwrites the secret half of the key pair. Call once the key
// pair is no longer needed; has no effect on Public.
func (kp *KeyPair) Zeroize() {
	cryptocore.Zeroize(kp.Secret[:])
}

// DeriveIdentityKeyPair derives the deterministic long-term X25519 key pair
// from a 32-byte Algorand account seed:
//
//	secret = HKDF(ikm=seed, salt="AlgoChat-v1-encryption", info="x25519-key", L=32)
//	public = X25519_base(secret)
//
// This binds the messaging identity to the account without reusing the
// Ed25519 signing key for Diffie-Hellman. seed must be exactly 32 bytes.
func DeriveIdentityKeyPair(seed []byte) (KeyPair, error) {
	if len(seed) != 32 {
		return KeyPair{}, cryptocore.ErrInvalidKeyLength
	}

	raw, err := cryptocore.DeriveKey(seed, identitySalt, identityInfo)
	if err != nil {
		return KeyPair{}, err
	}
	defer cryptocore.Zeroize(raw)

	return keyPairFromScalar(raw)
}

// GenerateEphemeralKeyPair produces a fresh random X25519 key pair. The
// caller is responsible for zeroizing the secret via KeyPair.Zeroize once
// the encrypt operation that consumed it returns.
func GenerateEphemeralKeyPair() (KeyPair, error) {
	secret, err := cryptocore.RandomBytes(32)
	if err != nil {
		return KeyPair{}, err
	}
	defer cryptocore.Zeroize(secret)

	return keyPairFromScalar(secret)
}

func keyPairFromScalar(scalar []byte) (KeyPair, error) {
	priv, err := ecdh.X25519().NewPrivateKey(scalar)
	if err != nil {
		// NewPrivateKey accepts any 32-byte string (clamping happens at
		// multiplication time), so this only fails on a wrong length.
		return KeyPair{}, err
	}

	var kp KeyPair
	copy(kp.Secret[:], priv.Bytes())
	copy(kp.Public[:], priv.PublicKey().Bytes())
	return kp, nil
}

// X25519PublicFromEd25519 converts an Algorand account's 32-byte Ed25519
// public key into its X25519 (Montgomery form) counterpart via the
// birational map between the twisted Edwards curve and its Montgomery
// form. This does not touch the account's private key. The result is not
// the public key DeriveIdentityKeyPair derives from the same account's
// seed (that key comes from HKDF over the seed), so a message sealed to
// it cannot be opened with a DeriveIdentityKeyPair secret.
func X25519PublicFromEd25519(edPub []byte) ([]byte, error) {
	if len(edPub) != 32 {
		return nil, cryptocore.ErrInvalidKeyLength
	}

	point, err := new(edwards25519.Point).SetBytes(edPub)
	if err != nil {
		return nil, cryptocore.ErrInvalidKeyLength
	}
	return point.BytesMontgomery(), nil
}

// DH performs X25519(secret, peerPublic) and rejects an all-zero (low
// order / contributory) result. Shared by every package that needs a raw
// Diffie-Hellman output: hybrid for message encryption, and the tests that
// cross-check X25519 agreement against CIRCL's independent implementation.
func DH(secret, peerPublic []byte) ([]byte, error) {
	if len(secret) != 32 || len(peerPublic) != 32 {
		return nil, cryptocore.ErrInvalidKeyLength
	}

	priv, err := ecdh.X25519().NewPrivateKey(secret)
	if err != nil {
		return nil, err
	}
	pub, err := ecdh.X25519().NewPublicKey(peerPublic)
	if err != nil {
		return nil, err
	}

	shared, err := priv.ECDH(pub)
	if err != nil {
		return nil, err
	}
	if err := cryptocore.RejectAllZero(shared); err != nil {
		return nil, err
	}
	return shared, nil
}
