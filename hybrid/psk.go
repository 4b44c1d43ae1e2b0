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

package hybrid

import (
	"github.com/CorvidLabs/algochat-web/cryptocore"
	"github.com/CorvidLabs/algochat-web/envelope"
	"github.com/CorvidLabs/algochat-web/identity"
)

// EncryptPSK seals plaintext exactly like EncryptBase, except the message
// body and sender-key keys are additionally keyed on messagePSK - the
// ratcheted output of ratchet.DeriveMessageKey(initialPSK, counter) - so a
// compromise of the ephemeral ECDH output alone is insufficient to recover
// the plaintext. counter is carried in the envelope so the recipient knows
// which ratchet position to derive.
func EncryptPSK(plaintext, senderPub, recipientPub, messagePSK []byte, counter uint32) (envelope.PSK, error) {
	if len(plaintext) > envelope.MaxPSKPlaintext {
		return envelope.PSK{}, cryptocore.ErrPayloadTooLarge
	}
	if len(senderPub) != 32 || len(recipientPub) != 32 {
		return envelope.PSK{}, cryptocore.ErrInvalidKeyLength
	}
	if len(messagePSK) != 32 {
		return envelope.PSK{}, cryptocore.ErrInvalidKeyLength
	}

	eph, err := identity.GenerateEphemeralKeyPair()
	if err != nil {
		return envelope.PSK{}, err
	}
	ephSecret := eph.SecretBytes()
	ephPub := eph.PublicBytes()
	defer func() {
		cryptocore.Zeroize(ephSecret)
		eph.Zeroize()
	}()

	ssRecipient, err := dh(ephSecret, recipientPub)
	if err != nil {
		return envelope.PSK{}, err
	}
	defer cryptocore.Zeroize(ssRecipient)

	sym, err := deriveSymmetricKey(ssRecipient, messagePSK, ephPub, senderPub, recipientPub)
	if err != nil {
		return envelope.PSK{}, err
	}
	defer cryptocore.Zeroize(sym)

	nonce, err := cryptocore.RandomBytes(cryptocore.NonceSize)
	if err != nil {
		return envelope.PSK{}, err
	}

	ciphertext, err := cryptocore.Seal(sym, nonce, plaintext)
	if err != nil {
		return envelope.PSK{}, err
	}

	ssSelf, err := dh(ephSecret, senderPub)
	if err != nil {
		return envelope.PSK{}, err
	}
	defer cryptocore.Zeroize(ssSelf)

	senderKEK, err := deriveSenderKEK(ssSelf, messagePSK, ephPub, senderPub)
	if err != nil {
		return envelope.PSK{}, err
	}
	defer cryptocore.Zeroize(senderKEK)

	sealedKey, err := cryptocore.Seal(senderKEK, nonce, sym)
	if err != nil {
		return envelope.PSK{}, err
	}

	var e envelope.PSK
	e.Counter = counter
	copy(e.SenderPubKey[:], senderPub)
	copy(e.EphemeralPubKey[:], ephPub)
	copy(e.Nonce[:], nonce)
	copy(e.EncryptedSenderKey[:], sealedKey)
	e.Ciphertext = ciphertext
	return e, nil
}

// DecryptPSK opens e given the messagePSK the caller derived for e.Counter
// (typically via ratchet.DeriveMessageKey against the session's
// initial_psk). Self-recovery works identically to DecryptBase.
func DecryptPSK(e envelope.PSK, mySecret, myPub, messagePSK []byte) (Result, error) {
	if len(messagePSK) != 32 {
		return Result{}, cryptocore.ErrInvalidKeyLength
	}

	senderPub := e.SenderPubKey[:]
	ephPub := e.EphemeralPubKey[:]
	nonce := e.Nonce[:]

	isSelf := constantEqual(senderPub, myPub)

	if !isSelf {
		ss, err := dh(mySecret, ephPub)
		if err != nil {
			return Result{}, cryptocore.ErrDecryptFailed
		}
		defer cryptocore.Zeroize(ss)

		sym, err := deriveSymmetricKey(ss, messagePSK, ephPub, senderPub, myPub)
		if err != nil {
			return Result{}, cryptocore.ErrDecryptFailed
		}
		defer cryptocore.Zeroize(sym)

		pt, err := cryptocore.Open(sym, nonce, e.Ciphertext)
		if err != nil {
			return Result{}, cryptocore.ErrDecryptFailed
		}
		return parseResult(pt), nil
	}

	ssSelf, err := dh(mySecret, ephPub)
	if err != nil {
		return Result{}, cryptocore.ErrDecryptFailed
	}
	defer cryptocore.Zeroize(ssSelf)

	senderKEK, err := deriveSenderKEK(ssSelf, messagePSK, ephPub, senderPub)
	if err != nil {
		return Result{}, cryptocore.ErrDecryptFailed
	}
	defer cryptocore.Zeroize(senderKEK)

	sym, err := cryptocore.Open(senderKEK, nonce, e.EncryptedSenderKey[:])
	if err != nil {
		return Result{}, cryptocore.ErrDecryptFailed
	}
	defer cryptocore.Zeroize(sym)

	pt, err := cryptocore.Open(sym, nonce, e.Ciphertext)
	if err != nil {
		return Result{}, cryptocore.ErrDecryptFailed
	}
	return parseResult(pt), nil
}
