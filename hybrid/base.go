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

// EncryptBase seals plaintext for recipientPub, forward-secret through a
// fresh ephemeral key pair alone. senderPub is embedded in the envelope so
// the recipient (and the sender's own self-recovery path) can identify the
// author; senderSecret is not needed here - only the ephemeral secret
// performs Diffie-Hellman.
func EncryptBase(plaintext, senderPub, recipientPub []byte) (envelope.Base, error) {
	if len(plaintext) > envelope.MaxBasePlaintext {
		return envelope.Base{}, cryptocore.ErrPayloadTooLarge
	}
	if len(senderPub) != 32 || len(recipientPub) != 32 {
		return envelope.Base{}, cryptocore.ErrInvalidKeyLength
	}

	eph, err := identity.GenerateEphemeralKeyPair()
	if err != nil {
		return envelope.Base{}, err
	}
	ephSecret := eph.SecretBytes()
	ephPub := eph.PublicBytes()
	defer func() {
		cryptocore.Zeroize(ephSecret)
		eph.Zeroize()
	}()

	ssRecipient, err := dh(ephSecret, recipientPub)
	if err != nil {
		return envelope.Base{}, err
	}
	defer cryptocore.Zeroize(ssRecipient)

	sym, err := deriveSymmetricKey(ssRecipient, nil, ephPub, senderPub, recipientPub)
	if err != nil {
		return envelope.Base{}, err
	}
	defer cryptocore.Zeroize(sym)

	nonce, err := cryptocore.RandomBytes(cryptocore.NonceSize)
	if err != nil {
		return envelope.Base{}, err
	}

	ciphertext, err := cryptocore.Seal(sym, nonce, plaintext)
	if err != nil {
		return envelope.Base{}, err
	}

	ssSelf, err := dh(ephSecret, senderPub)
	if err != nil {
		return envelope.Base{}, err
	}
	defer cryptocore.Zeroize(ssSelf)

	senderKEK, err := deriveSenderKEK(ssSelf, nil, ephPub, senderPub)
	if err != nil {
		return envelope.Base{}, err
	}
	defer cryptocore.Zeroize(senderKEK)

	sealedKey, err := cryptocore.Seal(senderKEK, nonce, sym)
	if err != nil {
		return envelope.Base{}, err
	}

	var e envelope.Base
	copy(e.SenderPubKey[:], senderPub)
	copy(e.EphemeralPubKey[:], ephPub)
	copy(e.Nonce[:], nonce)
	copy(e.EncryptedSenderKey[:], sealedKey)
	e.Ciphertext = ciphertext
	return e, nil
}

// DecryptBase opens e. If e.SenderPubKey equals myPub, the self-recovery
// path is used (so authors can read their own outbound messages from the
// ledger); otherwise the ordinary recipient path runs. Any cryptographic
// failure collapses to cryptocore.ErrDecryptFailed.
func DecryptBase(e envelope.Base, mySecret, myPub []byte) (Result, error) {
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

		sym, err := deriveSymmetricKey(ss, nil, ephPub, senderPub, myPub)
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

	senderKEK, err := deriveSenderKEK(ssSelf, nil, ephPub, senderPub)
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
