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
	"bytes"
	"crypto/subtle"

	"github.com/CorvidLabs/algochat-web/cryptocore"
	"github.com/CorvidLabs/algochat-web/identity"
)

var (
	baseInfoPrefix          = []byte("AlgoChatV1")
	pskInfoPrefix           = []byte("AlgoChatV1-PSK")
	baseSenderKeyInfoPrefix = []byte("AlgoChatV1-SenderKey")
	pskSenderKeyInfoPrefix  = []byte("AlgoChatV1-PSK-SenderKey")
)

// deriveSymmetricKey derives the key that seals/opens the message body.
// salt is always the ephemeral public key. messagePSK is nil for the base
// protocol and the current counter's ratcheted key for the PSK protocol.
func deriveSymmetricKey(sharedSecret, messagePSK, ephPub, senderPub, recipientPub []byte) ([]byte, error) {
	var ikm, prefix []byte
	if messagePSK == nil {
		ikm = sharedSecret
		prefix = baseInfoPrefix
	} else {
		ikm = bytes.Join([][]byte{sharedSecret, messagePSK}, nil)
		prefix = pskInfoPrefix
	}
	info := bytes.Join([][]byte{prefix, senderPub, recipientPub}, nil)
	return cryptocore.DeriveKey(ikm, ephPub, info)
}

// deriveSenderKEK derives the key that seals/opens the encrypted-sender-key
// slot, the mechanism that lets the author recover their own outbound
// message. Same salt/ikm shape as deriveSymmetricKey but the info binds
// only the sender's public key, never the recipient's.
func deriveSenderKEK(sharedSecret, messagePSK, ephPub, senderPub []byte) ([]byte, error) {
	var ikm, prefix []byte
	if messagePSK == nil {
		ikm = sharedSecret
		prefix = baseSenderKeyInfoPrefix
	} else {
		ikm = bytes.Join([][]byte{sharedSecret, messagePSK}, nil)
		prefix = pskSenderKeyInfoPrefix
	}
	info := bytes.Join([][]byte{prefix, senderPub}, nil)
	return cryptocore.DeriveKey(ikm, ephPub, info)
}

// dh is a thin alias kept local to this package so call sites read as
// hybrid operations rather than reaching into package identity directly
// for every Diffie-Hellman.
func dh(secret, peerPublic []byte) ([]byte, error) {
	return identity.DH(secret, peerPublic)
}

// constantEqual compares two 32-byte public keys in constant time. Used to
// decide between the recipient and self-recovery decryption paths without
// leaking which branch was taken through a timing side channel.
func constantEqual(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}
