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

// Package envelope encodes and decodes the two wire-compatible AlgoChat
// message formats that ride inside an Algorand transaction note: the base
// envelope (forward-secret through ephemeral keys alone) and the PSK
// envelope (adds a ratcheted pre-shared key). Both layouts are fixed-width
// header plus variable-length ciphertext; every offset here is normative -
// an implementation that reorders a field breaks interoperability with any
// independent client reading the same note.
package envelope

import "github.com/CorvidLabs/algochat-web/cryptocore"

const (
	// Version is the only wire version this module understands.
	Version byte = 0x01

	// ProtocolBase and ProtocolPSK are the second-byte discriminators.
	ProtocolBase byte = 0x01
	ProtocolPSK  byte = 0x02

	pubKeySize  = 32
	nonceSize   = cryptocore.NonceSize
	sealedKeySize = 32 + cryptocore.TagSize // encrypted_sender_key: 32-byte key + Poly1305 tag

	// BaseHeaderSize is version+protocol_id+sender_pubkey+ephemeral_pubkey+nonce+encrypted_sender_key.
	BaseHeaderSize = 1 + 1 + pubKeySize + pubKeySize + nonceSize + sealedKeySize // 126
	// PSKHeaderSize adds the 4-byte big-endian counter after protocol_id.
	PSKHeaderSize = BaseHeaderSize + 4 // 130

	// MaxEnvelopeSize is the hard ceiling imposed by the Algorand
	// transaction note field both protocols must fit inside.
	MaxEnvelopeSize = 1024

	// MaxBasePlaintext and MaxPSKPlaintext are the largest plaintexts that
	// still encode to at most MaxEnvelopeSize bytes.
	MaxBasePlaintext = MaxEnvelopeSize - BaseHeaderSize - cryptocore.TagSize // 882
	MaxPSKPlaintext  = MaxEnvelopeSize - PSKHeaderSize - cryptocore.TagSize  // 878

	// minBaseLen and minPSKLen are the decode-time minimums: header plus
	// at least one AEAD tag's worth of ciphertext.
	minBaseLen = BaseHeaderSize + cryptocore.TagSize // 142
	minPSKLen  = PSKHeaderSize + cryptocore.TagSize  // 146
)

// Base is the decoded form of a base-protocol envelope.
type Base struct {
	SenderPubKey       [32]byte
	EphemeralPubKey    [32]byte
	Nonce              [cryptocore.NonceSize]byte
	EncryptedSenderKey [sealedKeySize]byte
	Ciphertext         []byte
}

// PSK is the decoded form of a PSK-protocol envelope. Identical to Base
// except for the 4-byte ratchet counter carried right after the protocol
// byte.
type PSK struct {
	Counter            uint32
	SenderPubKey       [32]byte
	EphemeralPubKey    [32]byte
	Nonce              [cryptocore.NonceSize]byte
	EncryptedSenderKey [sealedKeySize]byte
	Ciphertext         []byte
}

// IsBase reports whether b looks like a base envelope: magic bytes and a
// length that could at least hold a header and one AEAD tag. It never
// inspects the ciphertext.
func IsBase(b []byte) bool {
	return len(b) >= minBaseLen && b[0] == Version && b[1] == ProtocolBase
}

// IsPSK reports whether b looks like a PSK envelope, analogous to IsBase.
func IsPSK(b []byte) bool {
	return len(b) >= minPSKLen && b[0] == Version && b[1] == ProtocolPSK
}
