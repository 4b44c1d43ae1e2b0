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

// Package cryptocore fixes the cryptographic primitives shared by every
// other AlgoChat package: ChaCha20-Poly1305 for AEAD, HKDF-SHA256 for key
// derivation, a CSPRNG, and the all-zero check applied to every X25519
// output (the X25519 operation itself lives in package identity). Nothing
// here is configurable; callers never choose an algorithm.
package cryptocore

import "errors"

// Error taxonomy shared across envelope, ratchet, hybrid, counterstate and
// exchange. Kept as a single flat set of sentinels so callers can compare
// with errors.Is regardless of which package raised the error.
var (
	ErrTooShort            = errors.New("algochat: decoded bytes shorter than header+tag minimum")
	ErrUnsupportedVersion  = errors.New("algochat: unsupported envelope version")
	ErrUnsupportedProtocol = errors.New("algochat: unsupported protocol id")
	ErrPayloadTooLarge     = errors.New("algochat: plaintext exceeds protocol maximum")
	ErrInvalidKeyLength    = errors.New("algochat: key material must be exactly 32 bytes")
	ErrBadDHOutput         = errors.New("algochat: all-zero X25519 output")
	ErrDecryptFailed       = errors.New("algochat: decryption failed")
	ErrCounterOverflow     = errors.New("algochat: send counter exhausted")
	ErrCounterReplay       = errors.New("algochat: counter already seen")
	ErrCounterOutOfWindow  = errors.New("algochat: counter outside sliding window")
	ErrNoSessionKey        = errors.New("algochat: no PSK session for peer")
	ErrInvalidURI          = errors.New("algochat: malformed exchange URI")
	ErrStateCorrupt        = errors.New("algochat: counter state blob is corrupt")
	ErrNotChatMessage      = errors.New("algochat: bytes do not match any known protocol")
	ErrStateNotInitialized = errors.New("algochat: counter state used before init")
)
