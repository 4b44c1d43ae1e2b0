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

// Package ratchet derives a fresh per-message key from a long-lived PSK
// via a two-level HKDF split: a session key every SessionSize messages,
// then a per-position key within that session. A leaked message key
// exposes nothing else; a leaked session key exposes only SessionSize
// consecutive messages.
package ratchet

import "github.com/CorvidLabs/algochat-web/cryptocore"

const (
	// SessionSize is the number of consecutive counters sharing one
	// session key.
	SessionSize = 100

	// CounterWindow is the sliding-window radius; it has the same value as
	// counterstate.Window, which is the constant package counterstate
	// itself uses. Declared here because it is part of the same constant
	// block in the spec this ratchet implements.
	CounterWindow = 200
)

var (
	sessionSalt  = []byte("AlgoChat-PSK-Session")
	positionSalt = []byte("AlgoChat-PSK-Position")
)

// Split decomposes a counter into the session index and in-session
// position the two-level derivation uses.
func Split(counter uint32) (sessionIndex, position uint32) {
	return counter / SessionSize, counter % SessionSize
}

// DeriveSessionKey returns the session_psk for sessionIndex:
//
//	session_psk = HKDF(ikm=initialPSK, salt="AlgoChat-PSK-Session", info=be32(sessionIndex), L=32)
func DeriveSessionKey(initialPSK []byte, sessionIndex uint32) ([]byte, error) {
	if len(initialPSK) != 32 {
		return nil, cryptocore.ErrInvalidKeyLength
	}
	return cryptocore.DeriveKey(initialPSK, sessionSalt, cryptocore.DeriveBE32Info(sessionIndex))
}

// DeriveMessageKey returns the message_psk for counter c:
//
//	session_psk = DeriveSessionKey(initialPSK, c/SessionSize)
//	message_psk = HKDF(ikm=session_psk, salt="AlgoChat-PSK-Position", info=be32(c%SessionSize), L=32)
//
// It is a pure, deterministic function of (initialPSK, c): no randomness,
// no hidden state. The session key is zeroized before return.
func DeriveMessageKey(initialPSK []byte, c uint32) ([]byte, error) {
	sessionIndex, position := Split(c)

	sessionKey, err := DeriveSessionKey(initialPSK, sessionIndex)
	if err != nil {
		return nil, err
	}
	defer cryptocore.Zeroize(sessionKey)

	return cryptocore.DeriveKey(sessionKey, positionSalt, cryptocore.DeriveBE32Info(position))
}
