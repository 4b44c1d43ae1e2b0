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

// Package dispatcher classifies a raw Algorand transaction note and routes
// it to the matching envelope codec and hybrid decrypt call. It is the
// only package in this module that touches ambient logging: every other
// package is a pure function of its inputs, but a dispatcher sits at the
// boundary where "this note is not one of ours" and "this note is ours but
// we have no session key for it" are routine, expected outcomes worth a
// diagnostic trail rather than a returned error alone.
package dispatcher

import (
	"github.com/google/uuid"

	"github.com/CorvidLabs/algochat-web/counterstate"
	"github.com/CorvidLabs/algochat-web/cryptocore"
	"github.com/CorvidLabs/algochat-web/envelope"
	"github.com/CorvidLabs/algochat-web/hybrid"
	"github.com/CorvidLabs/algochat-web/internal/logger"
	"github.com/CorvidLabs/algochat-web/ratchet"
)

// PSKProvider resolves the long-lived initial_psk shared with the sender
// identified by senderPub. Dispatch ratchets the correct per-counter key
// from whatever this returns; it never sees a raw message key directly.
type PSKProvider func(senderPub []byte) (initialPSK []byte, ok bool)

// Dispatch classifies raw, decodes it with the matching codec, derives
// whatever key material that protocol needs, and decrypts it against
// myPub/mySecret. psk is consulted only when raw classifies as a PSK
// envelope; pass a provider that always returns ok=false if the caller
// supports base-protocol messages only.
//
// state is the caller's counter state for the peer raw was received from.
// For a PSK envelope, Dispatch calls state.ValidateReceive before
// attempting decryption and state.RecordReceive only after decryption
// succeeds, per the envelope's mandatory replay-protection data flow; a
// nil state is only valid when the caller guarantees it will never see a
// PSK envelope (mirroring a PSKProvider that always returns ok=false), and
// Dispatch rejects a PSK envelope with cryptocore.ErrStateNotInitialized
// in that case. Base envelopes carry no counter and never consult state.
//
// Returns cryptocore.ErrNotChatMessage if raw matches neither protocol's
// magic bytes - callers use this to skip transactions unrelated to
// AlgoChat - cryptocore.ErrNoSessionKey if raw is a PSK envelope from a
// sender with no known shared secret, and cryptocore.ErrCounterReplay /
// cryptocore.ErrCounterOutOfWindow if the envelope's counter fails the
// sliding-window check.
func Dispatch(raw []byte, mySecret, myPub []byte, psk PSKProvider, state *counterstate.State) (hybrid.Result, error) {
	correlationID := uuid.NewString()
	log := logger.GetDefaultLogger().WithFields(logger.String("correlation_id", correlationID))

	switch {
	case envelope.IsBase(raw):
		e, err := envelope.DecodeBase(raw)
		if err != nil {
			log.Warn("base envelope failed to decode", logger.Error(err))
			return hybrid.Result{}, err
		}
		result, err := hybrid.DecryptBase(e, mySecret, myPub)
		if err != nil {
			log.Warn("base envelope decrypt failed", logger.Error(err))
			return hybrid.Result{}, err
		}
		log.Debug("base envelope decrypted")
		return result, nil

	case envelope.IsPSK(raw):
		e, err := envelope.DecodePSK(raw)
		if err != nil {
			log.Warn("psk envelope failed to decode", logger.Error(err))
			return hybrid.Result{}, err
		}

		initialPSK, ok := psk(e.SenderPubKey[:])
		if !ok {
			log.Info("psk envelope from peer with no session key", logger.Uint32("counter", e.Counter))
			return hybrid.Result{}, cryptocore.ErrNoSessionKey
		}

		if state == nil {
			log.Warn("psk envelope received with no counter state", logger.Uint32("counter", e.Counter))
			return hybrid.Result{}, cryptocore.ErrStateNotInitialized
		}

		outcome, err := state.ValidateReceive(e.Counter)
		if err != nil {
			return hybrid.Result{}, err
		}
		switch outcome {
		case counterstate.ReceiveReplay:
			log.Warn("psk envelope counter already seen", logger.Uint32("counter", e.Counter))
			return hybrid.Result{}, cryptocore.ErrCounterReplay
		case counterstate.ReceiveOutOfWindow:
			log.Warn("psk envelope counter outside sliding window", logger.Uint32("counter", e.Counter))
			return hybrid.Result{}, cryptocore.ErrCounterOutOfWindow
		}

		messagePSK, err := ratchet.DeriveMessageKey(initialPSK, e.Counter)
		if err != nil {
			return hybrid.Result{}, err
		}
		defer cryptocore.Zeroize(messagePSK)

		result, err := hybrid.DecryptPSK(e, mySecret, myPub, messagePSK)
		if err != nil {
			log.Warn("psk envelope decrypt failed", logger.Uint32("counter", e.Counter), logger.Error(err))
			return hybrid.Result{}, err
		}

		// Only a verified decrypt may advance the window - recording an
		// unauthenticated counter would let an attacker poison it.
		if err := state.RecordReceive(e.Counter); err != nil {
			return hybrid.Result{}, err
		}

		log.Debug("psk envelope decrypted", logger.Uint32("counter", e.Counter))
		return result, nil

	default:
		log.Debug("note matches neither protocol")
		return hybrid.Result{}, cryptocore.ErrNotChatMessage
	}
}
