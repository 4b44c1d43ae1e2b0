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

// Package counterstate tracks, per PSK peer, the send counter this client
// has emitted and the sliding window of receive counters it has accepted.
// It holds no locks and starts no goroutines: the caller owns one State per
// peer and must serialise its own access to it, exactly as spec.md section
// 5's resource model requires. There is no global registry of peers here,
// unlike the teacher's NonceCache - that map belongs to the caller.
package counterstate

import "github.com/CorvidLabs/algochat-web/cryptocore"

// Window is the default sliding-window radius: a received counter within
// Window of the current high-water mark is accepted even out of order.
// This is COUNTER_WINDOW's default; Config.WindowSize overrides it.
const Window = 200

// Config is the one configurable surface of counterstate: the sliding
// window radius. Tests exercise small windows this way instead of waiting
// on hundreds of real counters; production callers leave WindowSize at its
// zero value to get the spec default.
type Config struct {
	// WindowSize overrides Window when non-zero.
	WindowSize uint32
}

func (cfg Config) windowSize() uint32 {
	if cfg.WindowSize == 0 {
		return Window
	}
	return cfg.WindowSize
}

// ReceiveOutcome classifies the result of ValidateReceive.
type ReceiveOutcome int

const (
	// ReceiveOK means c is neither a replay nor outside the window; the
	// caller should attempt decryption and, on success, call RecordReceive.
	ReceiveOK ReceiveOutcome = iota
	// ReceiveReplay means c has already been recorded.
	ReceiveReplay
	// ReceiveOutOfWindow means c falls outside [receive_high-window,
	// receive_high+window].
	ReceiveOutOfWindow
)

// State is one peer's counter bookkeeping. The zero value is not usable;
// call Init before any Advance/Validate/Record call.
type State struct {
	initialized bool
	sendCounter uint32
	receiveHigh uint32
	seen        map[uint32]struct{}
	window      uint32
}

// New returns an initialized, empty State using the default window.
// Equivalent to NewWithConfig(Config{}).
func New() *State {
	return NewWithConfig(Config{})
}

// NewWithConfig returns an initialized, empty State using cfg's window.
func NewWithConfig(cfg Config) *State {
	s := &State{}
	s.InitWithConfig(cfg)
	return s
}

// Init transitions the state from Initial to Live using the default
// window. Safe to call on an already-live state to reset it to empty.
func (s *State) Init() {
	s.InitWithConfig(Config{})
}

// InitWithConfig is Init with an explicit window radius.
func (s *State) InitWithConfig(cfg Config) {
	s.initialized = true
	s.sendCounter = 0
	s.receiveHigh = 0
	s.seen = make(map[uint32]struct{})
	s.window = cfg.windowSize()
}

// AdvanceSend returns the next counter to use for an outgoing message and
// increments the internal send counter. Returns ErrCounterOverflow once
// every uint32 value has been issued.
func (s *State) AdvanceSend() (uint32, error) {
	if !s.initialized {
		return 0, cryptocore.ErrStateNotInitialized
	}
	if s.sendCounter == ^uint32(0) {
		return 0, cryptocore.ErrCounterOverflow
	}
	c := s.sendCounter
	s.sendCounter++
	return c, nil
}

// ValidateReceive reports whether c may be accepted, without mutating any
// state. The caller should only proceed to decrypt on ReceiveOK, and must
// call RecordReceive itself after a successful decryption - this function
// never records anything.
func (s *State) ValidateReceive(c uint32) (ReceiveOutcome, error) {
	if !s.initialized {
		return ReceiveOutOfWindow, cryptocore.ErrStateNotInitialized
	}

	if _, ok := s.seen[c]; ok {
		return ReceiveReplay, nil
	}
	if len(s.seen) == 0 {
		return ReceiveOK, nil
	}

	low := uint32(0)
	if s.receiveHigh > s.window {
		low = s.receiveHigh - s.window
	}
	high := s.receiveHigh + s.window

	if c >= low && c <= high {
		return ReceiveOK, nil
	}
	return ReceiveOutOfWindow, nil
}

// RecordReceive inserts c into the seen set, advances the high-water mark
// if c exceeds it, and prunes any entry that has fallen more than the
// state's window radius behind the new high-water mark. Call this only after decryption with
// counter c has already succeeded: recording an unverified counter would
// let an attacker poison the window with forged ciphertexts.
func (s *State) RecordReceive(c uint32) error {
	if !s.initialized {
		return cryptocore.ErrStateNotInitialized
	}

	s.seen[c] = struct{}{}
	if c > s.receiveHigh {
		s.receiveHigh = c
	}

	floor := uint32(0)
	if s.receiveHigh > s.window {
		floor = s.receiveHigh - s.window
	}
	for seenC := range s.seen {
		if seenC < floor {
			delete(s.seen, seenC)
		}
	}
	return nil
}

// SendCounter returns the next counter AdvanceSend would issue.
func (s *State) SendCounter() uint32 {
	return s.sendCounter
}

// ReceiveHigh returns the current receive high-water mark.
func (s *State) ReceiveHigh() uint32 {
	return s.receiveHigh
}
