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

package counterstate

import (
	"encoding/json"
	"sort"

	"github.com/CorvidLabs/algochat-web/cryptocore"
	"gopkg.in/yaml.v3"
)

// wireForm is the JSON shape State persists to, per spec.md section 4.7:
// send_counter, receive_high, and the sorted sequence of seen counters.
type wireForm struct {
	SendCounter uint32   `json:"send_counter" yaml:"send_counter"`
	ReceiveHigh uint32   `json:"receive_high" yaml:"receive_high"`
	Seen        []uint32 `json:"seen" yaml:"seen"`
}

func (s *State) toWire() wireForm {
	seen := make([]uint32, 0, len(s.seen))
	for c := range s.seen {
		seen = append(seen, c)
	}
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	return wireForm{
		SendCounter: s.sendCounter,
		ReceiveHigh: s.receiveHigh,
		Seen:        seen,
	}
}

func fromWire(w wireForm) *State {
	s := &State{
		initialized: true,
		sendCounter: w.SendCounter,
		receiveHigh: w.ReceiveHigh,
		window:      Window,
	}
	s.seen = make(map[uint32]struct{}, len(w.Seen))
	for _, c := range w.Seen {
		s.seen[c] = struct{}{}
	}
	return s
}

// Serialize marshals the state to its wire JSON form, suitable for
// persisting to browser storage alongside the peer's PSK.
func (s *State) Serialize() ([]byte, error) {
	if !s.initialized {
		return nil, cryptocore.ErrStateNotInitialized
	}
	return json.Marshal(s.toWire())
}

// Deserialize parses a blob produced by Serialize. Any in-range
// send_counter/receive_high/seen values are accepted; malformed JSON
// returns ErrStateCorrupt. The caller should fall back to a fresh state
// only with explicit user consent, per spec.md section 4.7.
func Deserialize(blob []byte) (*State, error) {
	var w wireForm
	if err := json.Unmarshal(blob, &w); err != nil {
		return nil, cryptocore.ErrStateCorrupt
	}
	return fromWire(w), nil
}

// DebugYAML renders the state as YAML for CLI inspection (cmd/algochat
// state inspect). Never used on the wire; Serialize/Deserialize own that
// format.
func (s *State) DebugYAML() ([]byte, error) {
	if !s.initialized {
		return nil, cryptocore.ErrStateNotInitialized
	}
	return yaml.Marshal(s.toWire())
}
