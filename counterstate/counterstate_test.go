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
	"testing"

	"github.com/CorvidLabs/algochat-web/cryptocore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUninitializedStateRejectsOperations(t *testing.T) {
	var s State
	_, err := s.AdvanceSend()
	assert.ErrorIs(t, err, cryptocore.ErrStateNotInitialized)

	_, err = s.ValidateReceive(0)
	assert.ErrorIs(t, err, cryptocore.ErrStateNotInitialized)

	err = s.RecordReceive(0)
	assert.ErrorIs(t, err, cryptocore.ErrStateNotInitialized)
}

// TestAdvanceSendScenario is spec section 8 scenario 6's send half: three
// calls return 0, 1, 2 and leave send_counter at 3.
func TestAdvanceSendScenario(t *testing.T) {
	s := New()

	c0, err := s.AdvanceSend()
	require.NoError(t, err)
	c1, err := s.AdvanceSend()
	require.NoError(t, err)
	c2, err := s.AdvanceSend()
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1, 2}, []uint32{c0, c1, c2})
	assert.Equal(t, uint32(3), s.SendCounter())
}

func TestAdvanceSendOverflow(t *testing.T) {
	s := New()
	s.sendCounter = ^uint32(0)

	_, err := s.AdvanceSend()
	assert.ErrorIs(t, err, cryptocore.ErrCounterOverflow)
}

func TestBootstrapAcceptsAnyFirstCounter(t *testing.T) {
	s := New()

	outcome, err := s.ValidateReceive(999_999)
	require.NoError(t, err)
	assert.Equal(t, ReceiveOK, outcome)
}

// TestRecordReceiveScenario is spec section 8 scenario 6's receive half:
// recording 0, then 100, then 500 prunes 0 because 500-200 > 0. With
// receive_high at 100 the window is [0, 300], so 500 validates as out of
// window before it is recorded, and once it is recorded everything below
// 300 - including 100 - is pruned.
func TestRecordReceiveScenario(t *testing.T) {
	s := New()

	steps := []struct {
		c    uint32
		want ReceiveOutcome
	}{
		{0, ReceiveOK},
		{100, ReceiveOK},
		{500, ReceiveOutOfWindow},
	}
	for _, step := range steps {
		outcome, err := s.ValidateReceive(step.c)
		require.NoError(t, err)
		require.Equal(t, step.want, outcome, "counter %d", step.c)
		require.NoError(t, s.RecordReceive(step.c))
	}

	assert.Equal(t, uint32(500), s.ReceiveHigh())
	_, stillSeen := s.seen[0]
	assert.False(t, stillSeen, "0 should have been pruned once receive_high reached 500")
	_, stillSeen100 := s.seen[100]
	assert.False(t, stillSeen100, "100 should have been pruned once receive_high reached 500")
	_, stillSeen500 := s.seen[500]
	assert.True(t, stillSeen500)
}

func TestReplayDetected(t *testing.T) {
	s := New()
	require.NoError(t, s.RecordReceive(10))

	outcome, err := s.ValidateReceive(10)
	require.NoError(t, err)
	assert.Equal(t, ReceiveReplay, outcome)
}

func TestOutOfWindowRejected(t *testing.T) {
	s := New()
	require.NoError(t, s.RecordReceive(1000))

	outcome, err := s.ValidateReceive(1000 - Window - 1)
	require.NoError(t, err)
	assert.Equal(t, ReceiveOutOfWindow, outcome)

	outcome, err = s.ValidateReceive(1000 + Window + 1)
	require.NoError(t, err)
	assert.Equal(t, ReceiveOutOfWindow, outcome)
}

func TestWindowBoundaryInclusive(t *testing.T) {
	s := New()
	require.NoError(t, s.RecordReceive(1000))

	outcome, err := s.ValidateReceive(1000 - Window)
	require.NoError(t, err)
	assert.Equal(t, ReceiveOK, outcome)

	outcome, err = s.ValidateReceive(1000 + Window)
	require.NoError(t, err)
	assert.Equal(t, ReceiveOK, outcome)
}

func TestUnrecordedFailedDecryptDoesNotPoisonWindow(t *testing.T) {
	s := New()
	require.NoError(t, s.RecordReceive(50))

	// A counter that validates OK but whose ciphertext fails AEAD
	// authentication must never reach RecordReceive.
	outcome, err := s.ValidateReceive(51)
	require.NoError(t, err)
	require.Equal(t, ReceiveOK, outcome)

	assert.Equal(t, uint32(50), s.ReceiveHigh())
	_, seen := s.seen[51]
	assert.False(t, seen)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	s := New()
	for _, c := range []uint32{0, 5, 9, 100} {
		require.NoError(t, s.RecordReceive(c))
	}
	_, err := s.AdvanceSend()
	require.NoError(t, err)

	blob, err := s.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(blob)
	require.NoError(t, err)
	assert.Equal(t, s.SendCounter(), restored.SendCounter())
	assert.Equal(t, s.ReceiveHigh(), restored.ReceiveHigh())
	assert.Equal(t, s.seen, restored.seen)
}

func TestDeserializeCorruptBlob(t *testing.T) {
	_, err := Deserialize([]byte("not json"))
	assert.ErrorIs(t, err, cryptocore.ErrStateCorrupt)
}

func TestDebugYAMLIncludesFields(t *testing.T) {
	s := New()
	require.NoError(t, s.RecordReceive(3))

	out, err := s.DebugYAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "receive_high")
	assert.Contains(t, string(out), "send_counter")
}

// TestNewWithConfigNarrowsWindow exercises the one configurable surface:
// a small WindowSize rejects counters the default 200-wide window would
// have accepted, without waiting on hundreds of real messages.
func TestNewWithConfigNarrowsWindow(t *testing.T) {
	s := NewWithConfig(Config{WindowSize: 5})
	require.NoError(t, s.RecordReceive(100))

	outcome, err := s.ValidateReceive(106)
	require.NoError(t, err)
	assert.Equal(t, ReceiveOutOfWindow, outcome)

	outcome, err = s.ValidateReceive(105)
	require.NoError(t, err)
	assert.Equal(t, ReceiveOK, outcome)
}

func TestConfigZeroValueIsDefaultWindow(t *testing.T) {
	s := NewWithConfig(Config{})
	require.NoError(t, s.RecordReceive(1000))

	outcome, err := s.ValidateReceive(1000 - Window)
	require.NoError(t, err)
	assert.Equal(t, ReceiveOK, outcome)
}

// FuzzValidateReceive checks that validation never panics for any u32
// counter against any prior history, matching the teacher's
// session/fuzz_test.go convention of seeding a few interesting inputs and
// letting go test -fuzz explore from there.
func FuzzValidateReceive(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(1))
	f.Add(^uint32(0))
	f.Add(uint32(Window))
	f.Add(uint32(Window + 1))

	f.Fuzz(func(t *testing.T, c uint32) {
		s := New()
		_, _ = s.ValidateReceive(c)
		_ = s.RecordReceive(c)
		_, _ = s.ValidateReceive(c + 1)
	})
}
