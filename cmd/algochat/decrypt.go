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

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CorvidLabs/algochat-web/counterstate"
	"github.com/CorvidLabs/algochat-web/dispatcher"
)

var (
	decryptEnvelopeHex   string
	decryptMySecretHex   string
	decryptMyPubHex      string
	decryptInitialPSKHex string
	decryptStateFile     string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Classify and open a raw envelope",
	Long: `Classify --envelope as a base or PSK envelope and decrypt it
against --my-secret/--my-pub. If it classifies as a PSK envelope, --psk
supplies the initial PSK shared with every sender, and --state-file names
the JSON counter-state blob for that sender (as produced by "state new" /
a prior "decrypt" run); the counter is validated against it before
decryption and recorded into it only once decryption succeeds, then the
updated state is written back to --state-file. Pass --psk and
--state-file together whenever the message might be from a PSK session,
and omit both only when certain every incoming envelope is base-protocol.`,
	Example: `  algochat decrypt --envelope <hex> --my-secret <hex> --my-pub <hex>
  algochat decrypt --envelope <hex> --my-secret <hex> --my-pub <hex> \
    --psk <hex32> --state-file peer-alice.json`,
	RunE: runDecrypt,
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().StringVar(&decryptEnvelopeHex, "envelope", "", "raw envelope bytes (hex)")
	decryptCmd.Flags().StringVar(&decryptMySecretHex, "my-secret", "", "receiver's 32-byte X25519 secret (hex)")
	decryptCmd.Flags().StringVar(&decryptMyPubHex, "my-pub", "", "receiver's 32-byte X25519 public key (hex)")
	decryptCmd.Flags().StringVar(&decryptInitialPSKHex, "psk", "", "32-byte initial PSK shared with the sender (hex); required only for PSK envelopes")
	decryptCmd.Flags().StringVar(&decryptStateFile, "state-file", "", "path to the sender's JSON counter-state blob; required only for PSK envelopes")
	_ = decryptCmd.MarkFlagRequired("envelope")
	_ = decryptCmd.MarkFlagRequired("my-secret")
	_ = decryptCmd.MarkFlagRequired("my-pub")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	raw, err := hex.DecodeString(decryptEnvelopeHex)
	if err != nil {
		return fmt.Errorf("invalid --envelope hex: %w", err)
	}
	mySecret, err := hex.DecodeString(decryptMySecretHex)
	if err != nil {
		return fmt.Errorf("invalid --my-secret hex: %w", err)
	}
	myPub, err := hex.DecodeString(decryptMyPubHex)
	if err != nil {
		return fmt.Errorf("invalid --my-pub hex: %w", err)
	}

	var initialPSK []byte
	if decryptInitialPSKHex != "" {
		initialPSK, err = hex.DecodeString(decryptInitialPSKHex)
		if err != nil {
			return fmt.Errorf("invalid --psk hex: %w", err)
		}
	}

	lookup := func(senderPub []byte) ([]byte, bool) {
		if initialPSK == nil {
			return nil, false
		}
		return initialPSK, true
	}

	var state *counterstate.State
	if decryptStateFile != "" {
		state, err = loadOrNewState(decryptStateFile)
		if err != nil {
			return fmt.Errorf("failed to load --state-file: %w", err)
		}
	}

	result, err := dispatcher.Dispatch(raw, mySecret, myPub, lookup, state)
	if err != nil {
		return fmt.Errorf("dispatch failed: %w", err)
	}

	if state != nil {
		if err := saveState(decryptStateFile, state); err != nil {
			return fmt.Errorf("failed to update --state-file: %w", err)
		}
	}

	if result.IsKeyPublish {
		return writeJSON(map[string]interface{}{"type": "key-publish"})
	}
	return writeJSON(map[string]interface{}{
		"text":             result.Plaintext.Text,
		"reply_to_id":      result.Plaintext.ReplyToID,
		"reply_to_preview": result.Plaintext.ReplyToPreview,
		"has_reply_to":     result.Plaintext.HasReplyTo,
	})
}
