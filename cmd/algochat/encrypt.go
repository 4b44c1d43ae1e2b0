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

	"github.com/CorvidLabs/algochat-web/envelope"
	"github.com/CorvidLabs/algochat-web/hybrid"
	"github.com/CorvidLabs/algochat-web/ratchet"
)

var (
	encryptSenderPubHex    string
	encryptRecipientPubHex string
	encryptPlaintext       string
	encryptInitialPSKHex   string
	encryptStateFile       string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Seal a plaintext into a base or PSK envelope",
	Long: `Seal plaintext for recipient-pub using sender-pub's identity. If
--psk is given, the PSK envelope is produced at the next counter
AdvanceSend issues from --state-file (the JSON counter-state blob shared
with this recipient, as produced by "state new" or a prior "encrypt"
run), ratcheting --psk via package ratchet's two-level HKDF, the same
derivation decrypt applies; --state-file is written back with the advanced counter on success.
Omit both --psk and --state-file to produce the base envelope instead.`,
	Example: `  algochat encrypt --sender-pub <hex> --recipient-pub <hex> --text "hi"

  algochat encrypt --sender-pub <hex> --recipient-pub <hex> --text "hi" \
    --psk <hex32> --state-file peer-bob.json`,
	RunE: runEncrypt,
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().StringVar(&encryptSenderPubHex, "sender-pub", "", "sender's 32-byte X25519 public key (hex)")
	encryptCmd.Flags().StringVar(&encryptRecipientPubHex, "recipient-pub", "", "recipient's 32-byte X25519 public key (hex)")
	encryptCmd.Flags().StringVar(&encryptPlaintext, "text", "", "plaintext to seal")
	encryptCmd.Flags().StringVar(&encryptInitialPSKHex, "psk", "", "32-byte initial PSK (hex); omit for the base protocol")
	encryptCmd.Flags().StringVar(&encryptStateFile, "state-file", "", "path to this recipient's JSON counter-state blob; required only for the PSK protocol")
	_ = encryptCmd.MarkFlagRequired("sender-pub")
	_ = encryptCmd.MarkFlagRequired("recipient-pub")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	senderPub, err := hex.DecodeString(encryptSenderPubHex)
	if err != nil {
		return fmt.Errorf("invalid --sender-pub hex: %w", err)
	}
	recipientPub, err := hex.DecodeString(encryptRecipientPubHex)
	if err != nil {
		return fmt.Errorf("invalid --recipient-pub hex: %w", err)
	}

	if encryptInitialPSKHex == "" {
		e, err := hybrid.EncryptBase([]byte(encryptPlaintext), senderPub, recipientPub)
		if err != nil {
			return fmt.Errorf("encrypt failed: %w", err)
		}
		return writeJSON(map[string]string{"envelope": hex.EncodeToString(envelope.EncodeBase(e))})
	}

	if encryptStateFile == "" {
		return fmt.Errorf("--state-file is required alongside --psk")
	}

	initialPSK, err := hex.DecodeString(encryptInitialPSKHex)
	if err != nil {
		return fmt.Errorf("invalid --psk hex: %w", err)
	}

	state, err := loadOrNewState(encryptStateFile)
	if err != nil {
		return fmt.Errorf("failed to load --state-file: %w", err)
	}
	counter, err := state.AdvanceSend()
	if err != nil {
		return fmt.Errorf("failed to advance send counter: %w", err)
	}

	messagePSK, err := ratchet.DeriveMessageKey(initialPSK, counter)
	if err != nil {
		return fmt.Errorf("failed to ratchet message key: %w", err)
	}

	e, err := hybrid.EncryptPSK([]byte(encryptPlaintext), senderPub, recipientPub, messagePSK, counter)
	if err != nil {
		return fmt.Errorf("encrypt failed: %w", err)
	}

	if err := saveState(encryptStateFile, state); err != nil {
		return fmt.Errorf("failed to update --state-file: %w", err)
	}
	return writeJSON(map[string]string{"envelope": hex.EncodeToString(envelope.EncodePSK(e))})
}
