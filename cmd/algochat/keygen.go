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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CorvidLabs/algochat-web/identity"
)

var keygenSeedHex string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Derive or generate an X25519 messaging identity",
	Long: `Derive the deterministic messaging identity for a 32-byte account
seed (--seed), or generate a fresh ephemeral key pair if --seed is omitted.`,
	Example: `  # Deterministic identity from an account seed
  algochat keygen --seed 0000000000000000000000000000000000000000000000000000000000000001

  # Fresh ephemeral key pair
  algochat keygen`,
	RunE: runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringVar(&keygenSeedHex, "seed", "", "32-byte hex account seed (omit for a fresh ephemeral key pair)")
}

type keyPairOutput struct {
	Secret string `json:"secret"`
	Public string `json:"public"`
}

func runKeygen(cmd *cobra.Command, args []string) error {
	var kp identity.KeyPair
	var err error

	if keygenSeedHex == "" {
		kp, err = identity.GenerateEphemeralKeyPair()
	} else {
		var seed []byte
		seed, err = hex.DecodeString(keygenSeedHex)
		if err != nil {
			return fmt.Errorf("invalid --seed hex: %w", err)
		}
		kp, err = identity.DeriveIdentityKeyPair(seed)
	}
	if err != nil {
		return fmt.Errorf("failed to derive key pair: %w", err)
	}
	defer kp.Zeroize()

	out := keyPairOutput{
		Secret: hex.EncodeToString(kp.SecretBytes()),
		Public: hex.EncodeToString(kp.PublicBytes()),
	}
	return writeJSON(out)
}

func writeJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
