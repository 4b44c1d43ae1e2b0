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
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "algochat",
	Short: "AlgoChat crypto CLI - envelope, ratchet, and exchange-URI tools",
	Long: `algochat is a demonstration and debugging CLI around the AlgoChat
cryptographic core: deriving messaging identities from an account seed,
sealing and opening base and PSK envelopes, ratcheting a pre-shared key,
inspecting per-peer counter state, and encoding the algochat-psk:// URI
used to hand a PSK to a peer out of band.

This CLI is not a messaging client: it has no notion of an Algorand node,
transaction submission, or a note's destination address beyond what a
caller passes on the command line.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Commands are registered in their respective files:
	// - keygen.go: keygenCmd
	// - encrypt.go: encryptCmd
	// - decrypt.go: decryptCmd
	// - uri.go: uriCmd (with uriEncodeCmd, uriDecodeCmd beneath it)
	// - state.go: stateCmd
}
