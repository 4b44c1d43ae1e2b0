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

	"github.com/CorvidLabs/algochat-web/exchange"
)

var (
	uriAddr    string
	uriPSKHex  string
	uriLabel   string
	uriEncoded string
)

var uriCmd = &cobra.Command{
	Use:   "uri",
	Short: "Encode or decode an algochat-psk:// exchange URI",
}

var uriEncodeCmd = &cobra.Command{
	Use:     "encode",
	Short:   "Encode an address, PSK, and optional label into a URI",
	Example: `  algochat uri encode --addr ADDR --psk <hex32> --label "Bob & Alice <3"`,
	RunE:    runURIEncode,
}

var uriDecodeCmd = &cobra.Command{
	Use:     "decode",
	Short:   "Decode an algochat-psk:// URI",
	Example: `  algochat uri decode --uri 'algochat-psk://v1?addr=ADDR&psk=...&label=...'`,
	RunE:    runURIDecode,
}

func init() {
	rootCmd.AddCommand(uriCmd)
	uriCmd.AddCommand(uriEncodeCmd)
	uriCmd.AddCommand(uriDecodeCmd)

	uriEncodeCmd.Flags().StringVar(&uriAddr, "addr", "", "Algorand address")
	uriEncodeCmd.Flags().StringVar(&uriPSKHex, "psk", "", "32-byte PSK (hex)")
	uriEncodeCmd.Flags().StringVar(&uriLabel, "label", "", "optional human-readable label")
	_ = uriEncodeCmd.MarkFlagRequired("addr")
	_ = uriEncodeCmd.MarkFlagRequired("psk")

	uriDecodeCmd.Flags().StringVar(&uriEncoded, "uri", "", "algochat-psk:// URI")
	_ = uriDecodeCmd.MarkFlagRequired("uri")
}

func runURIEncode(cmd *cobra.Command, args []string) error {
	psk, err := hex.DecodeString(uriPSKHex)
	if err != nil {
		return fmt.Errorf("invalid --psk hex: %w", err)
	}

	uri, err := exchange.Encode(uriAddr, psk, uriLabel)
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}
	return writeJSON(map[string]string{"uri": uri})
}

func runURIDecode(cmd *cobra.Command, args []string) error {
	link, err := exchange.Decode(uriEncoded)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return writeJSON(map[string]string{
		"addr":  link.Address,
		"psk":   hex.EncodeToString(link.PSK),
		"label": link.Label,
	})
}
