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

// Package exchange encodes and decodes the algochat-psk:// URI used to
// hand a pre-shared key to a peer out of band (QR code, messaging app,
// in person). It never touches the network; encode/decode are pure
// string transforms.
package exchange

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/CorvidLabs/algochat-web/cryptocore"
)

const (
	scheme     = "algochat-psk"
	schemeHost = "v1"
)

// PSKLink is the decoded form of an algochat-psk:// URI.
type PSKLink struct {
	Address string
	PSK     []byte
	Label   string
}

// Encode renders addr, psk (must be exactly 32 bytes) and an optional label
// as:
//
//	algochat-psk://v1?addr={address}&psk={base64url_nopad(psk)}&label={urlencoded(label)}
//
// label is omitted from the query string entirely when empty.
func Encode(addr string, psk []byte, label string) (string, error) {
	if len(psk) != 32 {
		return "", cryptocore.ErrInvalidKeyLength
	}

	query := "addr=" + url.QueryEscape(addr) +
		"&psk=" + base64.RawURLEncoding.EncodeToString(psk)
	if label != "" {
		query += "&label=" + url.QueryEscape(label)
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     schemeHost,
		RawQuery: query,
	}
	return u.String(), nil
}

// Decode parses a URI produced by Encode. Any scheme other than
// "algochat-psk" or host other than "v1" is rejected, as is a missing addr
// or psk parameter, or a psk that does not decode to exactly 32 bytes. A
// missing label decodes to the empty string.
func Decode(raw string) (PSKLink, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return PSKLink{}, cryptocore.ErrInvalidURI
	}
	if !strings.EqualFold(u.Scheme, scheme) || u.Host != schemeHost {
		return PSKLink{}, cryptocore.ErrInvalidURI
	}

	q := u.Query()
	addr := q.Get("addr")
	pskB64 := q.Get("psk")
	if addr == "" || pskB64 == "" {
		return PSKLink{}, cryptocore.ErrInvalidURI
	}

	psk, err := base64.RawURLEncoding.DecodeString(pskB64)
	if err != nil {
		return PSKLink{}, cryptocore.ErrInvalidURI
	}
	if len(psk) != 32 {
		return PSKLink{}, cryptocore.ErrInvalidKeyLength
	}

	return PSKLink{
		Address: addr,
		PSK:     psk,
		Label:   q.Get("label"),
	}, nil
}
