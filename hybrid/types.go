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

// Package hybrid implements the hybrid ECDH(+PSK) encryption that produces
// and consumes envelope.Base and envelope.PSK payloads: ephemeral ECDH
// keyed AEAD for the message body, plus a second AEAD-sealed copy of the
// message key under a sender-specific key so the author can recover their
// own plaintext from the ledger without ever storing it.
package hybrid

// Plaintext is the decoded content of a decrypted message whose payload
// was not a key-publish control record. The content sub-format is
// duck-typed: a leading '{' attempts a JSON parse; a string "text" field
// and optional "replyTo" object populate these fields; anything else is
// returned verbatim as Text.
type Plaintext struct {
	Text           string
	ReplyToID      string
	ReplyToPreview string
	HasReplyTo     bool
}

// Result is what Decrypt returns: either a Plaintext or the KeyPublish
// sentinel, never both. Callers that only want user-visible messages
// filter out results with IsKeyPublish set.
type Result struct {
	IsKeyPublish bool
	Plaintext    Plaintext
}
