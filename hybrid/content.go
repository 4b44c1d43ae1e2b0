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

package hybrid

import "encoding/json"

// replyToPayload mirrors the optional "replyTo" sub-object a rich-text
// message may carry.
type replyToPayload struct {
	ID      string `json:"id"`
	Preview string `json:"preview"`
}

// contentPayload is the duck-typed shape decrypted plaintext may parse as.
// Only Type and Text are required to be present for their respective
// branches; everything else is optional.
type contentPayload struct {
	Type    string          `json:"type"`
	Text    *string         `json:"text"`
	ReplyTo *replyToPayload `json:"replyTo"`
}

// parseResult wraps ParsePlaintext's two possible shapes into the Result
// envelope Decrypt returns.
func parseResult(raw []byte) Result {
	pt, isKeyPublish := ParsePlaintext(raw)
	if isKeyPublish {
		return Result{IsKeyPublish: true}
	}
	return Result{Plaintext: pt}
}

// ParsePlaintext implements the plaintext content sub-format from spec
// section 4.6/9: decrypted bytes may be a key-publish control record, a
// {text, replyTo} rich object, or - if they don't look like JSON at all,
// or parsing fails, or the object has none of the recognised shapes -
// returned verbatim as Text. The core does not otherwise interpret the
// content; this is a convenience parse callers may ignore entirely.
func ParsePlaintext(raw []byte) (Plaintext, bool) {
	if len(raw) == 0 || raw[0] != '{' {
		return Plaintext{Text: string(raw)}, false
	}

	var payload contentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Plaintext{Text: string(raw)}, false
	}

	if payload.Type == "key-publish" {
		return Plaintext{}, true
	}

	if payload.Text != nil {
		pt := Plaintext{Text: *payload.Text}
		if payload.ReplyTo != nil {
			pt.HasReplyTo = true
			pt.ReplyToID = payload.ReplyTo.ID
			pt.ReplyToPreview = payload.ReplyTo.Preview
		}
		return pt, false
	}

	return Plaintext{Text: string(raw)}, false
}
