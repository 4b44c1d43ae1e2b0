package cryptocore

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the width, in bytes, of every symmetric key and DH secret this
// module ever derives or consumes.
const KeySize = 32

// DeriveKey runs HKDF-SHA256(ikm, salt, info) and reads exactly KeySize
// bytes from the expand step. Every call site in this module uses a
// distinct (salt, info) pair so derivations never collide with each other.
func DeriveKey(ikm, salt, info []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, ikm, salt, info)
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("cryptocore: hkdf expand: %w", err)
	}
	return key, nil
}

// DeriveBE32Info builds the 4-byte big-endian info parameter the ratchet
// uses for its session/position split. Kept here, not in package ratchet,
// because the exact byte layout is part of the primitives contract: any
// implementation that gets this wrong breaks interoperability.
func DeriveBE32Info(n uint32) []byte {
	return []byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
}
