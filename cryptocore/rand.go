package cryptocore

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
)

// RandomBytes returns n cryptographically secure random bytes. Used for
// nonces, ephemeral secrets and freshly generated PSKs - every place the
// spec calls for the CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("cryptocore: read random: %w", err)
	}
	return b, nil
}

// Zeroize overwrites b in place. Called on every derived key, shared
// secret and ephemeral scalar once it is no longer needed, on both the
// success and error paths.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// RejectAllZero returns ErrBadDHOutput if b is entirely zero bytes. This is
// the contributory-behaviour check required after every X25519 Diffie-
// Hellman: a low-order peer key can force an all-zero shared secret, and
// accepting it would let an attacker predict the derived key.
func RejectAllZero(b []byte) error {
	zero := make([]byte, len(b))
	if subtle.ConstantTimeCompare(b, zero) == 1 {
		return ErrBadDHOutput
	}
	return nil
}
