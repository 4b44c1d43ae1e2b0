package cryptocore

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// NonceSize is the width of the random ChaCha20-Poly1305 nonce carried in
// every envelope.
const NonceSize = chacha20poly1305.NonceSize

// TagSize is the width of the Poly1305 authentication tag appended to every
// ciphertext.
const TagSize = 16

// Seal encrypts plaintext under key with nonce and no associated data,
// returning ciphertext||tag. key must be exactly KeySize bytes.
func Seal(key, nonce, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("cryptocore: new aead: %w", err)
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open reverses Seal. Any failure - wrong key, tampered ciphertext, wrong
// nonce - is reported as ErrDecryptFailed, never distinguished further, so
// callers cannot build an oracle out of the failure mode.
func Open(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("cryptocore: new aead: %w", err)
	}
	pt, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return pt, nil
}
