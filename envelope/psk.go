package envelope

import (
	"encoding/binary"

	"github.com/CorvidLabs/algochat-web/cryptocore"
)

// EncodePSK concatenates a PSK envelope's fields in wire order, identical
// to EncodeBase but with a big-endian counter inserted right after
// protocol_id.
func EncodePSK(e PSK) []byte {
	out := make([]byte, 0, PSKHeaderSize+len(e.Ciphertext))
	out = append(out, Version, ProtocolPSK)
	var counterBuf [4]byte
	binary.BigEndian.PutUint32(counterBuf[:], e.Counter)
	out = append(out, counterBuf[:]...)
	out = append(out, e.SenderPubKey[:]...)
	out = append(out, e.EphemeralPubKey[:]...)
	out = append(out, e.Nonce[:]...)
	out = append(out, e.EncryptedSenderKey[:]...)
	out = append(out, e.Ciphertext...)
	return out
}

// DecodePSK parses a PSK envelope with the same failure modes as
// DecodeBase, plus the shifted offsets the counter field introduces.
func DecodePSK(b []byte) (PSK, error) {
	if len(b) < minPSKLen {
		return PSK{}, cryptocore.ErrTooShort
	}
	if b[0] != Version {
		return PSK{}, cryptocore.ErrUnsupportedVersion
	}
	if b[1] != ProtocolPSK {
		return PSK{}, cryptocore.ErrUnsupportedProtocol
	}
	if len(b) > MaxEnvelopeSize {
		return PSK{}, cryptocore.ErrPayloadTooLarge
	}

	var e PSK
	e.Counter = binary.BigEndian.Uint32(b[2:6])
	off := 6
	copy(e.SenderPubKey[:], b[off:off+pubKeySize])
	off += pubKeySize
	copy(e.EphemeralPubKey[:], b[off:off+pubKeySize])
	off += pubKeySize
	copy(e.Nonce[:], b[off:off+nonceSize])
	off += nonceSize
	copy(e.EncryptedSenderKey[:], b[off:off+sealedKeySize])
	off += sealedKeySize
	e.Ciphertext = append([]byte(nil), b[off:]...)
	return e, nil
}
