package envelope

import "github.com/CorvidLabs/algochat-web/cryptocore"

// EncodeBase concatenates a Base envelope's fields in wire order:
// version, protocol_id, sender_pubkey, ephemeral_pubkey, nonce,
// encrypted_sender_key, ciphertext.
func EncodeBase(e Base) []byte {
	out := make([]byte, 0, BaseHeaderSize+len(e.Ciphertext))
	out = append(out, Version, ProtocolBase)
	out = append(out, e.SenderPubKey[:]...)
	out = append(out, e.EphemeralPubKey[:]...)
	out = append(out, e.Nonce[:]...)
	out = append(out, e.EncryptedSenderKey[:]...)
	out = append(out, e.Ciphertext...)
	return out
}

// DecodeBase parses a base envelope, rejecting anything shorter than the
// header-plus-tag minimum or tagged with an unexpected version/protocol.
func DecodeBase(b []byte) (Base, error) {
	if len(b) < minBaseLen {
		return Base{}, cryptocore.ErrTooShort
	}
	if b[0] != Version {
		return Base{}, cryptocore.ErrUnsupportedVersion
	}
	if b[1] != ProtocolBase {
		return Base{}, cryptocore.ErrUnsupportedProtocol
	}
	if len(b) > MaxEnvelopeSize {
		return Base{}, cryptocore.ErrPayloadTooLarge
	}

	var e Base
	off := 2
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
