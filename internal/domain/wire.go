package domain

import "encoding/json"

// Wire format versions and algorithm tags. All binary wire fields are
// base64url-encoded without padding.
const (
	PacketVersion   = 1
	EnvelopeVersion = 1

	AlgRSAOAEP256       = "RSA-OAEP-256"
	AlgAES256GCM        = "AES-256-GCM"
	AlgChaCha20Poly1305 = "CHACHA20-POLY1305"
)

// SymmetricPacket is the self-describing AEAD wire value. The authentication
// tag is part of CiphertextB64 per the AEAD convention.
type SymmetricPacket struct {
	V             int    `json:"v"`
	SymAlg        string `json:"sym_alg"`
	NonceB64      string `json:"nonce_b64"`
	CiphertextB64 string `json:"ciphertext_b64"`
}

// Encode serializes the packet to its wire string form.
func (p SymmetricPacket) Encode() (string, error) {
	b, err := json.Marshal(p)
	return string(b), err
}

// DecodePacket parses a serialized SymmetricPacket. Unknown versions are
// rejected here so a future format change fails closed rather than silently
// misreading fields.
func DecodePacket(s string) (SymmetricPacket, error) {
	var p SymmetricPacket
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return SymmetricPacket{}, err
	}
	if p.V != PacketVersion {
		return SymmetricPacket{}, ErrUnsupportedVersion
	}
	return p, nil
}

// WrappedKeyEnvelope is what the session manager hands back to its caller.
// It stays local; only WrappedKeyB64 travels on the wire.
type WrappedKeyEnvelope struct {
	V             int    `json:"v"`
	Alg           string `json:"alg"`
	SymAlg        string `json:"sym_alg"`
	WrappedKeyB64 string `json:"wrapped_key_b64"`
	Fresh         bool   `json:"fresh"`
	CreatedMS     int64  `json:"created_ms"`
}

// RequestEnvelope is the client-to-server wire value. Payload is a
// SymmetricPacket serialized to a string.
type RequestEnvelope struct {
	WrappedKeyB64 string `json:"wrapped_key_b64"`
	Payload       string `json:"payload"`
}

// ResponseEnvelope is the server-to-client wire value. On success Payload
// carries a serialized SymmetricPacket; on failure Error carries a taxonomy
// message and nothing else.
type ResponseEnvelope struct {
	OK      bool   `json:"ok"`
	Payload string `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}
