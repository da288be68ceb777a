// Package packet implements the versioned symmetric wire packet: AEAD
// encryption of a UTF-8 plaintext into a self-describing, tamper-evident
// value. The codec never parses JSON; callers JSON-encode structured payloads
// before Seal and JSON-decode the string returned by Open.
package packet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"

	"sealgate/internal/crypto"
	"sealgate/internal/domain"
)

// newAEAD constructs the AEAD registered under alg for a 32-byte key.
// Unrecognized algorithms fail closed.
func newAEAD(alg string, key []byte) (cipher.AEAD, error) {
	if len(key) != domain.SessionKeyBytes {
		return nil, errors.Errorf("key must be %d bytes, got %d", domain.SessionKeyBytes, len(key))
	}
	switch alg {
	case domain.AlgAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case domain.AlgChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, errors.Wrapf(domain.ErrUnsupportedVersion, "sym_alg %q", alg)
	}
}

// Seal encrypts plaintext under key with AES-256-GCM. A fresh nonce is drawn
// from crypto/rand on every call and nowhere else; nonce reuse under one key
// breaks GCM outright, so there is no counter to share or misuse.
func Seal(plaintext string, key []byte) (domain.SymmetricPacket, error) {
	return SealWith(domain.AlgAES256GCM, plaintext, key)
}

// SealWith is Seal with an explicit registered algorithm.
func SealWith(alg, plaintext string, key []byte) (domain.SymmetricPacket, error) {
	aead, err := newAEAD(alg, key)
	if err != nil {
		return domain.SymmetricPacket{}, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return domain.SymmetricPacket{}, err
	}
	ct := aead.Seal(nil, nonce, []byte(plaintext), nil)
	return domain.SymmetricPacket{
		V:             domain.PacketVersion,
		SymAlg:        alg,
		NonceB64:      crypto.B64u(nonce),
		CiphertextB64: crypto.B64u(ct),
	}, nil
}

// Open verifies and decrypts a packet. Unknown versions or algorithm tags
// fail with domain.ErrUnsupportedVersion. Any integrity failure, wrong key
// included, is the bare domain.ErrTamper: no partial plaintext, no hint of
// which part failed.
func Open(p domain.SymmetricPacket, key []byte) (string, error) {
	if p.V != domain.PacketVersion {
		return "", errors.Wrapf(domain.ErrUnsupportedVersion, "v=%d", p.V)
	}
	aead, err := newAEAD(p.SymAlg, key)
	if err != nil {
		return "", err
	}
	nonce, err := crypto.B64uDecode(p.NonceB64)
	if err != nil {
		return "", domain.ErrTamper
	}
	ct, err := crypto.B64uDecode(p.CiphertextB64)
	if err != nil {
		return "", domain.ErrTamper
	}
	if len(nonce) != aead.NonceSize() {
		return "", domain.ErrTamper
	}
	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", domain.ErrTamper
	}
	return string(pt), nil
}
