package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"

	"github.com/pkg/errors"

	"sealgate/internal/domain"
)

// Wrap encrypts a session key under pub using RSA-OAEP with SHA-256 digest
// and SHA-256 MGF1. The ciphertext is the size of the RSA modulus. The OAEP
// payload capacity (k - 2*hLen - 2) is validated for any modulus size, not
// just the ones where a 32-byte key happens to fit.
func Wrap(key []byte, pub *rsa.PublicKey) ([]byte, error) {
	if max := pub.Size() - 2*sha256.Size - 2; len(key) > max {
		return nil, errors.Wrapf(domain.ErrWrap, "%d-byte key exceeds OAEP capacity of %d", len(key), max)
	}
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, key, nil)
	if err != nil {
		return nil, errors.Wrap(domain.ErrWrap, err.Error())
	}
	return ct, nil
}

// Unwrap recovers a session key produced by Wrap. Every failure mode
// collapses into the single domain.ErrUnwrap so padding internals cannot be
// probed through error differences.
func Unwrap(wrapped []byte, priv *rsa.PrivateKey) ([]byte, error) {
	key, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, wrapped, nil)
	if err != nil {
		return nil, domain.ErrUnwrap
	}
	return key, nil
}
