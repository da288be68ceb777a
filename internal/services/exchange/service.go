package exchange

import (
	"crypto/rsa"
	"encoding/json"

	"github.com/pkg/errors"

	"sealgate/internal/crypto"
	"sealgate/internal/domain"
	"sealgate/internal/packet"
)

// Transform produces a response plaintext from a request plaintext. The
// business logic behind an exchange is supplied by the caller; the service
// only moves ciphertext around it.
type Transform func(plaintext string) (string, error)

// Service handles exchange requests against a fixed private key, loaded once
// at startup and passed in here. It holds no per-request state.
type Service struct {
	priv      *rsa.PrivateKey
	transform Transform
}

// New builds a Service around the server's private key and business transform.
func New(priv *rsa.PrivateKey, transform Transform) *Service {
	return &Service{priv: priv, transform: transform}
}

// Handle runs one full request cycle: decode and unwrap the session key,
// open the request packet, apply the transform, and seal the response under
// the same key. Any failure aborts the request; nothing is retried, nothing
// is cached, and the key and plaintext are discarded before returning.
func (s *Service) Handle(wrappedKeyB64 string, p domain.SymmetricPacket) (domain.SymmetricPacket, error) {
	wrapped, err := crypto.B64uDecode(wrappedKeyB64)
	if err != nil {
		return domain.SymmetricPacket{}, errors.Wrap(domain.ErrUnwrap, "wrapped key decode")
	}
	key, err := crypto.Unwrap(wrapped, s.priv)
	if err != nil {
		return domain.SymmetricPacket{}, err
	}
	defer crypto.Wipe(key)

	plaintext, err := packet.Open(p, key)
	if err != nil {
		return domain.SymmetricPacket{}, err
	}
	response, err := s.transform(plaintext)
	if err != nil {
		return domain.SymmetricPacket{}, errors.Wrap(err, "transforming request")
	}
	return packet.Seal(response, key)
}

// Echo is the demo transform used by the gateway: it nests the request
// object under an "echo" key.
func Echo(plaintext string) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(plaintext), &v); err != nil {
		return "", errors.Wrap(err, "request payload is not JSON")
	}
	b, err := json.Marshal(map[string]any{"echo": v})
	return string(b), err
}
