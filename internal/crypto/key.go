package crypto

import (
	"crypto/rand"

	"sealgate/internal/domain"
)

// NewSessionKey returns 32 fresh random bytes for AES-256. Every wrap event
// gets its own key; keys are never reused across sessions.
func NewSessionKey() ([]byte, error) {
	k := make([]byte, domain.SessionKeyBytes)
	if _, err := rand.Read(k); err != nil {
		return nil, err
	}
	return k, nil
}
