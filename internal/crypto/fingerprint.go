package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short hex fingerprint of normalized PEM key material.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars). The
// session cache is keyed by this value so it never holds PEM text itself.
func Fingerprint(pem string) string {
	sum := sha256.Sum256([]byte(pem))
	return hex.EncodeToString(sum[:10])
}
