package domain

import "time"

// SessionTTL bounds how long a wrapped session key is reused before a fresh
// one is generated. The window caps the exposure of a compromised key without
// requiring any server-side coordination.
const SessionTTL = 15 * time.Minute

// SessionKeyBytes is the AES-256 key length.
const SessionKeyBytes = 32

// Session is the initiating side's cached session key state. It exists only
// in memory and is never persisted across process restarts.
type Session struct {
	Fingerprint   string // fingerprint of the wrapping public key
	RawKey        []byte // exactly SessionKeyBytes bytes, fresh per session
	WrappedKeyB64 string // OAEP-wrapped RawKey, base64url no padding
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// ValidAt reports whether the session may be used at t for the public key
// identified by fp. Validity is checked on every use, never assumed.
func (s Session) ValidAt(fp string, t time.Time) bool {
	return s.Fingerprint == fp && len(s.RawKey) == SessionKeyBytes && t.Before(s.ExpiresAt)
}
