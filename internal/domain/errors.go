package domain

import "errors"

// Failure taxonomy for the exchange core. Callers match with errors.Is; none
// of these are retried internally — retry policy, if any, belongs to callers.
var (
	// ErrKeyFormat reports PEM/DER key material that failed to parse after
	// normalization. A configuration problem, not a runtime one.
	ErrKeyFormat = errors.New("invalid key material")

	// ErrWrap reports a failed RSA-OAEP wrap of a session key.
	ErrWrap = errors.New("key wrap failed")

	// ErrUnwrap reports a failed RSA-OAEP unwrap. Deliberately a single
	// undifferentiated case: which part of padding validation failed must not
	// be observable.
	ErrUnwrap = errors.New("key unwrap failed")

	// ErrTamper reports an AEAD authentication failure. It never distinguishes
	// a wrong key from corrupted ciphertext and never carries plaintext.
	ErrTamper = errors.New("decryption failed")

	// ErrUnsupportedVersion reports an unknown packet version or algorithm
	// tag. Unknown formats fail closed instead of being guessed at.
	ErrUnsupportedVersion = errors.New("unsupported packet version or algorithm")

	// ErrNoActiveSession reports use of the session manager before a
	// successful Ensure call. A programmer error on the initiating side.
	ErrNoActiveSession = errors.New("no active session")
)
