package session

import (
	"time"

	"golang.org/x/sync/singleflight"

	"sealgate/internal/crypto"
	"sealgate/internal/domain"
	"sealgate/internal/packet"
)

// Service manages the client-side session cache behind a domain.SessionStore.
type Service struct {
	store domain.SessionStore
	now   domain.Clock
	ttl   time.Duration
	group singleflight.Group
}

// New constructs a Service over store with the default TTL. A nil clock means
// wall time.
func New(store domain.SessionStore, now domain.Clock) *Service {
	return NewWithTTL(store, now, domain.SessionTTL)
}

// NewWithTTL overrides the session lifetime. Used by tests and short-lived
// tooling.
func NewWithTTL(store domain.SessionStore, now domain.Clock, ttl time.Duration) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now, ttl: ttl}
}

// Ensure returns a wrapped-key envelope for publicKeyPEM.
//
// The fast path reuses the cached session while it is valid for this exact
// key: no key material is generated and no RSA operation runs. Otherwise a
// fresh 32-byte key is generated and wrapped, and the new session replaces
// the cache slot outright. At most one generate-and-wrap is in flight per
// public key; concurrent callers that lose the race wait and observe the
// winner's session.
func (s *Service) Ensure(publicKeyPEM string) (domain.WrappedKeyEnvelope, error) {
	mat, pub, err := crypto.LoadPublicKey(publicKeyPEM)
	if err != nil {
		return domain.WrappedKeyEnvelope{}, err
	}

	if sess, ok := s.store.Load(); ok && sess.ValidAt(mat.Fingerprint, s.now()) {
		return envelope(sess, false), nil
	}

	v, err, _ := s.group.Do(mat.Fingerprint, func() (any, error) {
		// A concurrent winner may have written a fresh session between our
		// check and joining the flight.
		if sess, ok := s.store.Load(); ok && sess.ValidAt(mat.Fingerprint, s.now()) {
			return envelope(sess, false), nil
		}

		raw, err := crypto.NewSessionKey()
		if err != nil {
			return nil, err
		}
		wrapped, err := crypto.Wrap(raw, pub)
		if err != nil {
			return nil, err
		}
		now := s.now()
		sess := domain.Session{
			Fingerprint:   mat.Fingerprint,
			RawKey:        raw,
			WrappedKeyB64: crypto.B64u(wrapped),
			CreatedAt:     now,
			ExpiresAt:     now.Add(s.ttl),
		}
		s.store.Replace(sess)
		return envelope(sess, true), nil
	})
	if err != nil {
		return domain.WrappedKeyEnvelope{}, err
	}
	return v.(domain.WrappedKeyEnvelope), nil
}

// Encrypt seals plaintext under the active session key. Ensure must have
// succeeded at least once or this fails with domain.ErrNoActiveSession.
func (s *Service) Encrypt(plaintext string) (domain.SymmetricPacket, error) {
	sess, ok := s.store.Load()
	if !ok {
		return domain.SymmetricPacket{}, domain.ErrNoActiveSession
	}
	return packet.Seal(plaintext, sess.RawKey)
}

// Decrypt opens a packet produced under the active session key.
func (s *Service) Decrypt(p domain.SymmetricPacket) (string, error) {
	sess, ok := s.store.Load()
	if !ok {
		return "", domain.ErrNoActiveSession
	}
	return packet.Open(p, sess.RawKey)
}

// Current returns the cached session without triggering a wrap.
func (s *Service) Current() (domain.Session, bool) {
	return s.store.Load()
}

func envelope(sess domain.Session, fresh bool) domain.WrappedKeyEnvelope {
	return domain.WrappedKeyEnvelope{
		V:             domain.EnvelopeVersion,
		Alg:           domain.AlgRSAOAEP256,
		SymAlg:        domain.AlgAES256GCM,
		WrappedKeyB64: sess.WrappedKeyB64,
		Fresh:         fresh,
		CreatedMS:     sess.CreatedAt.UnixMilli(),
	}
}
