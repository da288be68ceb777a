// Package store provides the in-memory session cache used by the initiating
// side. Sessions are deliberately never written to disk: the cache lives and
// dies with the process, which is what bounds the lifetime of raw key bytes.
package store

import (
	"sync"

	"sealgate/internal/domain"
)

// MemoryStore holds at most one session, identified by the public-key
// fingerprint recorded inside it. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	sess domain.Session
	ok   bool
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Load returns the cached session, if any.
func (s *MemoryStore) Load() (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess, s.ok
}

// Replace installs sess as the only cached session, discarding any prior
// entry outright.
func (s *MemoryStore) Replace(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	s.ok = true
}

// Compile-time assertion that MemoryStore implements domain.SessionStore.
var _ domain.SessionStore = (*MemoryStore)(nil)
