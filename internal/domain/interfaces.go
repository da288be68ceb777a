package domain

import (
	"context"
	"time"
)

// SessionStore owns the initiating side's single session cache slot.
// Implementations must be safe for concurrent use. Expired entries may sit in
// the slot indefinitely; expiry is a logical check by the session manager,
// not a scheduled eviction.
type SessionStore interface {
	// Load returns the cached session, if any.
	Load() (Session, bool)

	// Replace installs sess as the only cached session, discarding any prior
	// entry outright.
	Replace(sess Session)
}

// Clock supplies the current time. Injected so TTL expiry is testable without
// real clock delays.
type Clock func() time.Time

// ExchangeClient talks to a gateway implementing the exchange protocol.
type ExchangeClient interface {
	// FetchPublicKey returns the gateway's SPKI public key PEM.
	FetchPublicKey(ctx context.Context) (string, error)

	// Exchange posts a request envelope and returns the decoded response.
	Exchange(ctx context.Context, req RequestEnvelope) (ResponseEnvelope, error)
}
