package app

import (
	"net/http"

	"sealgate/internal/domain"
	"sealgate/internal/gateway"
	sessionsvc "sealgate/internal/services/session"
	"sealgate/internal/store"
)

// Wire bundles the client-side dependency graph for the CLI.
type Wire struct {
	Sessions *sessionsvc.Service
	Client   *gateway.Client
	HTTP     *http.Client
}

// NewWire constructs the dependency graph from cfg. The session store is one
// per Wire, owned by the process that built it.
func NewWire(cfg Config) *Wire {
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = domain.SessionTTL
	}
	sessions := sessionsvc.NewWithTTL(store.NewMemoryStore(), nil, ttl)

	return &Wire{
		Sessions: sessions,
		Client:   gateway.NewClient(cfg.GatewayURL, httpClient),
		HTTP:     httpClient,
	}
}
