package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	cache "github.com/pmylund/go-cache"

	"sealgate/internal/domain"
)

const pubkeyCacheKey = "pubkey"

// Client talks to a sealgate gateway over JSON/HTTP.
type Client struct {
	Base string
	HTTP *http.Client

	pubkeys *cache.Cache
}

// NewClient returns a Client for base. The gateway's public key is cached for
// five minutes; the session TTL dominates anyway, so a slightly stale key
// only delays rotation observation, never correctness.
func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		Base:    base,
		HTTP:    httpClient,
		pubkeys: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// FetchPublicKey returns the gateway's SPKI public key PEM.
func (c *Client) FetchPublicKey(ctx context.Context) (string, error) {
	if v, ok := c.pubkeys.Get(pubkeyCacheKey); ok {
		return v.(string), nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/v1/pubkey", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "fetching gateway public key")
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", errors.Errorf("gateway pubkey: %s", resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	pem := string(b)
	c.pubkeys.Set(pubkeyCacheKey, pem, cache.DefaultExpiration)
	return pem, nil
}

// Exchange posts a request envelope and returns the decoded response
// envelope. A response with ok=false is returned as-is for the caller to
// inspect; transport failures and undecodable bodies are errors.
func (c *Client) Exchange(ctx context.Context, reqEnv domain.RequestEnvelope) (domain.ResponseEnvelope, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(reqEnv); err != nil {
		return domain.ResponseEnvelope{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/v1/exchange", buf)
	if err != nil {
		return domain.ResponseEnvelope{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.ResponseEnvelope{}, errors.Wrap(err, "posting exchange")
	}
	defer resp.Body.Close()

	var out domain.ResponseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.ResponseEnvelope{}, errors.Wrapf(err, "gateway %s: decoding response", resp.Status)
	}
	return out, nil
}

// Compile-time assertion that Client implements domain.ExchangeClient.
var _ domain.ExchangeClient = (*Client)(nil)
