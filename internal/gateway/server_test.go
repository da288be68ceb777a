package gateway_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealgate/internal/crypto"
	"sealgate/internal/domain"
	"sealgate/internal/gateway"
	"sealgate/internal/services/exchange"
	sessionsvc "sealgate/internal/services/session"
	"sealgate/internal/store"
)

// startGateway spins up a gateway over a fresh key pair and returns the test
// server plus a hit counter.
func startGateway(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pubPEM, err := crypto.EncodePublicKey(&priv.PublicKey)
	require.NoError(t, err)

	router := gateway.NewServer(exchange.New(priv, exchange.Echo), pubPEM, nil).Router()

	hits := &atomic.Int64{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts, hits
}

func TestExchange_EndToEnd(t *testing.T) {
	ts, _ := startGateway(t)
	ctx := context.Background()

	client := gateway.NewClient(ts.URL, ts.Client())
	sessions := sessionsvc.New(store.NewMemoryStore(), nil)

	pub, err := client.FetchPublicKey(ctx)
	require.NoError(t, err)

	env, err := sessions.Ensure(pub)
	require.NoError(t, err)
	require.True(t, env.Fresh)

	pkt, err := sessions.Encrypt(`{"hello":"world"}`)
	require.NoError(t, err)
	payload, err := pkt.Encode()
	require.NoError(t, err)

	resp, err := client.Exchange(ctx, domain.RequestEnvelope{
		WrappedKeyB64: env.WrappedKeyB64,
		Payload:       payload,
	})
	require.NoError(t, err)
	require.True(t, resp.OK, "gateway error: %s", resp.Error)

	respPkt, err := domain.DecodePacket(resp.Payload)
	require.NoError(t, err)
	plain, err := sessions.Decrypt(respPkt)
	require.NoError(t, err)

	var got map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(plain), &got))
	assert.Equal(t, map[string]map[string]string{"echo": {"hello": "world"}}, got)
}

func TestExchange_TamperedPayloadRejected(t *testing.T) {
	ts, _ := startGateway(t)
	ctx := context.Background()

	client := gateway.NewClient(ts.URL, ts.Client())
	sessions := sessionsvc.New(store.NewMemoryStore(), nil)

	pub, err := client.FetchPublicKey(ctx)
	require.NoError(t, err)
	env, err := sessions.Ensure(pub)
	require.NoError(t, err)

	pkt, err := sessions.Encrypt(`{"hello":"world"}`)
	require.NoError(t, err)
	raw, err := crypto.B64uDecode(pkt.CiphertextB64)
	require.NoError(t, err)
	raw[0] ^= 0x01
	pkt.CiphertextB64 = crypto.B64u(raw)
	payload, err := pkt.Encode()
	require.NoError(t, err)

	resp, err := client.Exchange(ctx, domain.RequestEnvelope{
		WrappedKeyB64: env.WrappedKeyB64,
		Payload:       payload,
	})
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, domain.ErrTamper.Error(), resp.Error)
}

func TestExchange_UnsupportedVersionRejected(t *testing.T) {
	ts, _ := startGateway(t)
	ctx := context.Background()

	client := gateway.NewClient(ts.URL, ts.Client())
	sessions := sessionsvc.New(store.NewMemoryStore(), nil)

	pub, err := client.FetchPublicKey(ctx)
	require.NoError(t, err)
	env, err := sessions.Ensure(pub)
	require.NoError(t, err)

	resp, err := client.Exchange(ctx, domain.RequestEnvelope{
		WrappedKeyB64: env.WrappedKeyB64,
		Payload:       `{"v":42,"sym_alg":"AES-256-GCM","nonce_b64":"","ciphertext_b64":""}`,
	})
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, domain.ErrUnsupportedVersion.Error(), resp.Error)
}

func TestFetchPublicKey_Cached(t *testing.T) {
	ts, hits := startGateway(t)
	ctx := context.Background()

	client := gateway.NewClient(ts.URL, ts.Client())

	a, err := client.FetchPublicKey(ctx)
	require.NoError(t, err)
	b, err := client.FetchPublicKey(ctx)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(1), hits.Load(), "second fetch must come from the cache")
}

func TestHealthz(t *testing.T) {
	ts, _ := startGateway(t)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
