package exchange_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealgate/internal/crypto"
	"sealgate/internal/domain"
	"sealgate/internal/services/exchange"
	sessionsvc "sealgate/internal/services/session"
	"sealgate/internal/store"
)

func keyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemText, err := crypto.EncodePublicKey(&priv.PublicKey)
	require.NoError(t, err)
	return priv, pemText
}

func TestHandle_EndToEndEcho(t *testing.T) {
	priv, pub := keyPair(t)

	client := sessionsvc.New(store.NewMemoryStore(), nil)
	env, err := client.Ensure(pub)
	require.NoError(t, err)
	require.True(t, env.Fresh)

	reqPkt, err := client.Encrypt(`{"hello":"world"}`)
	require.NoError(t, err)

	server := exchange.New(priv, exchange.Echo)
	respPkt, err := server.Handle(env.WrappedKeyB64, reqPkt)
	require.NoError(t, err)

	plain, err := client.Decrypt(respPkt)
	require.NoError(t, err)

	var got map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(plain), &got))
	assert.Equal(t, map[string]map[string]string{"echo": {"hello": "world"}}, got)
}

func TestHandle_BadWrappedKey(t *testing.T) {
	priv, pub := keyPair(t)
	client := sessionsvc.New(store.NewMemoryStore(), nil)
	_, err := client.Ensure(pub)
	require.NoError(t, err)
	reqPkt, err := client.Encrypt(`{}`)
	require.NoError(t, err)

	server := exchange.New(priv, exchange.Echo)

	_, err = server.Handle("!!not base64!!", reqPkt)
	assert.ErrorIs(t, err, domain.ErrUnwrap)
}

func TestHandle_WrongPrivateKey(t *testing.T) {
	_, pub := keyPair(t)
	other, _ := keyPair(t)

	client := sessionsvc.New(store.NewMemoryStore(), nil)
	env, err := client.Ensure(pub)
	require.NoError(t, err)
	reqPkt, err := client.Encrypt(`{}`)
	require.NoError(t, err)

	server := exchange.New(other, exchange.Echo)

	_, err = server.Handle(env.WrappedKeyB64, reqPkt)
	assert.ErrorIs(t, err, domain.ErrUnwrap)
}

func TestHandle_TamperedPayload(t *testing.T) {
	priv, pub := keyPair(t)

	client := sessionsvc.New(store.NewMemoryStore(), nil)
	env, err := client.Ensure(pub)
	require.NoError(t, err)
	reqPkt, err := client.Encrypt(`{"hello":"world"}`)
	require.NoError(t, err)

	raw, err := crypto.B64uDecode(reqPkt.CiphertextB64)
	require.NoError(t, err)
	raw[0] ^= 0x01
	reqPkt.CiphertextB64 = crypto.B64u(raw)

	server := exchange.New(priv, exchange.Echo)
	_, err = server.Handle(env.WrappedKeyB64, reqPkt)
	assert.ErrorIs(t, err, domain.ErrTamper)
}

func TestHandle_TransformFailureAborts(t *testing.T) {
	priv, pub := keyPair(t)

	client := sessionsvc.New(store.NewMemoryStore(), nil)
	env, err := client.Ensure(pub)
	require.NoError(t, err)
	reqPkt, err := client.Encrypt(`not json`)
	require.NoError(t, err)

	server := exchange.New(priv, exchange.Echo)
	_, err = server.Handle(env.WrappedKeyB64, reqPkt)
	assert.Error(t, err)
}
