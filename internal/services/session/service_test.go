package session_test

import (
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealgate/internal/crypto"
	"sealgate/internal/domain"
	sessionsvc "sealgate/internal/services/session"
	"sealgate/internal/store"
)

// fakeClock is a settable time source for TTL tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// countingStore counts Replace calls so tests can assert how many wrap
// operations actually ran.
type countingStore struct {
	domain.SessionStore
	replaces atomic.Int64
}

func (s *countingStore) Replace(sess domain.Session) {
	s.replaces.Add(1)
	s.SessionStore.Replace(sess)
}

func pubPEM(t *testing.T) string {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemText, err := crypto.EncodePublicKey(&priv.PublicKey)
	require.NoError(t, err)
	return pemText
}

func TestEnsure_FreshThenReused(t *testing.T) {
	clock := newFakeClock()
	svc := sessionsvc.New(store.NewMemoryStore(), clock.Now)
	pub := pubPEM(t)

	first, err := svc.Ensure(pub)
	require.NoError(t, err)
	assert.True(t, first.Fresh)
	assert.Equal(t, domain.EnvelopeVersion, first.V)
	assert.Equal(t, domain.AlgRSAOAEP256, first.Alg)
	assert.NotEmpty(t, first.WrappedKeyB64)

	clock.Advance(14 * time.Minute)
	second, err := svc.Ensure(pub)
	require.NoError(t, err)
	assert.False(t, second.Fresh, "session inside TTL must be reused")
	assert.Equal(t, first.WrappedKeyB64, second.WrappedKeyB64)
	assert.Equal(t, first.CreatedMS, second.CreatedMS)
}

func TestEnsure_ExpiryReplacesSession(t *testing.T) {
	clock := newFakeClock()
	svc := sessionsvc.New(store.NewMemoryStore(), clock.Now)
	pub := pubPEM(t)

	first, err := svc.Ensure(pub)
	require.NoError(t, err)

	clock.Advance(domain.SessionTTL + time.Second)
	second, err := svc.Ensure(pub)
	require.NoError(t, err)
	assert.True(t, second.Fresh, "expired session must be replaced")
	assert.NotEqual(t, first.WrappedKeyB64, second.WrappedKeyB64)
}

func TestEnsure_PublicKeyChangeInvalidates(t *testing.T) {
	clock := newFakeClock()
	svc := sessionsvc.New(store.NewMemoryStore(), clock.Now)

	first, err := svc.Ensure(pubPEM(t))
	require.NoError(t, err)
	assert.True(t, first.Fresh)

	// Different key within the TTL window: the cached session is invalid.
	second, err := svc.Ensure(pubPEM(t))
	require.NoError(t, err)
	assert.True(t, second.Fresh)
	assert.NotEqual(t, first.WrappedKeyB64, second.WrappedKeyB64)
}

func TestEnsure_BadKeyMaterial(t *testing.T) {
	svc := sessionsvc.New(store.NewMemoryStore(), nil)

	_, err := svc.Ensure("garbage")
	assert.ErrorIs(t, err, domain.ErrKeyFormat)
}

func TestEncryptDecrypt_RequireSession(t *testing.T) {
	svc := sessionsvc.New(store.NewMemoryStore(), nil)

	_, err := svc.Encrypt(`{"x":1}`)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	_, err = svc.Decrypt(domain.SymmetricPacket{V: domain.PacketVersion, SymAlg: domain.AlgAES256GCM})
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestEncryptDecrypt_RoundTripUnderSession(t *testing.T) {
	svc := sessionsvc.New(store.NewMemoryStore(), nil)
	_, err := svc.Ensure(pubPEM(t))
	require.NoError(t, err)

	p, err := svc.Encrypt(`{"hello":"world"}`)
	require.NoError(t, err)

	got, err := svc.Decrypt(p)
	require.NoError(t, err)
	assert.Equal(t, `{"hello":"world"}`, got)
}

func TestEnsure_ConcurrentSingleFlight(t *testing.T) {
	cs := &countingStore{SessionStore: store.NewMemoryStore()}
	svc := sessionsvc.New(cs, nil)
	pub := pubPEM(t)

	const callers = 16
	envelopes := make([]domain.WrappedKeyEnvelope, callers)
	errs := make([]error, callers)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			envelopes[i], errs[i] = svc.Ensure(pub)
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, envelopes[0].WrappedKeyB64, envelopes[i].WrappedKeyB64,
			"all callers must observe the same session")
	}
	assert.Equal(t, int64(1), cs.replaces.Load(), "exactly one wrap may run")
}
