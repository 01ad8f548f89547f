package store_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorepoint/scoring-gateway/internal/config"
	"github.com/scorepoint/scoring-gateway/internal/infrastructure/store"
)

// mockClient counts calls and dispatches to per-call function overrides.
type mockClient struct {
	mu       sync.Mutex
	getCalls int
	setCalls int

	GetFn func(ctx context.Context, key string) (string, error)
	SetFn func(ctx context.Context, key, value string, ttl time.Duration) error
}

func (m *mockClient) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	return m.GetFn(ctx, key)
}

func (m *mockClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	m.setCalls++
	m.mu.Unlock()
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockClient) calls() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls, m.setCalls
}

func transientGet(ctx context.Context, key string) (string, error) {
	return "", &store.TransientError{Op: "get", Err: errors.New("connection refused")}
}

func newTestStore(t *testing.T, client store.Client, cacheSize int) *store.Store {
	t.Helper()
	s, err := store.New(client, config.RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		CacheSize:  cacheSize,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestStore_Get_RecoversFromTransientFaults(t *testing.T) {
	client := &mockClient{}
	failures := 2
	client.GetFn = func(ctx context.Context, key string) (string, error) {
		if failures > 0 {
			failures--
			return transientGet(ctx, key)
		}
		return "value", nil
	}
	s := newTestStore(t, client, 10)

	val, err := s.Get(context.Background(), "key")

	require.NoError(t, err)
	assert.Equal(t, "value", val)
	gets, _ := client.calls()
	assert.Equal(t, 3, gets, "two failures then one success")
}

func TestStore_Get_ExhaustsRetryBudget(t *testing.T) {
	client := &mockClient{GetFn: transientGet}
	s := newTestStore(t, client, 10)

	_, err := s.Get(context.Background(), "key")

	require.Error(t, err)
	assert.True(t, store.IsTransient(err), "exhaustion surfaces the transient fault")
	gets, _ := client.calls()
	assert.Equal(t, 3, gets)
}

func TestStore_Get_FatalFaultNotRetried(t *testing.T) {
	fatal := errors.New("WRONGTYPE operation against a key")
	client := &mockClient{GetFn: func(ctx context.Context, key string) (string, error) {
		return "", fatal
	}}
	s := newTestStore(t, client, 10)

	_, err := s.Get(context.Background(), "key")

	require.ErrorIs(t, err, fatal)
	assert.False(t, store.IsTransient(err))
	gets, _ := client.calls()
	assert.Equal(t, 1, gets)
}

func TestStore_Get_CacheMissNotRetried(t *testing.T) {
	client := &mockClient{GetFn: func(ctx context.Context, key string) (string, error) {
		return "", store.ErrCacheMiss
	}}
	s := newTestStore(t, client, 10)

	_, err := s.Get(context.Background(), "key")

	require.ErrorIs(t, err, store.ErrCacheMiss)
	gets, _ := client.calls()
	assert.Equal(t, 1, gets)
}

func TestStore_Get_CanceledContext(t *testing.T) {
	client := &mockClient{GetFn: transientGet}
	s := newTestStore(t, client, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, "key")

	require.ErrorIs(t, err, context.Canceled)
	gets, _ := client.calls()
	assert.Equal(t, 0, gets, "a canceled request never reaches the client")
}

func TestStore_CacheGet_ReturnsEmptyOnExhaustion(t *testing.T) {
	client := &mockClient{GetFn: transientGet}
	s := newTestStore(t, client, 10)

	val, err := s.CacheGet(context.Background(), "key")

	require.NoError(t, err)
	assert.Empty(t, val)
	gets, _ := client.calls()
	assert.Equal(t, 3, gets)
}

func TestStore_CacheGet_ReturnsEmptyOnMiss(t *testing.T) {
	client := &mockClient{GetFn: func(ctx context.Context, key string) (string, error) {
		return "", store.ErrCacheMiss
	}}
	s := newTestStore(t, client, 10)

	val, err := s.CacheGet(context.Background(), "key")

	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestStore_CacheSet_SwallowsExhaustion(t *testing.T) {
	client := &mockClient{
		GetFn: transientGet,
		SetFn: func(ctx context.Context, key, value string, ttl time.Duration) error {
			return &store.TransientError{Op: "set", Err: errors.New("i/o timeout")}
		},
	}
	s := newTestStore(t, client, 10)

	err := s.CacheSet(context.Background(), "key", "value", time.Minute)

	assert.NoError(t, err, "callers must not treat a cache write as guaranteed")
	_, sets := client.calls()
	assert.Equal(t, 3, sets)
}

func TestStore_CacheSet_RecoversFromTransientFaults(t *testing.T) {
	client := &mockClient{}
	failures := 1
	client.SetFn = func(ctx context.Context, key, value string, ttl time.Duration) error {
		if failures > 0 {
			failures--
			return &store.TransientError{Op: "set", Err: errors.New("i/o timeout")}
		}
		return nil
	}
	s := newTestStore(t, client, 10)

	err := s.CacheSet(context.Background(), "key", "value", time.Minute)

	require.NoError(t, err)
	_, sets := client.calls()
	assert.Equal(t, 2, sets)
}

func TestStore_CacheGet_Memoizes(t *testing.T) {
	client := &mockClient{GetFn: func(ctx context.Context, key string) (string, error) {
		return "remote-value", nil
	}}
	s := newTestStore(t, client, 10)

	val, err := s.CacheGet(context.Background(), "key")
	require.NoError(t, err)
	require.Equal(t, "remote-value", val)

	// the remote becomes unreachable; the memoized value keeps serving
	client.GetFn = transientGet

	val, err = s.CacheGet(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, "remote-value", val)

	gets, _ := client.calls()
	assert.Equal(t, 1, gets, "the second read never touches the remote")
}

func TestStore_CacheGet_MemoEviction(t *testing.T) {
	client := &mockClient{GetFn: func(ctx context.Context, key string) (string, error) {
		return "v-" + key, nil
	}}
	s := newTestStore(t, client, 2)

	ctx := context.Background()
	for _, key := range []string{"a", "b", "c"} {
		_, err := s.CacheGet(ctx, key)
		require.NoError(t, err)
	}

	client.GetFn = transientGet

	// "a" was evicted by the size bound and falls through to the remote
	val, err := s.CacheGet(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, val)

	// "c" is still memoized
	val, err = s.CacheGet(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "v-c", val)
}
