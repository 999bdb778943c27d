package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcptools/google-toolbox/internal/logging"
)

// newTokenEndpoint returns a test server acting as the OAuth token
// endpoint, counting exchanges and answering with the given handler.
func newTokenEndpoint(t *testing.T, handler func(w http.ResponseWriter, calls int64)) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		handler(w, n)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func grantToken(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"access_token":"at-12345","token_type":"Bearer","expires_in":3600}`))
}

func newTestManager(t *testing.T, tokenURL string) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-token",
		TokenURL:     tokenURL,
	})
	require.NoError(t, err)
	return m
}

func TestNewManagerValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing client id", cfg: Config{ClientSecret: "s", RefreshToken: "r"}},
		{name: "missing client secret", cfg: Config{ClientID: "c", RefreshToken: "r"}},
		{name: "missing refresh token", cfg: Config{ClientID: "c", ClientSecret: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewManager(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestTokenCachesUntilMargin(t *testing.T) {
	srv, calls := newTokenEndpoint(t, func(w http.ResponseWriter, _ int64) {
		grantToken(w)
	})

	m := newTestManager(t, srv.URL)

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-12345", tok.AccessToken)
	assert.EqualValues(t, 1, calls.Load())
	assert.EqualValues(t, 1, m.Generation())

	// Second call within the validity window must not hit the endpoint.
	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())

	// Advance the clock into the expiry margin; the next call refreshes.
	m.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
	assert.EqualValues(t, 2, m.Generation())
}

func TestTokenSingleFlight(t *testing.T) {
	srv, calls := newTokenEndpoint(t, func(w http.ResponseWriter, _ int64) {
		// Slow the exchange down so concurrent callers pile up on it.
		time.Sleep(50 * time.Millisecond)
		grantToken(w)
	})

	m := newTestManager(t, srv.URL)

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Token(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
	}
	// All concurrent callers must have shared a single exchange.
	assert.EqualValues(t, 1, calls.Load())
	assert.EqualValues(t, 1, m.Generation())
}

func TestTokenRefreshRejected(t *testing.T) {
	srv, calls := newTokenEndpoint(t, func(w http.ResponseWriter, _ int64) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})

	var statuses []string
	m, err := NewManager(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-token",
		TokenURL:     srv.URL,
		OnRefresh:    func(status string) { statuses = append(statuses, status) },
	})
	require.NoError(t, err)

	_, err = m.Token(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRefreshRejected)
	// A definitive rejection is one failed exchange, never retried. The
	// endpoint override pins the auth style, so one exchange is exactly
	// one request.
	assert.Equal(t, []string{logging.StatusError}, statuses)
	assert.EqualValues(t, 1, calls.Load())
	assert.EqualValues(t, 0, m.Generation())
}

func TestTokenRetriesTransientFailures(t *testing.T) {
	srv, calls := newTokenEndpoint(t, func(w http.ResponseWriter, n int64) {
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		grantToken(w)
	})

	m := newTestManager(t, srv.URL)

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-12345", tok.AccessToken)
	assert.EqualValues(t, 3, calls.Load())
}

func TestOnRefreshHook(t *testing.T) {
	srv, _ := newTokenEndpoint(t, func(w http.ResponseWriter, _ int64) {
		grantToken(w)
	})

	var statuses []string
	m, err := NewManager(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-token",
		TokenURL:     srv.URL,
		OnRefresh:    func(status string) { statuses = append(statuses, status) },
	})
	require.NoError(t, err)

	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"success"}, statuses)
}

func TestShutdownDropsCachedToken(t *testing.T) {
	srv, calls := newTokenEndpoint(t, func(w http.ResponseWriter, _ int64) {
		grantToken(w)
	})

	m := newTestManager(t, srv.URL)

	_, err := m.Token(context.Background())
	require.NoError(t, err)
	m.Shutdown()

	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}
