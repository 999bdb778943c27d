package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"

	"github.com/mcptools/google-toolbox/internal/logging"
)

// ErrRefreshRejected indicates the token endpoint rejected the refresh
// token exchange (revoked or invalid refresh token). Retrying will not
// help; the user must re-authorize.
var ErrRefreshRejected = errors.New("refresh token exchange rejected")

const (
	// DefaultExpiryMargin is subtracted from the token expiry when
	// deciding whether the cached token is still usable, so a token is
	// never presented to an upstream API moments before it lapses.
	DefaultExpiryMargin = 1 * time.Minute

	// DefaultRefreshAttempts bounds retries of a transiently failing
	// refresh exchange.
	DefaultRefreshAttempts = 3
)

// Config holds the inputs for a credential Manager. ClientID,
// ClientSecret and RefreshToken are required.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// Scopes defaults to DefaultOAuthScopes.
	Scopes []string

	// TokenURL overrides the Google token endpoint, for tests.
	TokenURL string

	// ExpiryMargin defaults to DefaultExpiryMargin.
	ExpiryMargin time.Duration

	// MaxAttempts defaults to DefaultRefreshAttempts.
	MaxAttempts uint

	// OnRefresh, when set, is called after every refresh exchange with
	// logging.StatusSuccess or logging.StatusError. Used to feed the
	// token-refresh metric without coupling this package to it.
	OnRefresh func(status string)

	Logger *slog.Logger
}

// Manager owns the refresh-token → access-token exchange and the cached
// access token. It is safe for concurrent use; renewal is single-flight.
//
// The refresh token is immutable for the life of the Manager: even when
// the token endpoint returns a rotated refresh token it is ignored, as
// persistence is an external collaborator's concern.
type Manager struct {
	conf         *oauth2.Config
	refreshToken string
	margin       time.Duration
	maxAttempts  uint
	onRefresh    func(string)
	logger       *slog.Logger

	// now is replaceable in tests.
	now func() time.Time

	mu    sync.Mutex
	token *oauth2.Token

	generation atomic.Int64
	sf         singleflight.Group
}

// NewManager creates a credential manager from the given configuration.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("OAuth client id and secret are required")
	}
	if cfg.RefreshToken == "" {
		return nil, fmt.Errorf("OAuth refresh token is required")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultOAuthScopes
	}

	endpoint := googleoauth.Endpoint
	if cfg.TokenURL != "" {
		// Keep the Google endpoint's auth style; with the style unset the
		// oauth2 library probes both styles, issuing two requests per
		// exchange against an overridden endpoint.
		endpoint = oauth2.Endpoint{TokenURL: cfg.TokenURL, AuthStyle: oauth2.AuthStyleInParams}
	}

	margin := cfg.ExpiryMargin
	if margin <= 0 {
		margin = DefaultExpiryMargin
	}

	attempts := cfg.MaxAttempts
	if attempts == 0 {
		attempts = DefaultRefreshAttempts
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		refreshToken: cfg.RefreshToken,
		margin:       margin,
		maxAttempts:  attempts,
		onRefresh:    cfg.OnRefresh,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// Token returns a valid access token, refreshing it first if the cached
// one is missing or within the expiry margin. Concurrent callers with an
// expired cache share a single refresh exchange.
func (m *Manager) Token(ctx context.Context) (*oauth2.Token, error) {
	if tok := m.cached(); tok != nil {
		return tok, nil
	}

	v, err, _ := m.sf.Do("refresh", func() (any, error) {
		// A refresh that completed while this caller was queued makes
		// another exchange unnecessary.
		if tok := m.cached(); tok != nil {
			return tok, nil
		}
		return m.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*oauth2.Token), nil
}

// Ensure verifies a valid access token is available, refreshing if
// needed. It satisfies toolbox.CredentialSource.
func (m *Manager) Ensure(ctx context.Context) error {
	_, err := m.Token(ctx)
	return err
}

// Generation returns the number of completed refresh exchanges. Useful
// for observability and for asserting the single-flight property.
func (m *Manager) Generation() int64 {
	return m.generation.Load()
}

// Shutdown drops the cached access token. The refresh token is owned by
// configuration and is left untouched.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
}

// cached returns the cached token if it is still comfortably valid.
func (m *Manager) cached() *oauth2.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != nil && m.token.AccessToken != "" && m.now().Before(m.token.Expiry.Add(-m.margin)) {
		return m.token
	}
	return nil
}

// refresh performs the refresh-token exchange with bounded exponential
// backoff on transient failures and stores the result.
func (m *Manager) refresh(ctx context.Context) (*oauth2.Token, error) {
	operation := func() (*oauth2.Token, error) {
		src := m.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: m.refreshToken})
		tok, err := src.Token()
		if err != nil {
			if isRejectedExchange(err) {
				return nil, backoff.Permanent(fmt.Errorf("%w: %v", ErrRefreshRejected, err))
			}
			return nil, err
		}
		return tok, nil
	}

	tok, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(m.maxAttempts),
	)
	if err != nil {
		m.notifyRefresh(logging.StatusError)
		m.logger.Error("token refresh failed", logging.Err(err))
		return nil, err
	}

	m.mu.Lock()
	m.token = tok
	m.mu.Unlock()
	gen := m.generation.Add(1)

	m.notifyRefresh(logging.StatusSuccess)
	m.logger.Debug("access token refreshed",
		slog.Int64("generation", gen),
		slog.Time("expiry", tok.Expiry),
		slog.String("token", logging.SanitizeToken(tok.AccessToken)),
	)

	return tok, nil
}

func (m *Manager) notifyRefresh(status string) {
	if m.onRefresh != nil {
		m.onRefresh(status)
	}
}

// isRejectedExchange reports whether the token endpoint definitively
// rejected the exchange, as opposed to failing transiently.
func isRejectedExchange(err error) bool {
	var rerr *oauth2.RetrieveError
	if !errors.As(err, &rerr) {
		return false
	}
	if rerr.Response == nil {
		return false
	}
	code := rerr.Response.StatusCode
	return code >= 400 && code < 500 && code != 429
}

// TokenSource returns an oauth2.TokenSource backed by this manager, so
// service sessions always present the current valid access token. The
// context governs refresh exchanges triggered through the source.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &managerSource{ctx: ctx, m: m}
}

// HTTPClient returns an HTTP client that injects the manager's access
// token into every request. HTTP/2 is disabled to avoid protocol errors
// seen with some Google endpoints.
func (m *Manager) HTTPClient(ctx context.Context) *http.Client {
	client := oauth2.NewClient(ctx, m.TokenSource(ctx))
	if transport, ok := client.Transport.(*oauth2.Transport); ok {
		transport.Base = &http.Transport{ForceAttemptHTTP2: false}
	}
	return client
}

type managerSource struct {
	ctx context.Context
	m   *Manager
}

func (s *managerSource) Token() (*oauth2.Token, error) {
	return s.m.Token(s.ctx)
}
