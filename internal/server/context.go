package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/mcptools/google-toolbox/internal/calendar"
	"github.com/mcptools/google-toolbox/internal/config"
	"github.com/mcptools/google-toolbox/internal/drive"
	"github.com/mcptools/google-toolbox/internal/gmail"
	"github.com/mcptools/google-toolbox/internal/google"
	"github.com/mcptools/google-toolbox/internal/search"
)

// ServerContext holds the shared state of a running toolbox server: the
// credential manager and the Google service clients. Clients are built
// lazily on first use and then reused; their HTTP transport pulls the
// current access token from the manager per request, so a token refresh
// never requires rebuilding a client.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg   config.Config
	creds *google.Manager

	mu             sync.Mutex
	httpClient     *http.Client
	gmailClient    *gmail.Client
	calendarClient *calendar.Client
	driveClient    *drive.Client
	searchClient   *search.Client
	shutdown       bool
}

// NewServerContext creates the server context around an initialized
// credential manager.
func NewServerContext(ctx context.Context, cfg config.Config, creds *google.Manager) *ServerContext {
	serverCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		cfg:    cfg,
		creds:  creds,
	}
}

// Context returns the server-lifetime context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Credentials returns the credential manager.
func (sc *ServerContext) Credentials() *google.Manager {
	return sc.creds
}

// authClient returns the shared token-injecting HTTP client. Callers
// must hold sc.mu.
func (sc *ServerContext) authClient() *http.Client {
	if sc.httpClient == nil {
		sc.httpClient = sc.creds.HTTPClient(sc.ctx)
	}
	return sc.httpClient
}

// GmailClient returns the Gmail client, building it on first use.
func (sc *ServerContext) GmailClient(ctx context.Context) (*gmail.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.gmailClient == nil {
		client, err := gmail.NewClient(ctx, sc.authClient())
		if err != nil {
			return nil, err
		}
		sc.gmailClient = client
	}
	return sc.gmailClient, nil
}

// CalendarClient returns the Calendar client, building it on first use.
func (sc *ServerContext) CalendarClient(ctx context.Context) (*calendar.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.calendarClient == nil {
		client, err := calendar.NewClient(ctx, sc.authClient(), sc.cfg.CalendarTimeZone)
		if err != nil {
			return nil, err
		}
		sc.calendarClient = client
	}
	return sc.calendarClient, nil
}

// DriveClient returns the Drive client, building it on first use.
func (sc *ServerContext) DriveClient(ctx context.Context) (*drive.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.driveClient == nil {
		client, err := drive.NewClient(ctx, sc.authClient())
		if err != nil {
			return nil, err
		}
		sc.driveClient = client
	}
	return sc.driveClient, nil
}

// SearchClient returns the web search client, building it on first use.
func (sc *ServerContext) SearchClient(ctx context.Context) (*search.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.searchClient == nil {
		client, err := search.NewClient(ctx, sc.cfg.SearchAPIKey, sc.cfg.SearchEngineID)
		if err != nil {
			return nil, err
		}
		sc.searchClient = client
	}
	return sc.searchClient, nil
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.shutdown
}

// Shutdown cancels the server context and drops cached credentials.
// Idempotent.
func (sc *ServerContext) Shutdown() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return
	}
	sc.shutdown = true
	sc.cancel()
	sc.creds.Shutdown()
}
