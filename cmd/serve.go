package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mcptools/google-toolbox/internal/config"
	"github.com/mcptools/google-toolbox/internal/google"
	"github.com/mcptools/google-toolbox/internal/instrumentation"
	"github.com/mcptools/google-toolbox/internal/logging"
	"github.com/mcptools/google-toolbox/internal/resources"
	"github.com/mcptools/google-toolbox/internal/server"
	"github.com/mcptools/google-toolbox/internal/toolbox"
	"github.com/mcptools/google-toolbox/internal/tools/calendar_tools"
	"github.com/mcptools/google-toolbox/internal/tools/common"
	"github.com/mcptools/google-toolbox/internal/tools/drive_tools"
	"github.com/mcptools/google-toolbox/internal/tools/gmail_tools"
	"github.com/mcptools/google-toolbox/internal/tools/search_tools"
)

type serveOptions struct {
	Transport      string
	HTTPAddr       string
	MetricsAddr    string
	Debug          bool
	ReadOnly       bool
	MetricsEnabled bool
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Gmail, Calendar,
Drive and web search tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Credentials:
  GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REFRESH_TOKEN,
  GOOGLE_API_KEY and GOOGLE_CSE_ID are required; run
  'google-toolbox auth' once to obtain a refresh token.

Safety Mode:
  Use --read-only to register only tools that cannot modify account
  state (no email sending, no event or label changes).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.Transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&opts.HTTPAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&opts.ReadOnly, "read-only", false, "Register only read-only tools; mutating tools are left out entirely")
	cmd.Flags().BoolVar(&opts.MetricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port (streamable-http transport only)")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")

	return cmd
}

func runServe(opts serveOptions) error {
	logger := logging.Setup(opts.Debug)

	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := provider.Shutdown(flushCtx); err != nil {
			logger.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	manager, err := google.NewManager(google.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RefreshToken: cfg.RefreshToken,
		OnRefresh: func(status string) {
			provider.Metrics().RecordTokenRefresh(context.Background(), status)
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	// Exchange the refresh token once at startup so a revoked or
	// mistyped token fails the process instead of the first tool call.
	if _, err := manager.Token(shutdownCtx); err != nil {
		return fmt.Errorf("initial token refresh failed: %w", err)
	}

	serverContext := server.NewServerContext(shutdownCtx, cfg, manager)
	defer serverContext.Shutdown()

	registry, err := buildRegistry(serverContext)
	if err != nil {
		return err
	}

	dispatchOpts := []toolbox.Option{
		toolbox.WithLogger(logger),
		toolbox.WithTracer(provider.Tracer("toolbox")),
	}
	if cfg.CallTimeout > 0 {
		dispatchOpts = append(dispatchOpts, toolbox.WithCallTimeout(cfg.CallTimeout))
	}
	if provider.Enabled() {
		dispatchOpts = append(dispatchOpts, toolbox.WithMetrics(provider.Metrics()))
	}
	dispatcher := toolbox.NewDispatcher(registry, manager, dispatchOpts...)

	mcpSrv := mcpserver.NewMCPServer("google-toolbox", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	if err := common.RegisterTools(mcpSrv, registry, dispatcher, opts.ReadOnly); err != nil {
		return err
	}
	resources.RegisterCatalog(mcpSrv, registry)

	if opts.ReadOnly {
		logger.Info("starting in read-only mode, mutating tools are not registered")
	}

	switch opts.Transport {
	case "stdio":
		return runStdioServer(shutdownCtx, mcpSrv)
	case "streamable-http":
		return runHTTPServer(shutdownCtx, mcpSrv, serverContext, provider, opts)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", opts.Transport)
	}
}

// buildRegistry assembles the tool registry against the server context.
// Services are provided lazily so nothing talks to Google before a tool
// actually runs.
func buildRegistry(sc *server.ServerContext) (*toolbox.Registry, error) {
	defs := gmail_tools.Definitions(func(ctx context.Context) (gmail_tools.Service, error) {
		return sc.GmailClient(ctx)
	})
	defs = append(defs, calendar_tools.Definitions(func(ctx context.Context) (calendar_tools.Service, error) {
		return sc.CalendarClient(ctx)
	})...)
	defs = append(defs, drive_tools.Definitions(func(ctx context.Context) (drive_tools.Service, error) {
		return sc.DriveClient(ctx)
	})...)
	defs = append(defs, search_tools.Definitions(func(ctx context.Context) (search_tools.Service, error) {
		return sc.SearchClient(ctx)
	})...)

	registry := toolbox.NewRegistry()
	if err := registry.RegisterAll(defs...); err != nil {
		return nil, err
	}
	return registry, nil
}

func runStdioServer(ctx context.Context, mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serverDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	}
}

func runHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, provider *instrumentation.Provider, opts serveOptions) error {
	var metricsServer *server.MetricsServer
	if opts.MetricsEnabled && provider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:     opts.MetricsAddr,
			Provider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", logging.Err(err))
			}
		}()
	}

	healthChecker := server.NewHealthChecker(sc)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath("/mcp"),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	healthChecker.RegisterHealthEndpoints(mux)

	httpServer := &http.Server{
		Addr:              opts.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		slog.Info("starting MCP server", "transport", "streamable-http", "addr", opts.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Flip readiness first so load balancers drain before we stop
	// accepting connections.
	healthChecker.SetReady(false)

	drainCtx, drainCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer drainCancel()

	var errs []error
	if err := httpServer.Shutdown(drainCtx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(drainCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}
