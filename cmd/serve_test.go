package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcptools/google-toolbox/internal/config"
	"github.com/mcptools/google-toolbox/internal/google"
	"github.com/mcptools/google-toolbox/internal/server"
)

func testServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	manager, err := google.NewManager(google.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-token",
	})
	require.NoError(t, err)

	cfg := config.Config{
		ClientID:         "client-id",
		ClientSecret:     "client-secret",
		RefreshToken:     "refresh-token",
		SearchAPIKey:     "api-key",
		SearchEngineID:   "engine-id",
		CalendarTimeZone: config.DefaultCalendarTimeZone,
	}

	sc := server.NewServerContext(context.Background(), cfg, manager)
	t.Cleanup(sc.Shutdown)
	return sc
}

func TestBuildRegistryToolCatalog(t *testing.T) {
	registry, err := buildRegistry(testServerContext(t))
	require.NoError(t, err)

	var names []string
	for _, def := range registry.Definitions() {
		names = append(names, def.Name)
	}

	assert.Equal(t, []string{
		"list_emails", "search_emails", "send_email", "modify_email",
		"list_events", "create_event", "update_event", "delete_event",
		"search_gdrive", "read_gdrive_file",
		"search_google",
	}, names)
}

func TestServeCmdDefaults(t *testing.T) {
	cmd := newServeCmd()

	transport, err := cmd.Flags().GetString("transport")
	require.NoError(t, err)
	assert.Equal(t, "stdio", transport)

	readOnly, err := cmd.Flags().GetBool("read-only")
	require.NoError(t, err)
	assert.False(t, readOnly)

	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	require.NoError(t, err)
	assert.Equal(t, server.DefaultMetricsAddr, metricsAddr)
}
