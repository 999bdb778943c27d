package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(EnvClientID, "client-id")
	t.Setenv(EnvClientSecret, "client-secret")
	t.Setenv(EnvRefreshToken, "refresh-token")
	t.Setenv(EnvSearchAPIKey, "api-key")
	t.Setenv(EnvSearchEngineID, "cse-id")
}

func TestFromEnv(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvCalendarTimeZone, "Europe/Berlin")
	t.Setenv(EnvCallTimeout, "45s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "client-id", cfg.ClientID)
	assert.Equal(t, "client-secret", cfg.ClientSecret)
	assert.Equal(t, "refresh-token", cfg.RefreshToken)
	assert.Equal(t, "api-key", cfg.SearchAPIKey)
	assert.Equal(t, "cse-id", cfg.SearchEngineID)
	assert.Equal(t, "Europe/Berlin", cfg.CalendarTimeZone)
	assert.Equal(t, 45*time.Second, cfg.CallTimeout)
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvCalendarTimeZone, "")
	t.Setenv(EnvCallTimeout, "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultCalendarTimeZone, cfg.CalendarTimeZone)
	assert.Zero(t, cfg.CallTimeout)
}

func TestFromEnvReportsAllMissing(t *testing.T) {
	for _, key := range []string{EnvClientID, EnvClientSecret, EnvRefreshToken, EnvSearchAPIKey, EnvSearchEngineID} {
		t.Setenv(key, "")
	}

	_, err := FromEnv()
	require.Error(t, err)
	// One error names every missing variable.
	assert.Contains(t, err.Error(), EnvClientID)
	assert.Contains(t, err.Error(), EnvClientSecret)
	assert.Contains(t, err.Error(), EnvRefreshToken)
	assert.Contains(t, err.Error(), EnvSearchAPIKey)
	assert.Contains(t, err.Error(), EnvSearchEngineID)
}

func TestFromEnvBadTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvCallTimeout, "soon")

	_, err := FromEnv()
	assert.Error(t, err)
}
