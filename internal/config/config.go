package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variable names. The OAuth client, refresh token and the
// search pair are all required; serve refuses to start without them.
const (
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvRefreshToken = "GOOGLE_REFRESH_TOKEN"

	EnvSearchAPIKey   = "GOOGLE_API_KEY"
	EnvSearchEngineID = "GOOGLE_CSE_ID"

	EnvCalendarTimeZone = "CALENDAR_TIMEZONE"
	EnvCallTimeout      = "TOOL_CALL_TIMEOUT"
)

// DefaultCalendarTimeZone is used when CALENDAR_TIMEZONE is unset.
const DefaultCalendarTimeZone = "UTC"

// Config is the resolved toolbox configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// SearchAPIKey and SearchEngineID back the web search tool.
	SearchAPIKey   string
	SearchEngineID string

	// CalendarTimeZone is the IANA zone applied to event times that
	// arrive without an explicit zone.
	CalendarTimeZone string

	// CallTimeout overrides the per-tool-call timeout when positive.
	CallTimeout time.Duration
}

// FromEnv loads the configuration from the environment. All missing
// required variables are collected into a single error.
func FromEnv() (Config, error) {
	cfg := Config{
		ClientID:         os.Getenv(EnvClientID),
		ClientSecret:     os.Getenv(EnvClientSecret),
		RefreshToken:     os.Getenv(EnvRefreshToken),
		SearchAPIKey:     os.Getenv(EnvSearchAPIKey),
		SearchEngineID:   os.Getenv(EnvSearchEngineID),
		CalendarTimeZone: os.Getenv(EnvCalendarTimeZone),
	}

	if cfg.CalendarTimeZone == "" {
		cfg.CalendarTimeZone = DefaultCalendarTimeZone
	}

	var missing []string
	if cfg.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if cfg.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if cfg.RefreshToken == "" {
		missing = append(missing, EnvRefreshToken)
	}
	if cfg.SearchAPIKey == "" {
		missing = append(missing, EnvSearchAPIKey)
	}
	if cfg.SearchEngineID == "" {
		missing = append(missing, EnvSearchEngineID)
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if raw := os.Getenv(EnvCallTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive duration, got %q", EnvCallTimeout, raw)
		}
		cfg.CallTimeout = d
	}

	return cfg, nil
}
