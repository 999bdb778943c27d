// Package logging provides structured logging utilities for google-toolbox.
//
// It centralizes slog attribute naming so log lines are consistent and
// queryable across the credential manager, dispatcher and service
// adapters, and it provides helpers for keeping PII and secrets out of
// logs (email anonymization, token sanitization).
//
// The stdio MCP transport owns stdout, so Setup routes all log output
// to stderr.
package logging
