// Package config loads the toolbox configuration from the environment.
//
// All credentials arrive through environment variables so the server can
// run under an MCP host without a config file. Loading is fail-fast:
// every missing required variable is reported in one error, so a
// misconfigured deployment is fixed in a single round trip.
package config
