// Package server owns the process-level wiring of the toolbox: the
// shared server context with its lazily built Google service clients,
// health endpoints for liveness and readiness probes, and the dedicated
// Prometheus metrics listener.
package server
