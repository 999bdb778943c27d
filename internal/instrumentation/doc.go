// Package instrumentation provides OpenTelemetry metrics and tracing
// for the toolbox server.
//
// Metrics are exported through a configurable exporter (Prometheus by
// default, OTLP or stdout alternatively); traces go to OTLP or stdout
// when enabled. The package exposes:
//
//   - mcp_tool_invocations_total: Counter of tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of tool execution durations
//   - google_api_operations_total: Counter of Google API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// All configuration is environment-driven; see DefaultConfig. Setting
// INSTRUMENTATION_ENABLED=false yields a no-op provider whose recorder
// methods are safe to call.
package instrumentation
